package router

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/logger"
)

// ServeHTTP implements http.Handler.
//
// It builds a Context, decodes POST bodies, dispatches the registry and hands any
// escaped failure to the error hook. A failure leaves the status a handler set in
// place; when none was set the status becomes 500 before the hook runs. The response
// is then finalized: an absent body with a status other than 200 becomes the status
// text. Finally the buffered response is written unless a handler hijacked the
// connection.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := handler.NewContext(w, req,
		handler.WithLogger(r.logger),
		handler.WithRenderer(r.renderer),
		handler.WithMaxBodyBytes(r.maxBodyBytes),
	)

	if ctx.Method() == http.MethodPost {
		ctx.ParseBody()
	}

	if err := r.Dispatch(ctx); err != nil {
		if !ctx.StatusSet() {
			ctx.SetStatus(http.StatusInternalServerError)
		}
		r.handleError(ctx, err)
	}

	if ctx.Hijacked() {
		return
	}

	finalize(ctx)

	if err := ctx.WriteResponse(w); err != nil {
		r.logger.Warn("failed to write response",
			logger.Error(err),
			logger.Method(ctx.Method()),
			logger.Path(ctx.Path()),
			logger.StatusCode(ctx.Status()),
		)
	}
}

// handleError runs the error hook and keeps a panicking hook from taking the request down.
func (r *Router) handleError(ctx *handler.Context, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic in error handler",
				"value", p,
				logger.Method(ctx.Method()),
				logger.Path(ctx.Path()),
			)
		}
	}()
	r.errorHandler(ctx, err)
}

// finalize renders the default error page: the status text for an absent body.
func finalize(ctx *handler.Context) {
	if ctx.Body() == nil && ctx.Status() != http.StatusOK {
		status := ctx.Status()
		ctx.SetBody(ctx.Message())
		ctx.SetStatus(status)
	}
}

// defaultErrorHandler logs the failure with an indented description. Errors that
// carry a status (see handler.HTTPError) set it when no body has been assigned yet.
// The rest of the response is left as the chain built it.
func (r *Router) defaultErrorHandler(ctx *handler.Context, err error) {
	var sc statusCode
	if errors.As(err, &sc) && ctx.Body() == nil {
		ctx.Throw(sc.StatusCode())
	}

	if r.silent {
		return
	}

	description := err.Error()
	var pe PanicError
	if errors.As(err, &pe) {
		description += "\n" + string(pe.Stack())
	}

	r.logger.Error("unhandled request error",
		logger.Error(err),
		logger.Method(ctx.Method()),
		logger.Path(ctx.Path()),
		logger.StatusCode(ctx.Status()),
		logger.Stack(description),
	)
}
