package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/logger"
)

// Readiness runs every check with the request context and responds "READY" when
// all pass. The first failure is logged and answered with 503.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc {
	return func(ctx *handler.Context, _ handler.Next) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				ctx.Throw(http.StatusServiceUnavailable)
				return nil
			}
		}

		ctx.SetType("text")
		ctx.SetBody("READY")
		return nil
	}
}
