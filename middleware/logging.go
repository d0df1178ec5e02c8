package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool

	// Logger is the slog logger to use (default: the context logger)
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogRequest logs a line before the rest of the chain runs (default: false)
	LogRequest bool

	// LogHeaders enables logging of request and response headers (default: false for security)
	LogHeaders bool

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request logging middleware with default configuration.
// One line is logged per request once the downstream chain has returned.
func Logging() handler.HandlerFunc {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) handler.HandlerFunc {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
//
// The line is written on the unwind, so the status reflects what downstream handlers
// set. A downstream error is reported with the status it will produce: the error's
// own StatusCode() when it has one, 500 otherwise. The error is returned unchanged.
func LoggingWithConfig(cfg LoggingConfig) handler.HandlerFunc {
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return callNext(next)
		}

		log := cfg.Logger
		if log == nil {
			log = ctx.Logger()
		}

		start := time.Now()
		req := ctx.Request()

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Method(ctx.Method()),
			logger.Path(ctx.Path()),
			logger.RemoteAddr(req.RemoteAddr),
		}
		if requestID, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, logger.RequestID(requestID))
		}
		attrs = append(attrs, logger.Query(req.URL.RawQuery))
		if cfg.LogHeaders {
			attrs = append(attrs, slog.Any("request_headers", redact(req.Header, cfg.SensitiveHeaders)))
		}

		if cfg.LogRequest {
			log.LogAttrs(ctx, cfg.LogLevel, "HTTP request started", append(attrs, logger.Event("request"))...)
		}

		err := callNext(next)
		duration := time.Since(start)

		status := ctx.Status()
		if err != nil {
			var sc interface{ StatusCode() int }
			switch {
			case errors.As(err, &sc) && ctx.Body() == nil:
				status = sc.StatusCode()
			case !ctx.StatusSet():
				status = http.StatusInternalServerError
			}
		}

		attrs = append(attrs,
			logger.Event("response"),
			logger.StatusCode(status),
			logger.BytesOut(ctx.Length()),
			logger.Duration(duration),
		)
		if cfg.LogHeaders {
			attrs = append(attrs, slog.Any("response_headers", redact(ctx.ResponseHeader(), cfg.SensitiveHeaders)))
		}

		level := cfg.LogLevel
		switch {
		case status >= 500:
			level = slog.LevelError
			if err != nil {
				attrs = append(attrs, logger.Error(err))
			}
		case status >= 400:
			level = slog.LevelWarn
		case duration > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
			attrs = append(attrs, slog.Bool("slow_request", true))
		}

		log.LogAttrs(ctx, level, "HTTP request completed", attrs...)

		return err
	}
}

func redact(h http.Header, sensitive []string) map[string]any {
	headers := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.ContainsFunc(sensitive, func(s string) bool { return http.CanonicalHeaderKey(s) == key }):
			headers[key] = "[REDACTED]"
		case len(values) == 1:
			headers[key] = values[0]
		default:
			headers[key] = values
		}
	}
	return headers
}
