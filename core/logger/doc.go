// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/dws/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("myapp"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("myapp"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "api")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be passed
// unconditionally:
//
//	log.Error("request failed",
//		logger.Error(err),
//		logger.Method("POST"),
//		logger.Path("/api/users"),
//		logger.StatusCode(500),
//		logger.Stack(string(debug.Stack())),
//	)
//
// Library packages in this module default to Nop() and accept a logger through options.
package logger
