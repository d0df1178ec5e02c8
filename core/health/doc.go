// Package health provides handlers for service health probes.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependency checks pass
//   - NoContent: 204 for minimal overhead
//
// Usage:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(logger, func(ctx context.Context) error {
//		_, err := views.Load(ctx, "index.html")
//		return err
//	}))
//	r.Get("/ping", health.NoContent)
//
// The handlers end the chain; they never call next.
package health
