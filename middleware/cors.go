package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/dws/core/handler"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx *handler.Context) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, defaults to common headers including Authorization and Content-Type
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials (cookies, authorization headers)
	// are allowed. Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc decides per request and returns the value for
	// Access-Control-Allow-Origin. Takes precedence over AllowOrigins.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS creates a CORS middleware that allows every origin.
func CORS() handler.HandlerFunc {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig creates a CORS middleware with custom configuration.
//
// Preflight requests (OPTIONS with Access-Control-Request-Method) are answered
// directly: 204 with the allow headers, or 403 when the origin or method is not
// allowed. The rest of the chain does not run for them. Other requests get the
// allow headers set before next when their origin is allowed.
//
//	r.Use(middleware.CORSWithConfig(middleware.CORSConfig{
//		AllowOriginFunc:  middleware.AllowOriginSubdomain("example.com"),
//		AllowCredentials: true,
//	}))
func CORSWithConfig(cfg CORSConfig) handler.HandlerFunc {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}

	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			DefaultRequestIDHeader,
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[origin] = true
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return callNext(next)
		}

		origin := ctx.Get("Origin")

		var allowedOrigin string
		allowed := false

		// custom function > wildcard/empty > explicit list
		switch {
		case cfg.AllowOriginFunc != nil:
			allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
		case len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"]:
			allowedOrigin, allowed = "*", true
		case allowOriginsMap[origin]:
			allowedOrigin, allowed = origin, true
		}

		requestMethod := ctx.Get("Access-Control-Request-Method")
		if ctx.Method() == http.MethodOptions && requestMethod != "" {
			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				ctx.Throw(http.StatusForbidden)
				return nil
			}

			ctx.Set("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Set("Access-Control-Allow-Methods", allowMethods)
			if ctx.Get("Access-Control-Request-Headers") != "" {
				ctx.Set("Access-Control-Allow-Headers", allowHeaders)
			}
			if cfg.AllowCredentials && allowedOrigin != "*" {
				ctx.Set("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				ctx.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}

			vary := ctx.ResponseHeader()
			vary.Add("Vary", "Origin")
			vary.Add("Vary", "Access-Control-Request-Method")
			vary.Add("Vary", "Access-Control-Request-Headers")

			ctx.SetStatus(http.StatusNoContent)
			return nil
		}

		if allowed {
			ctx.Set("Access-Control-Allow-Origin", allowedOrigin)
			if cfg.AllowCredentials && allowedOrigin != "*" {
				ctx.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				ctx.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			ctx.ResponseHeader().Add("Vary", "Origin")
		}

		return callNext(next)
	}
}

// AllowOriginWildcard returns an AllowOriginFunc that allows any non-empty origin
// and echoes it back, which keeps credentials usable.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}

// AllowOriginSubdomain returns an AllowOriginFunc that allows the domain and all of
// its subdomains, with or without a port. The domain is given without a scheme.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.TrimPrefix(domain, "*.")
	domain = strings.TrimPrefix(domain, ".")
	domain = strings.ToLower(domain)
	suffix := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, suffix) {
			return origin, true
		}
		return "", false
	}
}
