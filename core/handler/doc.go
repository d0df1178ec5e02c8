// Package handler defines the per-request Context and the middleware signature used
// across dws.
//
// A handler receives the Context and a Next function. Calling next runs the rest of
// the chain and returns when it has unwound, so work placed after the call observes
// the downstream result:
//
//	func timing(ctx *handler.Context, next handler.Next) error {
//		start := time.Now()
//		if err := next(); err != nil {
//			return err
//		}
//		ctx.Set("X-Response-Time", time.Since(start).String())
//		return nil
//	}
//
// The Context buffers the response. Status starts at 404 and the body is absent until
// a handler assigns one with SetBody, JSON, Render or Component. Assigning a body moves
// the status to 200 unless SetStatus was called first. Nothing reaches the client
// before the whole chain returns, except after Hijack.
//
// POST bodies are decoded once by ParseBody according to Content-Type; the result is
// available from RequestBody.
package handler
