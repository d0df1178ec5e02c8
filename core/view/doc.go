// Package view renders html/template views for dws handlers.
//
// An Engine satisfies handler.Renderer, so it can be passed to the router and used
// through Context.Render:
//
//	views := view.New(view.WithDir("views"))
//	r := router.New(router.WithRenderer(views))
//	r.Get("/", func(ctx *handler.Context, next handler.Next) error {
//		return ctx.Render("index.html", map[string]any{"Title": "Home"})
//	})
//
// View source is cached by resolved path for the lifetime of the engine. Call Purge
// to pick up changes on disk.
package view
