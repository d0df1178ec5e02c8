package health

import (
	"net/http"

	"github.com/dmitrymomot/dws/core/handler"
)

// Liveness responds "ALIVE" with status 200.
func Liveness(ctx *handler.Context, _ handler.Next) error {
	ctx.SetType("text")
	ctx.SetBody("ALIVE")
	return nil
}

// NoContent responds with an empty 204.
func NoContent(ctx *handler.Context, _ handler.Next) error {
	ctx.SetStatus(http.StatusNoContent)
	return nil
}
