package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/logger"
)

// WebSocketHandler serves one upgraded connection. The connection is closed when it returns.
type WebSocketHandler func(ctx *handler.Context, conn *websocket.Conn) error

// WebSocketConfig configures the websocket upgrade middleware.
type WebSocketConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool

	// ReadBufferSize and WriteBufferSize size the connection's I/O buffers (default: 4KB)
	ReadBufferSize  int
	WriteBufferSize int

	// Subprotocols lists the supported protocols in order of preference
	Subprotocols []string

	// CheckOrigin validates the Origin header (default: same host only)
	CheckOrigin func(r *http.Request) bool

	// EnableCompression negotiates per-message compression
	EnableCompression bool
}

// WebSocket upgrades websocket handshake requests and hands the connection to fn.
// Requests that are not a handshake continue down the chain.
//
//	r.Get("/ws", middleware.WebSocket(func(ctx *handler.Context, conn *websocket.Conn) error {
//		for {
//			mt, msg, err := conn.ReadMessage()
//			if err != nil {
//				return nil
//			}
//			if err := conn.WriteMessage(mt, msg); err != nil {
//				return err
//			}
//		}
//	}))
func WebSocket(fn WebSocketHandler) handler.HandlerFunc {
	return WebSocketWithConfig(WebSocketConfig{}, fn)
}

// WebSocketWithConfig is WebSocket with custom upgrader settings.
//
// The response is hijacked before the upgrade, so nothing set on the context is
// written afterwards. A failed handshake is answered by the upgrader itself.
func WebSocketWithConfig(cfg WebSocketConfig, fn WebSocketHandler) handler.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:    cfg.ReadBufferSize,
		WriteBufferSize:   cfg.WriteBufferSize,
		Subprotocols:      cfg.Subprotocols,
		CheckOrigin:       cfg.CheckOrigin,
		EnableCompression: cfg.EnableCompression,
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if (cfg.Skip != nil && cfg.Skip(ctx)) || !websocket.IsWebSocketUpgrade(ctx.Request()) {
			return callNext(next)
		}

		w, r, err := ctx.Hijack()
		if err != nil {
			return err
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			ctx.Logger().Warn("websocket upgrade failed",
				logger.Component("websocket"),
				logger.Path(ctx.Path()),
				logger.Error(err),
			)
			return nil
		}
		defer conn.Close()

		if err := fn(ctx, conn); err != nil && !isCloseError(err) {
			return fmt.Errorf("websocket %s: %w", ctx.Path(), err)
		}
		return nil
	}
}

func isCloseError(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) || errors.Is(err, websocket.ErrCloseSent)
}
