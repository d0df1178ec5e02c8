package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dws/core/server"
)

func hello() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
}

func TestServerLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("run_serves_until_canceled", func(t *testing.T) {
		t.Parallel()

		ready := make(chan string, 1)
		srv := server.New("127.0.0.1:0", server.WithSetup(func(s *server.Server) {
			ready <- s.Addr()
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, hello())() }()

		var addr string
		select {
		case addr = <-ready:
		case <-time.After(5 * time.Second):
			t.Fatal("server did not start")
		}
		assert.True(t, srv.Running())

		resp, err := http.Get("http://" + addr + "/")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, "hello", string(body))

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		assert.False(t, srv.Running())
	})

	t.Run("setup_runs_before_serving", func(t *testing.T) {
		t.Parallel()

		var order []string
		srv := server.New("127.0.0.1:0",
			server.WithSetup(
				func(*server.Server) { order = append(order, "first") },
				nil,
				func(*server.Server) { order = append(order, "second") },
			),
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := srv.Run(ctx, hello())()

		assert.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
		assert.False(t, srv.Running())
	})

	t.Run("listen_error", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		srv := server.New(ln.Addr().String())
		err = srv.Start(context.Background(), hello())
		assert.ErrorIs(t, err, server.ErrListen)
		assert.False(t, srv.Running())
	})

	t.Run("already_running", func(t *testing.T) {
		t.Parallel()

		ready := make(chan struct{})
		srv := server.New("127.0.0.1:0", server.WithSetup(func(*server.Server) { close(ready) }))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Start(ctx, hello()) }()
		<-ready

		err := srv.Start(ctx, hello())
		assert.True(t, errors.Is(err, server.ErrServerAlreadyRunning))
		require.NoError(t, srv.Stop())
	})

	t.Run("stop_when_not_running", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, server.New(":0").Stop())
	})

	t.Run("addr_before_start", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ":9999", server.New(":9999").Addr())
	})
}

func TestServerOptions(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0",
		server.WithReadTimeout(time.Second),
		server.WithWriteTimeout(time.Second),
		server.WithIdleTimeout(time.Second),
		server.WithMaxHeaderBytes(4096),
		server.WithShutdownTimeout(time.Second),
		server.WithLogger(nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Run(ctx, hello())())
}
