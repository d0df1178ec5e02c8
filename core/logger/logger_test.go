package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dws/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("text_output_by_default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", slog.String("k", "v"))

		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("json_output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		log.Info("hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
	})

	t.Run("production_adds_service_attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("dws"), logger.WithOutput(&buf))
		log.Info("ready")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "dws", rec["service"])
		assert.Equal(t, "production", rec["env"])
	})

	t.Run("level_filters_records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		log.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("development_logs_debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("dws"), logger.WithOutput(&buf))
		log.Debug("details")

		assert.Contains(t, buf.String(), "details")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack("line one\nline two\n")
	require.Equal(t, "stack", attr.Key)
	assert.Equal(t, "  line one\n  line two", attr.Value.String())

	assert.True(t, logger.Stack("").Equal(slog.Attr{}))
}

func TestIndent(t *testing.T) {
	t.Parallel()
	got := logger.Indent("a\nb", "> ")
	assert.Equal(t, "> a\n> b", got)
	assert.Equal(t, 2, strings.Count(got, "> "))
}

func TestHTTPAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET", logger.Method("GET").Value.String())
	assert.Equal(t, "/api", logger.Path("/api").Value.String())
	assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())
	assert.Equal(t, "127.0.0.1:1", logger.RemoteAddr("127.0.0.1:1").Value.String())
	assert.Equal(t, int64(12), logger.BytesOut(12).Value.Int64())
	assert.Equal(t, "a=1", logger.Query("a=1").Value.String())
	assert.True(t, logger.Query("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
}

func TestMetadataAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "component", logger.Component("http").Key)
	assert.Equal(t, "event", logger.Event("request").Key)
	assert.Equal(t, "file", logger.File("/tmp/x").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	g := logger.Group("req", slog.String("id", "1"))
	require.Equal(t, slog.KindGroup, g.Value.Kind())
	assert.Len(t, g.Value.Group(), 1)
}
