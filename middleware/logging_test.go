package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/logger"
	"github.com/dmitrymomot/visitlog/middleware"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs status and request id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		h := func(ctx *handler.BaseContext) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusCreated)
				return nil
			}
		}

		serveWithMiddleware(h, httptest.NewRequest(http.MethodPost, "/visits", nil),
			middleware.RequestIDWithConfig[*handler.BaseContext](middleware.RequestIDConfig{
				Generator: func() string { return "req-1" },
			}),
			middleware.Logging[*handler.BaseContext](log),
		)

		entry := decodeLogLine(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "req-1", entry["request_id"])
		assert.EqualValues(t, http.StatusCreated, entry["status"])
		httpGroup, ok := entry["http"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, http.MethodPost, httpGroup["method"])
		assert.Equal(t, "/visits", httpGroup["path"])
	})

	t.Run("client errors at warn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		h := func(ctx *handler.BaseContext) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				http.NotFound(w, r)
				return nil
			}
		}

		serveWithMiddleware(h, httptest.NewRequest(http.MethodGet, "/missing", nil),
			middleware.Logging[*handler.BaseContext](log))

		entry := decodeLogLine(t, &buf)
		assert.Equal(t, "WARN", entry["level"])
		assert.Nil(t, entry["request_id"])
	})

	t.Run("render errors at error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		h := func(ctx *handler.BaseContext) handler.Response {
			return func(http.ResponseWriter, *http.Request) error {
				return errors.New("boom")
			}
		}

		w := serveWithMiddleware(h, httptest.NewRequest(http.MethodGet, "/", nil),
			middleware.Logging[*handler.BaseContext](log))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		entry := decodeLogLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "boom", entry["error"])
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		mw := middleware.LoggingWithConfig[*handler.BaseContext](middleware.LoggingConfig{
			Logger: log,
			Skip:   func(handler.Context) bool { return true },
		})

		serveWithMiddleware(okHandler, httptest.NewRequest(http.MethodGet, "/", nil), mw)
		assert.Zero(t, buf.Len())
	})
}
