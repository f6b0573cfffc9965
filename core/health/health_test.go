package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/health"
)

func serve(t *testing.T, h handler.HandlerFunc[*handler.BaseContext]) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler.Handle(h, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	w := serve(t, health.Liveness[*handler.BaseContext])
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		w := serve(t, health.Readiness[*handler.BaseContext](nil, health.Checks{"store": ok, "cache": ok}))
		require.Equal(t, http.StatusOK, w.Code)

		var report map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, map[string]string{"store": health.StatusOK, "cache": health.StatusOK}, report)
	})

	t.Run("one failing check", func(t *testing.T) {
		t.Parallel()

		w := serve(t, health.Readiness[*handler.BaseContext](nil, health.Checks{"store": ok, "redis": down}))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var report map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, health.StatusDown, report["redis"])
		assert.Equal(t, health.StatusOK, report["store"])
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()

		w := serve(t, health.Readiness[*handler.BaseContext](nil, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})
}
