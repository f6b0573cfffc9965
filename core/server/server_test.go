package server_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/server"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := server.New(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	srv, err := server.New(server.Config{Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	assert.Nil(t, srv.Addr())
	assert.NoError(t, srv.Stop(), "stopping an idle server is a no-op")
}

func TestRun(t *testing.T) {
	t.Parallel()

	srv, err := server.New(server.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler)() }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, time.Second, 5*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/", srv.Addr()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	require.ErrorIs(t, srv.Start(context.Background(), handler), server.ErrServerAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartListenError(t *testing.T) {
	t.Parallel()

	srv, err := server.New(server.Config{Addr: "256.0.0.1:80"})
	require.NoError(t, err)
	assert.Error(t, srv.Start(context.Background(), http.NotFoundHandler()))
}
