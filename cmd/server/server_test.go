package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/phrazzld/question-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutsDownOnSignal(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &mocks.MockPaperStore{}, &mocks.MockUserStore{})
	closed := make(chan struct{})
	app.storage.close = func(context.Context) error {
		close(closed)
		return nil
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	signals := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- app.serve(context.Background(), listener, app.setupRouter(), signals)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	signals <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	<-closed
}

func TestServe_ShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &mocks.MockPaperStore{}, &mocks.MockUserStore{})
	var closeCalls int
	app.storage.close = func(context.Context) error {
		closeCalls++
		return errors.New("already closed")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = app.serve(ctx, listener, app.setupRouter(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, closeCalls)
}
