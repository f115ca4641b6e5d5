package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.ZapLogger {
	t.Helper()
	l, err := logger.NewZapLogger(logger.ZapConfig{Level: "error"}, nil)
	require.NoError(t, err)
	return l
}

func TestNewGracefulServer(t *testing.T) {
	gs := NewGracefulServer(echo.New(), testLogger(t), 8080)
	assert.NotNil(t, gs)
}

func TestGracefulServer_Shutdown(t *testing.T) {
	e := echo.New()
	gs := NewGracefulServer(e, testLogger(t), 0)

	// Shutdown on a server that never started should still complete cleanly
	err := gs.Shutdown()
	assert.NoError(t, err)
}

func TestShutdownManager(t *testing.T) {
	sm := NewShutdownManager(testLogger(t))

	var order []string
	sm.Register(func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	sm.Register(func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("cleanup failed")
	})
	sm.Register(func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// A failing component must not stop the remaining ones
	err := sm.Shutdown(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}
