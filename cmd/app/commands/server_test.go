package commands

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/streamgate/internal/app"
	"github.com/allisson/streamgate/internal/config"
)

func serverConfig() *config.Config {
	return &config.Config{
		ServerHost:                "127.0.0.1",
		ServerPort:                0,
		ShutdownTimeout:           5 * time.Second,
		LogLevel:                  "error",
		StreamSecret:              "server-secret",
		PlaybackTTL:               10 * time.Minute,
		MediaRoot:                 "/nonexistent",
		OTPResendWindow:           5 * time.Minute,
		OTPResendMax:              1,
		OTPSweepInterval:          10 * time.Millisecond,
		RateLimitStore:            config.RateLimitStoreMemory,
		RateLimitIdleEviction:     time.Hour,
		RateLimitIPEnabled:        true,
		RateLimitIPRequestsPerSec: 5,
		RateLimitIPBurst:          10,
	}
}

func TestRunServices_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	gin.SetMode(gin.TestMode)

	cfg := serverConfig()
	container := app.NewContainer(cfg)
	logger := discardLogger()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServices(ctx, container, cfg, logger)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("services did not stop")
	}

	require.NoError(t, container.Shutdown(context.Background()))
}

func TestRunServices_InitializationError(t *testing.T) {
	cfg := serverConfig()
	cfg.StreamSecret = ""
	container := app.NewContainer(cfg)
	defer closeContainer(container, discardLogger())

	err := runServices(context.Background(), container, cfg, discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize HTTP server")
}
