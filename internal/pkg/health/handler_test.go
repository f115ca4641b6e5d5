package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
)

type stubChecker struct {
	err error
}

func (s stubChecker) CheckHealth(ctx context.Context) error {
	return s.err
}

func testLogger(t *testing.T) *logger.ZapLogger {
	t.Helper()
	l, err := logger.NewZapLogger(logger.ZapConfig{Level: "error"}, nil)
	require.NoError(t, err)
	return l
}

func TestCheckAllHealth_AllHealthy(t *testing.T) {
	svc := NewHealthService(testLogger(t))
	svc.AddChecker("postgres", stubChecker{})
	svc.AddChecker("redis", stubChecker{})

	resp := svc.CheckAllHealth(context.Background())

	assert.Equal(t, "healthy", resp.Status)
	assert.Len(t, resp.Dependencies, 2)
	assert.Equal(t, "healthy", resp.Dependencies["postgres"].Status)
	assert.Equal(t, "healthy", resp.Dependencies["redis"].Status)
}

func TestCheckAllHealth_OneUnhealthy(t *testing.T) {
	svc := NewHealthService(testLogger(t))
	svc.AddChecker("postgres", stubChecker{})
	svc.AddChecker("nats", stubChecker{err: errors.New("connection refused")})

	resp := svc.CheckAllHealth(context.Background())

	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unhealthy", resp.Dependencies["nats"].Status)
	assert.Equal(t, "connection refused", resp.Dependencies["nats"].Error)
	assert.Equal(t, "healthy", resp.Dependencies["postgres"].Status)
}

func TestRegisterEnhancedHealthEndpoints(t *testing.T) {
	e := echo.New()
	svc := NewHealthService(testLogger(t))
	svc.AddChecker("postgres", stubChecker{})
	RegisterEnhancedHealthEndpoints(e, "dukasoko-api", "1.0.0", svc)

	tests := []struct {
		path     string
		expected int
	}{
		{"/health", http.StatusOK},
		{"/health/detailed", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/health/live", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRegisterEnhancedHealthEndpoints_Unhealthy(t *testing.T) {
	e := echo.New()
	svc := NewHealthService(testLogger(t))
	svc.AddChecker("postgres", stubChecker{err: errors.New("down")})
	RegisterEnhancedHealthEndpoints(e, "dukasoko-api", "1.0.0", svc)

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
}
