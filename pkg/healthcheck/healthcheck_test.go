package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type stubChecker struct {
	status  Status
	message string
}

func (c stubChecker) Check(ctx context.Context) Check {
	return Check{Status: c.status, Message: c.message, LastChecked: time.Now()}
}

type HealthCheckTestSuite struct {
	suite.Suite
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (s *HealthCheckTestSuite) TestCheck() {
	s.Run("AllHealthy_ShouldAggregateHealthy", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusHealthy})
		h.Register("redis", stubChecker{status: StatusHealthy})

		// Act
		resp := h.Check(context.Background())

		// Assert
		s.Equal(StatusHealthy, resp.Status)
		s.Len(resp.Checks, 2)
		s.Equal("1.0.0", resp.Version)
	})

	s.Run("OneDegraded_ShouldAggregateDegraded", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusDegraded, message: "pool pressure"})
		h.Register("redis", stubChecker{status: StatusHealthy})

		// Act
		resp := h.Check(context.Background())

		// Assert
		s.Equal(StatusDegraded, resp.Status)
	})

	s.Run("OneUnhealthy_ShouldDominateDegraded", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusDegraded})
		h.Register("redis", stubChecker{status: StatusUnhealthy, message: "connection refused"})

		// Act
		resp := h.Check(context.Background())

		// Assert
		s.Equal(StatusUnhealthy, resp.Status)
	})

	s.Run("RepeatedCheck_ShouldServeCachedResponse", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusHealthy})
		first := h.Check(context.Background())

		// Act
		second := h.Check(context.Background())

		// Assert
		s.Equal(first.Timestamp, second.Timestamp)
	})
}

func (s *HealthCheckTestSuite) TestReadinessHandler() {
	s.Run("RegisteredCheckerDown_ShouldReturnServiceUnavailable", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusHealthy})
		h.Register("redis", stubChecker{status: StatusUnhealthy, message: "connection refused"})

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		// Act
		h.ReadinessHandler()(rec, req)

		// Assert
		s.Equal(http.StatusServiceUnavailable, rec.Code)
		s.Contains(rec.Body.String(), "not_ready")
		s.Contains(rec.Body.String(), "redis")
	})

	s.Run("AllCheckersUp_ShouldReturnOK", func() {
		// Arrange
		h := New("1.0.0", zap.NewNop())
		h.Register("database", stubChecker{status: StatusHealthy})

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		// Act
		h.ReadinessHandler()(rec, req)

		// Assert
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "ready")
	})
}

func (s *HealthCheckTestSuite) TestRedisChecker() {
	s.Run("UnreachableServer_ShouldReportUnhealthy", func() {
		// Arrange
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 500 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer client.Close()
		checker := NewRedisChecker(client)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		// Act
		check := checker.Check(ctx)

		// Assert
		s.Equal(StatusUnhealthy, check.Status)
		s.NotEmpty(check.Message)
	})
}
