package devserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/felixgeelhaar/alumni/internal/health"
	"github.com/felixgeelhaar/alumni/internal/platform"
)

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, s.probes.CheckLiveness(c.Request().Context()))
}

func (s *Server) handleReadiness(c echo.Context) error {
	result := s.probes.CheckReadiness(c.Request().Context())
	status := http.StatusOK
	if result.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, result)
}

func (s *Server) checkUsers(context.Context) *health.Result {
	return health.Healthy("in-memory store").WithDetail("accounts", s.users.Count())
}

// checkSigning issues and validates a throwaway token
func (s *Server) checkSigning(context.Context) *health.Result {
	token, err := s.tokens.Issue(platform.User{ID: "healthcheck"})
	if err != nil {
		return health.Unhealthy("cannot sign tokens").WithDetail("error", err.Error())
	}
	if _, err := s.tokens.Validate(token); err != nil {
		return health.Unhealthy("cannot validate issued tokens").WithDetail("error", err.Error())
	}
	return health.Healthy("HS256")
}
