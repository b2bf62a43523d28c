package devserver

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/felixgeelhaar/alumni/internal/config"
	"github.com/felixgeelhaar/alumni/internal/health"
	"github.com/felixgeelhaar/alumni/internal/log"
	"github.com/felixgeelhaar/alumni/internal/metrics"
	"github.com/felixgeelhaar/alumni/internal/platform"
	"github.com/felixgeelhaar/alumni/internal/version"
)

// DefaultPrefix matches the path of config.DefaultAPIURL
const DefaultPrefix = "/api"

// Operational endpoints, outside the API prefix
const (
	MetricsPath   = "/metrics"
	LivenessPath  = "/healthz"
	ReadinessPath = "/readyz"
)

const shutdownTimeout = 5 * time.Second

// Server is the development portal API
type Server struct {
	echo    *echo.Echo
	cfg     config.DevServerConfig
	users   *UserStore
	tokens  *TokenIssuer
	limiter *LoginLimiter
	logger  *log.Logger
	metrics *metrics.Metrics
	reg     *prometheus.Registry
	probes  *health.ProbeManager

	prefix     string
	bcryptCost int
}

// Option configures a Server
type Option func(*Server)

// WithPrefix mounts the API under prefix instead of DefaultPrefix
func WithPrefix(prefix string) Option {
	return func(s *Server) { s.prefix = prefix }
}

// WithLogger sets the request and lifecycle logger
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBcryptCost overrides bcrypt.DefaultCost
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// New creates a dev server. An empty cfg.Secret is replaced with a random key.
func New(cfg config.DevServerConfig, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: log.Discard(),
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}

	key := []byte(cfg.Secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		s.logger.Warn("no signing secret configured, tokens will not survive a restart")
	}

	s.users = NewUserStore(s.bcryptCost)
	s.tokens = NewTokenIssuer(key, cfg.TokenTTL)
	s.limiter = NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst)

	s.reg, s.metrics = metrics.NewRegistry()
	metrics.GaugeFunc(s.reg, "accounts", "Registered accounts", func() float64 {
		return float64(s.users.Count())
	})
	metrics.GaugeFunc(s.reg, "login_limiters", "Client IPs with an active login limiter", func() float64 {
		return float64(s.limiter.Active())
	})

	s.probes = health.NewProbeManager(version.Version)
	s.probes.AddChecker(health.NewChecker("user-store", s.checkUsers))
	s.probes.AddChecker(health.NewChecker("signing-key", s.checkSigning))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := log.WithRequestID(c.Request().Context(), v.RequestID)
			s.logger.InfoContext(ctx, "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	e.Use(s.metrics.Middleware(MetricsPath))

	s.echo = e
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	api := s.echo.Group(s.prefix)

	api.POST(platform.PathLogin, s.handleLogin, s.limitLogins)
	api.POST(platform.PathRegister, s.handleRegister, middleware.BodyLimit("6M"))
	api.GET(platform.PathCurrentUser, s.handleCurrentUser, s.requireAuth)

	s.echo.GET(MetricsPath, echo.WrapHandler(metrics.HandlerFor(s.reg)))
	s.echo.GET(LivenessPath, s.handleLiveness)
	s.echo.GET(ReadinessPath, s.handleReadiness)
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Users exposes the account store, e.g. for seeding
func (s *Server) Users() *UserStore {
	return s.users
}

// Metrics exposes the server's counters
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Seed creates an account unless its email is taken
func (s *Server) Seed(account Account, password string) error {
	_, err := s.users.Create(account, password)
	if stderrors.Is(err, ErrDuplicateEmail) {
		return nil
	}
	return err
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "addr", ln.Addr().String(), "prefix", s.prefix)
		errCh <- s.echo.Start(s.cfg.Addr)
	}()
	s.probes.MarkListening()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.probes.MarkShutdown()
	s.logger.Info("dev server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// handleError renders every error as {"detail": "..."}
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		s.logger.WithError(err).ErrorContext(c.Request().Context(), "unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
