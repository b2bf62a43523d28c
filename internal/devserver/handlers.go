package devserver

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/felixgeelhaar/alumni/internal/metrics"
	"github.com/felixgeelhaar/alumni/internal/platform"
)

const (
	claimsKey          = "claims"
	maxCertificateSize = 5 << 20
)

// limitLogins rejects bursts of login attempts from one IP with 429
func (s *Server) limitLogins(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.Allow(c.RealIP()) {
			s.metrics.RecordLogin(metrics.OutcomeRateLimited)
			return c.JSON(http.StatusTooManyRequests, errorBody("Too many login attempts, try again later"))
		}
		return next(c)
	}
}

// requireAuth validates the bearer token and stores its claims on the context
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			s.metrics.RecordTokenFailure("missing")
			return c.JSON(http.StatusUnauthorized, errorBody("Not authenticated"))
		}

		claims, err := s.tokens.Validate(token)
		if err != nil {
			s.metrics.RecordTokenFailure("invalid")
			return c.JSON(http.StatusUnauthorized, errorBody("Could not validate credentials"))
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	var req platform.LoginRequest
	if err := c.Bind(&req); err != nil {
		s.metrics.RecordLogin(metrics.OutcomeInvalid)
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		s.metrics.RecordLogin(metrics.OutcomeInvalid)
		return c.JSON(http.StatusBadRequest, errorBody("Email and password are required"))
	}

	account, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		s.metrics.RecordLogin(metrics.OutcomeRejected)
		return c.JSON(http.StatusUnauthorized, errorBody("Invalid email or password"))
	}

	token, err := s.tokens.Issue(account.User)
	if err != nil {
		return err
	}
	s.metrics.RecordLogin(metrics.OutcomeSuccess)
	s.metrics.TokensIssued.Inc()

	return c.JSON(http.StatusOK, platform.LoginResponse{Token: token, User: account.User})
}

func (s *Server) handleRegister(c echo.Context) error {
	account, password, problems := parseRegistration(c)
	role := ""
	if account.Role.Valid() {
		role = string(account.Role)
	}
	if len(problems) > 0 {
		s.metrics.RecordRegistration(role, metrics.OutcomeInvalid)
		return c.JSON(http.StatusBadRequest, errorBody(strings.Join(problems, "; ")))
	}

	if account.Role == platform.RoleAlumni {
		file, err := c.FormFile("certificate")
		switch {
		case err == nil:
			if file.Size > maxCertificateSize {
				s.metrics.RecordRegistration(role, metrics.OutcomeInvalid)
				return c.JSON(http.StatusBadRequest, errorBody("Certificate must be at most 5MB"))
			}
			account.CertificateName = file.Filename
			account.CertificateSize = file.Size
		case !stderrors.Is(err, http.ErrMissingFile):
			s.metrics.RecordRegistration(role, metrics.OutcomeInvalid)
			return c.JSON(http.StatusBadRequest, errorBody("Invalid certificate upload"))
		}
	}

	created, err := s.users.Create(account, password)
	if stderrors.Is(err, ErrDuplicateEmail) {
		s.metrics.RecordRegistration(role, metrics.OutcomeDuplicate)
		return c.JSON(http.StatusConflict, errorBody("An account with this email already exists"))
	}
	if err != nil {
		return err
	}

	s.metrics.RecordRegistration(role, metrics.OutcomeSuccess)
	s.logger.InfoContext(c.Request().Context(), "account registered", "user_id", created.ID, "role", string(created.Role))

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    created.User,
	})
}

// parseRegistration reads the multipart form and lists every field problem
func parseRegistration(c echo.Context) (Account, string, []string) {
	var problems []string

	account := Account{
		User: platform.User{
			FirstName: c.FormValue("firstName"),
			LastName:  c.FormValue("lastName"),
			Email:     c.FormValue("email"),
			Role:      platform.Role(c.FormValue("role")),
		},
		RollNumber:  c.FormValue("rollNumber"),
		City:        c.FormValue("city"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Gender:      c.FormValue("gender"),
	}
	password := c.FormValue("password")

	required := []struct{ name, value string }{
		{"firstName", account.FirstName},
		{"lastName", account.LastName},
		{"email", account.Email},
		{"password", password},
	}
	for _, f := range required {
		if f.value == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if !account.Role.Valid() {
		problems = append(problems, "role must be student or alumni")
	}

	if dob := c.FormValue("dob"); dob != "" {
		t, err := time.Parse(time.RFC3339, dob)
		if err != nil {
			problems = append(problems, "dob must be an ISO-8601 timestamp")
		}
		account.DateOfBirth = t
	}

	if courses := c.FormValue("courses"); courses != "" {
		if err := json.Unmarshal([]byte(courses), &account.Courses); err != nil {
			problems = append(problems, "courses must be a JSON array of strings")
		}
	}

	return account, password, problems
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	claims, _ := c.Get(claimsKey).(*Claims)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, errorBody("Not authenticated"))
	}

	account, err := s.users.Get(claims.Subject)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorBody("Could not validate credentials"))
	}

	return c.JSON(http.StatusOK, account.User)
}
