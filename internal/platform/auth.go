package platform

import (
	"context"
	"errors"
	"net/http"
)

// Endpoint paths, relative to the base URL
const (
	PathLogin       = "/auth/login"
	PathRegister    = "/auth/register"
	PathCurrentUser = "/users/me"
)

// Endpoint is a method and path the client calls
type Endpoint struct {
	Method string
	Path   string
}

// Endpoints lists every endpoint the client depends on
func Endpoints() []Endpoint {
	return []Endpoint{
		{Method: http.MethodPost, Path: PathLogin},
		{Method: http.MethodPost, Path: PathRegister},
		{Method: http.MethodGet, Path: PathCurrentUser},
	}
}

// Role distinguishes current students from graduates
type Role string

// Roles
const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAlumni
}

// User represents a portal user
type User struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// FullName joins first and last name
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrMissingToken is returned when a 2xx login response carries no token
var ErrMissingToken = errors.New("login response did not include a token")

// Login exchanges credentials for a bearer token. It does not store the token;
// that is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, PathLogin, LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := parseResponse(resp, &loginResp); err != nil {
		return nil, err
	}
	if loginResp.Token == "" {
		return nil, ErrMissingToken
	}

	return &loginResp, nil
}

// Register submits a registration form as multipart/form-data.
// A successful registration does not authenticate the caller.
func (c *Client) Register(ctx context.Context, form *Form) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("Accept", "application/json")

	resp, err := c.do(ctx, http.MethodPost, PathRegister, body, header)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// CurrentUser retrieves the user the token belongs to. A non-empty token is sent
// instead of the one from the token source.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var header http.Header
	if token != "" {
		header = http.Header{}
		header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.doJSON(ctx, http.MethodGet, PathCurrentUser, nil, header)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
