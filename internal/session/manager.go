package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/felixgeelhaar/alumni/internal/errors"
	"github.com/felixgeelhaar/alumni/internal/log"
	"github.com/felixgeelhaar/alumni/internal/platform"
)

// AuthClient is the part of the portal API the Manager needs.
// *platform.Client implements it.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*platform.LoginResponse, error)
	Register(ctx context.Context, form *platform.Form) error
	CurrentUser(ctx context.Context, token string) (*platform.User, error)
}

// Manager mediates between user actions and the portal API and owns the in-memory
// session. Its state changes only through Login, Register, Restore, Logout and the
// invalidation signal.
type Manager struct {
	client   AuthClient
	store    TokenStore
	nav      Navigator
	notifier Notifier
	logger   *log.Logger

	mu      sync.RWMutex
	user    *User
	token   string
	loading atomic.Int32

	unsubscribe func()
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithNavigator sets where navigation signals go
func WithNavigator(n Navigator) ManagerOption {
	return func(m *Manager) { m.nav = n }
}

// WithNotifier sets where notifications go
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the manager logger
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager and subscribes it to signal. Pass the same signal to
// the platform client via platform.WithUnauthorizedHandler(signal.EmitRequest).
func NewManager(client AuthClient, store TokenStore, signal *Signal, opts ...ManagerOption) *Manager {
	m := &Manager{
		client:   client,
		store:    store,
		nav:      nopNavigator{},
		notifier: nopNotifier{},
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if signal != nil {
		m.unsubscribe = signal.Subscribe(m.invalidate)
	}
	return m
}

// Close detaches the manager from its invalidation signal
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Current returns the in-memory session, if any
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return Session{}, false
	}
	return Session{User: *m.user, Token: m.token}, true
}

// User returns the resolved user, or nil when there is no session
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the token of the current session, or ""
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsLoading reports whether any operation is waiting on the portal API
func (m *Manager) IsLoading() bool {
	return m.loading.Load() > 0
}

// Login exchanges credentials for a token. On success the token is persisted, the
// session is set and the user is sent to the dashboard. On failure the session is left
// as it was and the returned error carries one of ErrCodeNetworkUnreachable,
// ErrCodeRateLimited or ErrCodeInvalidCredentials, or ErrCodeGenericFailure when the
// token could not be stored. Login never retries.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	defer m.busy()()

	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		perr := classifyLoginError(err)
		m.logger.WithError(perr).WarnContext(ctx, "login failed", "email", email)
		m.notifyFailure("Login failed", perr)
		return nil, perr
	}

	if err := m.store.SetToken(resp.Token); err != nil {
		perr := errors.NewSessionSaveError(err)
		m.logger.WithError(err).ErrorContext(ctx, "could not persist token")
		m.notifyFailure("Login failed", perr)
		return nil, perr
	}

	user := resp.User
	m.set(&user, resp.Token)
	m.logger.InfoContext(ctx, "logged in", "user_id", user.ID, "token_fp", Fingerprint(resp.Token))

	m.notifier.Notify(Notification{
		Title:       "Login successful",
		Description: fmt.Sprintf("Welcome back, %s!", user.FirstName),
	})
	m.nav.Navigate(RouteDashboard)

	return &user, nil
}

// Register submits a new account. On success the user is sent to the login view;
// registering does not log in. Failures carry ErrCodeNetworkUnreachable,
// ErrCodeDuplicateAccount, ErrCodeValidationFailed or ErrCodeGenericFailure.
func (m *Manager) Register(ctx context.Context, form RegistrationForm) error {
	defer m.busy()()

	payload, err := form.Form()
	if err != nil {
		perr := errors.NewValidationFailedError(err)
		m.notifyFailure("Registration failed", perr)
		return perr
	}

	if err := m.client.Register(ctx, payload); err != nil {
		perr := classifyRegisterError(err)
		m.logger.WithError(perr).WarnContext(ctx, "registration failed", "email", form.Email)
		m.notifyFailure("Registration failed", perr)
		return perr
	}

	m.logger.InfoContext(ctx, "registered", "email", form.Email, "role", string(form.Role))
	m.notifier.Notify(Notification{
		Title:       "Registration successful",
		Description: "Your account has been created. Please log in.",
	})
	m.nav.Navigate(RouteLogin)

	return nil
}

// Restore resolves the stored token into a session. It is a silent background check:
// a rejected or unreadable token is cleared and logged, never notified, and no error
// is returned for it. The only error returned is a failure to clear the store.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Token()
	if err != nil {
		m.logger.WithError(err).WarnContext(ctx, "stored token unreadable, clearing it")
		return m.store.Clear()
	}
	if token == "" {
		return nil
	}

	defer m.busy()()

	user, err := m.client.CurrentUser(ctx, token)
	if err != nil {
		m.logger.WithError(err).WarnContext(ctx, "stored token rejected, clearing it", "token_fp", Fingerprint(token))
		m.set(nil, "")
		return m.store.Clear()
	}

	m.set(user, token)
	m.logger.InfoContext(ctx, "session restored", "user_id", user.ID, "token_fp", Fingerprint(token))
	return nil
}

// Logout ends the session locally without contacting the portal. The in-memory
// session is always cleared and the user sent home; a failure to delete the stored
// token is logged and returned.
func (m *Manager) Logout(ctx context.Context) error {
	storeErr := m.store.Clear()
	if storeErr != nil {
		m.logger.WithError(storeErr).ErrorContext(ctx, "could not clear stored token")
	}

	m.set(nil, "")
	m.logger.InfoContext(ctx, "logged out")

	m.notifier.Notify(Notification{
		Title:       "Logged out",
		Description: "You have been successfully logged out.",
	})
	m.nav.Navigate(RouteHome)

	return storeErr
}

// invalidate handles a 401 on any request
func (m *Manager) invalidate(inv Invalidation) {
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Error("could not clear stored token after authorization failure")
	}
	m.set(nil, "")
	m.logger.Info("session invalidated", "method", inv.Method, "path", inv.Path)
	m.nav.Navigate(RouteLogin)
}

func (m *Manager) set(user *User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.token = token
}

func (m *Manager) busy() (done func()) {
	m.loading.Add(1)
	return func() { m.loading.Add(-1) }
}

func (m *Manager) notifyFailure(title string, err error) {
	n := Notification{Title: title, Variant: VariantDestructive}

	var pe *errors.PortalError
	if stderrors.As(err, &pe) {
		n.Description = pe.Message
		n.Code = pe.Code
	} else {
		n.Description = err.Error()
	}
	m.notifier.Notify(n)
}

func classifyLoginError(err error) *errors.PortalError {
	if platform.IsNoResponse(err) {
		return errors.NewNetworkUnreachableError(err)
	}
	if code, ok := platform.StatusCode(err); ok && code == 429 {
		return errors.NewRateLimitedError(err)
	}
	return errors.NewInvalidCredentialsError(err)
}

func classifyRegisterError(err error) *errors.PortalError {
	if platform.IsNoResponse(err) {
		return errors.NewNetworkUnreachableError(err)
	}
	code, _ := platform.StatusCode(err)
	switch code {
	case 409:
		return errors.NewDuplicateAccountError(err)
	case 400:
		return errors.NewValidationFailedError(err)
	default:
		return errors.NewGenericFailureError(err)
	}
}
