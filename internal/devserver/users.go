package devserver

import (
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already has an account
	ErrDuplicateEmail = stderrors.New("an account with this email already exists")

	// ErrBadCredentials covers both an unknown email and a wrong password
	ErrBadCredentials = stderrors.New("invalid email or password")

	// ErrUserNotFound is returned for an unknown user id
	ErrUserNotFound = stderrors.New("user not found")
)

// Account is a registered user with the profile fields the portal collects
type Account struct {
	platform.User

	RollNumber  string
	DateOfBirth time.Time
	City        string
	PhoneNumber string
	Courses     []string
	Gender      string

	// CertificateName and CertificateSize describe an uploaded alumni certificate
	CertificateName string
	CertificateSize int64

	CreatedAt time.Time

	passwordHash []byte
}

// UserStore holds accounts in memory, indexed by id and by lower-cased email
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*Account
	byEmail map[string]*Account
	cost    int
}

// NewUserStore returns an empty store hashing passwords with bcrypt cost
func NewUserStore(cost int) *UserStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserStore{
		byID:    make(map[string]*Account),
		byEmail: make(map[string]*Account),
		cost:    cost,
	}
}

// Create stores account with a hashed password and assigns it an id
func (s *UserStore) Create(account Account, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(account.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return nil, ErrDuplicateEmail
	}

	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()
	account.passwordHash = hash

	stored := &account
	s.byID[account.ID] = stored
	s.byEmail[key] = stored

	return stored, nil
}

// Authenticate returns the account for email if password matches
func (s *UserStore) Authenticate(email, password string) (*Account, error) {
	s.mu.RLock()
	account, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return account, nil
}

// Get returns the account with the given id
func (s *UserStore) Get(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return account, nil
}

// Count returns the number of accounts
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
