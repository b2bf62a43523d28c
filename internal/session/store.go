package session

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/alumni/internal/errors"
)

// TokenStore is the durable single-slot store for the bearer token.
// Token returns "" with a nil error when nothing is stored.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// storedToken is the on-disk layout of the token file
type storedToken struct {
	Token string `json:"token"`
}

// FileStore keeps the token in a JSON file readable only by the current user
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first SetToken.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the token file location
func (s *FileStore) Path() string {
	return s.path
}

// Token reads the stored token
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.NewFileReadError(s.path, err)
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return "", errors.NewFileUnmarshalError(s.path, "json", err)
	}
	return st.Token, nil
}

// SetToken replaces the stored token. The write goes through a temporary file so a
// crash never leaves a truncated token behind.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.NewFileWriteError(filepath.Dir(s.path), err)
	}

	data, err := json.MarshalIndent(storedToken{Token: token}, "", "  ")
	if err != nil {
		return errors.NewFileWriteError(s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".auth-*.json")
	if err != nil {
		return errors.NewFileWriteError(s.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return errors.NewFileWriteError(s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewFileWriteError(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewFileWriteError(s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewFileWriteError(s.path, err)
	}
	return nil
}

// Clear removes the token file. Clearing an empty store succeeds.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewFileWriteError(s.path, err)
	}
	return nil
}

// MemoryStore keeps the token in memory. Useful for tests and embedding.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token
func (s *MemoryStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// SetToken replaces the stored token
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear empties the store
func (s *MemoryStore) Clear() error {
	return s.SetToken("")
}

var (
	_ TokenStore = (*FileStore)(nil)
	_ TokenStore = (*MemoryStore)(nil)
)
