package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// ErrCorruptToken is returned by FileStore.Load when the file is not a token document.
var ErrCorruptToken = errors.New("corrupt token file")

// TokenStore persists a single token.
type TokenStore interface {
	// Load returns the stored token, or "" with a nil error if none exists.
	Load() (string, error)

	// Save overwrites the stored token.
	Save(token string) error

	// Remove deletes the stored token. Removing a missing token is not an error.
	Remove() error
}

// FileStore keeps the token as an oauth2.Token JSON document.
// The file is written with mode 0600.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrCorruptToken, filepath.Base(f.Path), err)
	}
	return token.AccessToken, nil
}

func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&oauth2.Token{AccessToken: token, TokenType: tokenType}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0600)
}

func (f *FileStore) Remove() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore keeps the token in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a store seeded with token ("" for none).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
