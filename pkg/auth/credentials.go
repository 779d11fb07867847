package auth

import (
	"sync"
)

// DefaultCredentials are the demo logins accepted by the store
var DefaultCredentials = map[string]string{
	"babyshark": "doodoo123",
}

// CredentialStore verifies a username/password pair
type CredentialStore interface {
	Verify(username, password string) bool
}

// MemoryCredentialStore keeps bcrypt hashes in memory for the life of the process
type MemoryCredentialStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemoryCredentialStore hashes the given plain credentials
func NewMemoryCredentialStore(credentials map[string]string) (*MemoryCredentialStore, error) {
	store := &MemoryCredentialStore{hashes: make(map[string]string, len(credentials))}
	for username, password := range credentials {
		if err := store.Add(username, password); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Add registers or replaces a login
func (s *MemoryCredentialStore) Add(username, password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = hashed
	return nil
}

// Verify reports whether the password matches the stored hash
func (s *MemoryCredentialStore) Verify(username, password string) bool {
	s.mu.RLock()
	hashed, ok := s.hashes[username]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	return CheckPassword(hashed, password)
}
