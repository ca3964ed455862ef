package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sda-collective/member-directory/internal/domain/entity"
)

// CredentialStore is an in-memory repository.CredentialStore. Blobs are
// held as raw JSON strings, matching the remote store's metafield shape,
// so corrupt-value behavior can be exercised in tests.
type CredentialStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{blobs: make(map[string]string)}
}

func (s *CredentialStore) Store(_ context.Context, email string, rec entity.CredentialRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[email] = string(value)
	return nil
}

func (s *CredentialStore) Fetch(_ context.Context, email string) (*entity.CredentialRecord, error) {
	s.mu.RLock()
	blob, ok := s.blobs[email]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var rec entity.CredentialRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// SetRaw installs an arbitrary blob, valid JSON or not. Test helper.
func (s *CredentialStore) SetRaw(email, blob string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[email] = blob
}
