package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/domain/entity"
)

// CredentialStore keeps per-member credential blobs as JSON metafields on
// the app installation, keyed by the member's email inside a reserved
// namespace. A blob that fails to parse is treated as absent so a corrupt
// value can never authenticate.
type CredentialStore struct {
	Client    *Client
	Namespace string
	Logger    *logrus.Logger

	mu             sync.Mutex
	installationID string
}

func NewCredentialStore(client *Client, namespace string, logger *logrus.Logger) *CredentialStore {
	return &CredentialStore{Client: client, Namespace: namespace, Logger: logger}
}

func (s *CredentialStore) ownerID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installationID != "" {
		return s.installationID, nil
	}
	var out struct {
		CurrentAppInstallation struct {
			ID string `json:"id"`
		} `json:"currentAppInstallation"`
	}
	if err := s.Client.Do(ctx, "currentAppInstallation", queryCurrentAppInstallation, nil, &out); err != nil {
		return "", err
	}
	if out.CurrentAppInstallation.ID == "" {
		return "", &TransportError{Op: "currentAppInstallation", Err: fmt.Errorf("empty installation id")}
	}
	s.installationID = out.CurrentAppInstallation.ID
	return s.installationID, nil
}

func (s *CredentialStore) Store(ctx context.Context, email string, rec entity.CredentialRecord) error {
	owner, err := s.ownerID(ctx)
	if err != nil {
		return err
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	var out struct {
		MetafieldsSet struct {
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	vars := map[string]any{
		"metafields": map[string]any{
			"ownerId":   owner,
			"namespace": s.Namespace,
			"key":       email,
			"type":      "json",
			"value":     string(value),
		},
	}
	if err := s.Client.Do(ctx, "metafieldsSet", mutationMetafieldsSet, vars, &out); err != nil {
		return err
	}
	if ue := toUserErrors(out.MetafieldsSet.UserErrors); ue != nil {
		return ue
	}
	return nil
}

func (s *CredentialStore) Fetch(ctx context.Context, email string) (*entity.CredentialRecord, error) {
	var out struct {
		CurrentAppInstallation struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"currentAppInstallation"`
	}
	vars := map[string]any{
		"namespace": s.Namespace,
		"key":       email,
	}
	if err := s.Client.Do(ctx, "metafieldByKey", queryMetafieldByKey, vars, &out); err != nil {
		return nil, err
	}
	mf := out.CurrentAppInstallation.Metafield
	if mf == nil || mf.Value == "" {
		return nil, nil
	}
	var rec entity.CredentialRecord
	if err := json.Unmarshal([]byte(mf.Value), &rec); err != nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("credential blob is not valid JSON, treating as absent")
		}
		return nil, nil
	}
	return &rec, nil
}
