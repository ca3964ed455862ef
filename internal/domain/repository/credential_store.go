package repository

import (
	"context"

	"github.com/sda-collective/member-directory/internal/domain/entity"
)

// CredentialStore persists login records, keyed by member email. The
// emulation over the store's generic key/value metafields is an
// implementation detail; a future native credential backend only replaces
// this interface's implementation.
type CredentialStore interface {
	// Store writes the record under the credential namespace, keyed by email.
	Store(ctx context.Context, email string, rec entity.CredentialRecord) error

	// Fetch returns the record for an email, or (nil, nil) when none exists.
	// A stored value that fails to parse is reported as absent, never as an
	// error: "no record" and "unusable record" both mean "cannot
	// authenticate". Transport failures are returned as errors.
	Fetch(ctx context.Context, email string) (*entity.CredentialRecord, error)
}
