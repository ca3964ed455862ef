package repository

import (
	"context"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

// ListOptions controls the admin directory listing. Cursors come from a
// previous page's PageInfo; Role filters by the store-side role field.
type ListOptions struct {
	Role      entity.Role
	Direction string // "next" or "previous"
	Cursor    string
	Reverse   bool
}

// PageInfo mirrors the store's pagination envelope.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// MemberRepository is the remote object store holding member records. All
// durable profile state lives behind it; implementations do not cache.
type MemberRepository interface {
	// Create writes a new member metaobject and returns its handle and id.
	Create(ctx context.Context, name, email string, role entity.Role) (handle, id string, err error)

	// GetByHandle fetches the raw record for a member, nested review
	// references resolved. Returns (nil, nil) when no record exists.
	GetByHandle(ctx context.Context, handle string) (*metaobject.Record, error)

	// Update applies a partial update to a member metaobject. Fields absent
	// from the list are left unchanged; fields with an empty value are
	// cleared. Per-field rejections surface as field-keyed errors.
	Update(ctx context.Context, id string, fields []metaobject.RawField) error

	// UpdateReview rewrites the fields of one review metaobject.
	UpdateReview(ctx context.Context, reviewID string, fields []metaobject.RawField) error

	// List returns a directory page sorted by update time.
	List(ctx context.Context, opts ListOptions) ([]entity.Summary, PageInfo, error)
}
