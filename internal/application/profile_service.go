package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/metaobject"
	"github.com/sda-collective/member-directory/pkg/validation"
)

// ProfileService reads and writes member profiles through the schema layer.
// Every read is a full round trip to the store; nothing is cached.
type ProfileService struct {
	Repo   repository.MemberRepository
	Schema *ProfileSchema
	Logger *logrus.Logger
}

func NewProfileService(repo repository.MemberRepository, schema *ProfileSchema, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: repo, Schema: schema, Logger: logger}
}

// GetByHandle fetches and assembles one member profile.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string, variant SchemaVariant) (*entity.Profile, error) {
	rec, err := s.Repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, repository.ErrNotFound
	}
	p, err := s.Schema.Assemble(rec, variant)
	if err != nil {
		var mre *metaobject.MalformedRecordError
		if errors.As(err, &mre) && s.Logger != nil {
			s.Logger.WithError(err).WithField("handle", handle).Error("store returned malformed member record")
		}
		return nil, err
	}
	return p, nil
}

// Update validates and serializes a partial edit, then writes it. Per-field
// rejections from the store come back as a *ValidationError so the caller
// renders them inline like any other form error.
func (s *ProfileService) Update(ctx context.Context, id string, u ProfileUpdate) error {
	fields, err := s.Schema.Serialize(u)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.Repo.Update(ctx, id, fields); err != nil {
		var ue repository.UserErrors
		if errors.As(err, &ue) {
			return &ValidationError{Details: ue.Details()}
		}
		return err
	}
	return nil
}

// ReviewUpdate is an edit to one review metaobject.
type ReviewUpdate struct {
	Reference string `json:"reference" validate:"required"`
	Reviewer  string `json:"reviewer" validate:"required"`
	Link      string `json:"link" validate:"omitempty,url"`
}

// UpdateReview rewrites the fields of a review referenced from a profile.
func (s *ProfileService) UpdateReview(ctx context.Context, reviewID string, u ReviewUpdate) error {
	if err := s.Schema.validate.Struct(u); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}
	codec := s.Schema.Codec()
	fields := []metaobject.RawField{
		codec.Encode("reference", u.Reference),
		codec.Encode("reviewer", u.Reviewer),
		codec.Encode("link", u.Link),
	}
	if err := s.Repo.UpdateReview(ctx, reviewID, fields); err != nil {
		var ue repository.UserErrors
		if errors.As(err, &ue) {
			return &ValidationError{Details: ue.Details()}
		}
		return err
	}
	return nil
}

// SetProfilePhoto writes the uploaded photo's URL to the profile.
func (s *ProfileService) SetProfilePhoto(ctx context.Context, id, photoURL string) error {
	return s.Update(ctx, id, ProfileUpdate{ProfilePhoto: &photoURL})
}

// List returns one page of the admin directory.
func (s *ProfileService) List(ctx context.Context, opts repository.ListOptions) ([]entity.Summary, repository.PageInfo, error) {
	return s.Repo.List(ctx, opts)
}
