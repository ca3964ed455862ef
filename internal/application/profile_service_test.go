package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/infrastructure/memory"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

func newProfileFixture() (*ProfileService, *memory.MemberRepo) {
	members := memory.NewMemberRepo()
	return NewProfileService(members, testSchema(), nil), members
}

func TestGetByHandleNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newProfileFixture()

	_, err := svc.GetByHandle(context.Background(), "no-such-member", VariantFull)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByHandleRoundTrip(t *testing.T) {
	t.Parallel()
	svc, members := newProfileFixture()
	members.Seed(*memberRecord())

	p, err := svc.GetByHandle(context.Background(), "jane-doe", VariantFull)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
}

func TestUpdateWritesThroughSchema(t *testing.T) {
	t.Parallel()
	svc, members := newProfileFixture()
	members.Seed(*memberRecord())

	tagline := "Theme specialist"
	require.NoError(t, svc.Update(context.Background(), "gid://shopify/Metaobject/1", ProfileUpdate{Tagline: &tagline}))

	p, err := svc.GetByHandle(context.Background(), "jane-doe", VariantFull)
	require.NoError(t, err)
	require.NotNil(t, p.Tagline)
	assert.Equal(t, "Theme specialist", *p.Tagline)
}

// rejectingRepo simulates the store bouncing a write with per-field errors.
type rejectingRepo struct {
	repository.MemberRepository
	errs repository.UserErrors
}

func (r rejectingRepo) Update(context.Context, string, []metaobject.RawField) error {
	return r.errs
}

func TestUpdateSurfacesStoreRejections(t *testing.T) {
	t.Parallel()
	repo := rejectingRepo{errs: repository.UserErrors{
		{Field: "value", Message: "is too long", Code: "TOO_LONG"},
	}}
	svc := NewProfileService(repo, testSchema(), nil)

	tagline := "x"
	err := svc.Update(context.Background(), "gid://shopify/Metaobject/1", ProfileUpdate{Tagline: &tagline})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "is too long", ve.Details["value"])
}

func TestUpdateReviewRequiresFields(t *testing.T) {
	t.Parallel()
	svc, _ := newProfileFixture()

	err := svc.UpdateReview(context.Background(), "gid://shopify/Metaobject/77", ReviewUpdate{})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details, "reference")
	assert.Contains(t, ve.Details, "reviewer")
}

func TestUpdateReviewRewritesNestedRecord(t *testing.T) {
	t.Parallel()
	svc, members := newProfileFixture()

	ids := `["gid://shopify/Metaobject/77"]`
	rec := memberRecord(metaobject.RawField{
		Key:   "reviews",
		Type:  "list.metaobject_reference",
		Value: &ids,
		References: []metaobject.Record{{
			ID: "gid://shopify/Metaobject/77",
			Fields: []metaobject.RawField{
				field("reference", "single_line_text_field", "Old project"),
				field("reviewer", "single_line_text_field", "Bob"),
			},
		}},
	})
	members.Seed(*rec)

	err := svc.UpdateReview(context.Background(), "gid://shopify/Metaobject/77", ReviewUpdate{
		Reference: "Acme rebuild",
		Reviewer:  "Alice",
		Link:      "https://acme.example.com",
	})
	require.NoError(t, err)

	p, err := svc.GetByHandle(context.Background(), "jane-doe", VariantFull)
	require.NoError(t, err)
	require.NotNil(t, p.Reviews)
	require.Len(t, p.Reviews.References, 1)
	assert.Equal(t, "Acme rebuild", p.Reviews.References[0].Reference)
	assert.Equal(t, "Alice", p.Reviews.References[0].Reviewer)
}

func TestListFiltersByRole(t *testing.T) {
	t.Parallel()
	svc, members := newProfileFixture()
	ctx := context.Background()

	_, _, err := members.Create(ctx, "Jane Doe", "jane@example.com", entity.RoleFounder)
	require.NoError(t, err)
	_, _, err = members.Create(ctx, "Bob Roe", "bob@example.com", entity.RoleMember)
	require.NoError(t, err)

	all, _, err := svc.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	founders, _, err := svc.List(ctx, repository.ListOptions{Role: entity.RoleFounder})
	require.NoError(t, err)
	require.Len(t, founders, 1)
	assert.Equal(t, "Jane Doe", founders[0].Name)
}
