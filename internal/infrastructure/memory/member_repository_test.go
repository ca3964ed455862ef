package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

func TestCreateGeneratesUniqueHandles(t *testing.T) {
	t.Parallel()
	repo := NewMemberRepo()
	ctx := context.Background()

	h1, id1, err := repo.Create(ctx, "Jane Doe", "jane@example.com", entity.RoleMember)
	require.NoError(t, err)
	h2, id2, err := repo.Create(ctx, "Jane Doe", "jane2@example.com", entity.RoleMember)
	require.NoError(t, err)

	assert.Equal(t, "jane-doe", h1)
	assert.Equal(t, "jane-doe-2", h2)
	assert.NotEqual(t, id1, id2)
}

func TestGetByHandleReturnsNilForUnknown(t *testing.T) {
	t.Parallel()
	repo := NewMemberRepo()

	rec, err := repo.GetByHandle(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUpdateDoesNotLeakSharedState(t *testing.T) {
	t.Parallel()
	repo := NewMemberRepo()
	ctx := context.Background()

	handle, id, err := repo.Create(ctx, "Jane Doe", "jane@example.com", entity.RoleMember)
	require.NoError(t, err)

	before, err := repo.GetByHandle(ctx, handle)
	require.NoError(t, err)

	v := "New tagline"
	require.NoError(t, repo.Update(ctx, id, []metaobject.RawField{
		{Key: "tagline", Type: metaobject.TypeSingleLineText, Value: &v},
	}))

	// The snapshot fetched before the update must not see it.
	for _, f := range before.Fields {
		assert.NotEqual(t, "tagline", f.Key)
	}

	after, err := repo.GetByHandle(ctx, handle)
	require.NoError(t, err)
	found := false
	for _, f := range after.Fields {
		if f.Key == "tagline" {
			require.NotNil(t, f.Value)
			assert.Equal(t, "New tagline", *f.Value)
			found = true
		}
	}
	assert.True(t, found)
}

func TestSlugify(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Jane Doe":        "jane-doe",
		"  A  B  ":        "a-b",
		"Óscar!!":         "scar",
		"":                "member",
		"already-slugged": "already-slugged",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}
