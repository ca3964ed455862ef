package shopify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/domain/entity"
)

func newFakeCredStore(t *testing.T, responses map[string]string) (*CredentialStore, *fakeStore) {
	t.Helper()
	repo, fake := newFakeRepo(t, responses)
	return NewCredentialStore(repo.Client, "member_credentials", nil), fake
}

func TestFetchParsesCredentialBlob(t *testing.T) {
	store, fake := newFakeCredStore(t, map[string]string{
		"metafield(namespace:": `{"currentAppInstallation":{"metafield":{
			"value":"{\"handle\":\"jane-doe\",\"hashedPassword\":\"$2a$10$abc\",\"needReset\":true}"}}}`,
	})

	rec, err := store.Fetch(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "jane-doe", rec.Handle)
	assert.True(t, rec.NeedReset)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "member_credentials", fake.requests[0].Variables["namespace"])
	assert.Equal(t, "jane@example.com", fake.requests[0].Variables["key"])
}

func TestFetchAbsentMetafieldIsNilNil(t *testing.T) {
	store, _ := newFakeCredStore(t, map[string]string{
		"metafield(namespace:": `{"currentAppInstallation":{"metafield":null}}`,
	})

	rec, err := store.Fetch(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchCorruptBlobFailsClosed(t *testing.T) {
	store, _ := newFakeCredStore(t, map[string]string{
		"metafield(namespace:": `{"currentAppInstallation":{"metafield":{"value":"{not json"}}}`,
	})

	rec, err := store.Fetch(context.Background(), "broken@example.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStoreWritesUnderInstallationID(t *testing.T) {
	store, fake := newFakeCredStore(t, map[string]string{
		"currentAppInstallation {": `{"currentAppInstallation":{"id":"gid://shopify/AppInstallation/5"}}`,
		"metafieldsSet":            `{"metafieldsSet":{"metafields":[],"userErrors":[]}}`,
	})

	err := store.Store(context.Background(), "jane@example.com", entity.CredentialRecord{
		Handle:         "jane-doe",
		HashedPassword: "$2a$10$abc",
		NeedReset:      true,
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 2)
	set := fake.requests[1].Variables["metafields"].(map[string]any)
	assert.Equal(t, "gid://shopify/AppInstallation/5", set["ownerId"])
	assert.Equal(t, "json", set["type"])
	assert.Equal(t, "jane@example.com", set["key"])

	// Installation id is cached; a second write skips the lookup.
	require.NoError(t, store.Store(context.Background(), "jane@example.com", entity.CredentialRecord{
		Handle:         "jane-doe",
		HashedPassword: "$2a$10$abc",
	}))
	assert.Len(t, fake.requests, 3)
}