package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

// fakeStore serves canned GraphQL responses and records the requests it saw.
type fakeStore struct {
	t         *testing.T
	responses map[string]string // substring of query -> data payload
	requests  []graphqlRequest
}

func (f *fakeStore) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(f.t, "token-123", r.Header.Get("X-Shopify-Access-Token"))
		var req graphqlRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)
		for marker, data := range f.responses {
			if strings.Contains(req.Query, marker) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":` + data + `}`))
				return
			}
		}
		http.Error(w, "unexpected query", http.StatusBadRequest)
	}
}

func newFakeRepo(t *testing.T, responses map[string]string) (*MemberRepo, *fakeStore) {
	t.Helper()
	fake := &fakeStore{t: t, responses: responses}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "token-123", nil)
	return NewMemberRepo(client, "member_profile"), fake
}

func TestGetByHandleMapsRecord(t *testing.T) {
	repo, _ := newFakeRepo(t, map[string]string{
		"metaobjectByHandle": `{"metaobjectByHandle":{
			"id":"gid://shopify/Metaobject/1",
			"handle":"jane-doe",
			"fields":[
				{"key":"name","value":"Jane Doe","type":"single_line_text_field"},
				{"key":"tagline","value":null,"type":"single_line_text_field"},
				{"key":"reviews","value":"[\"gid://shopify/Metaobject/77\"]","type":"list.metaobject_reference",
					"references":{"edges":[{"node":{
						"id":"gid://shopify/Metaobject/77",
						"fields":[{"key":"reviewer","value":"Bob","type":"single_line_text_field"}]
					}}]}}
			]}}`,
	})

	rec, err := repo.GetByHandle(context.Background(), "jane-doe")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "gid://shopify/Metaobject/1", rec.ID)
	assert.Equal(t, "jane-doe", rec.Handle)
	require.Len(t, rec.Fields, 3)

	assert.Equal(t, "name", rec.Fields[0].Key)
	require.NotNil(t, rec.Fields[0].Value)
	assert.Equal(t, "Jane Doe", *rec.Fields[0].Value)

	assert.Nil(t, rec.Fields[1].Value)

	reviews := rec.Fields[2]
	require.Len(t, reviews.References, 1)
	assert.Equal(t, "gid://shopify/Metaobject/77", reviews.References[0].ID)
}

func TestGetByHandleAbsentIsNilNil(t *testing.T) {
	repo, _ := newFakeRepo(t, map[string]string{
		"metaobjectByHandle": `{"metaobjectByHandle":null}`,
	})

	rec, err := repo.GetByHandle(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCreateReturnsHandleAndID(t *testing.T) {
	repo, fake := newFakeRepo(t, map[string]string{
		"metaobjectCreate": `{"metaobjectCreate":{
			"metaobject":{"id":"gid://shopify/Metaobject/9","handle":"jane-doe"},
			"userErrors":[]}}`,
	})

	handle, id, err := repo.Create(context.Background(), "Jane Doe", "jane@example.com", entity.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", handle)
	assert.Equal(t, "gid://shopify/Metaobject/9", id)

	require.Len(t, fake.requests, 1)
	vars := fake.requests[0].Variables["metaobject"].(map[string]any)
	assert.Equal(t, "member_profile", vars["type"])
}

func TestUpdateMapsUserErrors(t *testing.T) {
	repo, _ := newFakeRepo(t, map[string]string{
		"metaobjectUpdate": `{"metaobjectUpdate":{
			"userErrors":[{"field":["metaobject","fields","0","value"],"message":"is too long","code":"TOO_LONG"}]}}`,
	})

	v := "x"
	err := repo.Update(context.Background(), "gid://shopify/Metaobject/1", []metaobject.RawField{
		{Key: "tagline", Value: &v},
	})
	require.Error(t, err)

	var ue repository.UserErrors
	require.ErrorAs(t, err, &ue)
	require.Len(t, ue, 1)
	assert.Equal(t, "value", ue[0].Field)
	assert.Equal(t, "is too long", ue[0].Message)
	assert.Equal(t, "TOO_LONG", ue[0].Code)
}

func TestTransportErrorOnGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled"}]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "token-123", nil)
	repo := NewMemberRepo(client, "member_profile")

	_, err := repo.GetByHandle(context.Background(), "jane-doe")
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "Throttled")
}

func TestListBuildsRoleQuery(t *testing.T) {
	repo, fake := newFakeRepo(t, map[string]string{
		"metaobjects(": `{"metaobjects":{
			"edges":[{"node":{
				"id":"gid://shopify/Metaobject/1","handle":"jane-doe","updatedAt":"2026-01-02T03:04:05Z",
				"name":{"value":"Jane Doe"},"email":{"value":"jane@example.com"},"role":{"value":"Founder"}}}],
			"pageInfo":{"hasNextPage":true,"hasPreviousPage":false,"startCursor":"a","endCursor":"b"}}}`,
	})

	members, page, err := repo.List(context.Background(), repository.ListOptions{
		Role:    entity.RoleFounder,
		Reverse: true,
	})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Jane Doe", members[0].Name)
	assert.Equal(t, entity.RoleFounder, members[0].Role)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "b", page.EndCursor)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, `fields.role:"Founder"`, fake.requests[0].Variables["query"])
	assert.Equal(t, float64(50), fake.requests[0].Variables["first"])
}
