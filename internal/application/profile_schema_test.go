package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

func testSchema() *ProfileSchema {
	return NewProfileSchema(SchemaOptions{
		ReviewsFieldKey: "reviews",
		Languages:       []string{"English", "French"},
		Services:        []string{"Design", "SEO"},
		Technologies:    []string{"Liquid", "React"},
		Industries:      []string{"Fashion", "Food"},
	})
}

func field(key, typ, value string) metaobject.RawField {
	v := value
	return metaobject.RawField{Key: key, Type: metaobject.ValueType(typ), Value: &v}
}

func memberRecord(overrides ...metaobject.RawField) *metaobject.Record {
	rec := &metaobject.Record{
		ID:     "gid://shopify/Metaobject/1",
		Handle: "jane-doe",
		Fields: []metaobject.RawField{
			field("name", "single_line_text_field", "Jane Doe"),
			field("email", "single_line_text_field", "jane@example.com"),
			field("role", "single_line_text_field", "Member"),
			field("profile", "boolean", "true"),
			field("open_to_work", "boolean", "false"),
			field("languages", "list.single_line_text", `["English","French"]`),
			field("description", "rich_text_field", `{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","value":"I build storefronts."}]}]}`),
		},
	}
	for _, o := range overrides {
		replaced := false
		for i := range rec.Fields {
			if rec.Fields[i].Key == o.Key {
				rec.Fields[i] = o
				replaced = true
			}
		}
		if !replaced {
			rec.Fields = append(rec.Fields, o)
		}
	}
	return rec
}

func TestAssembleFullProfile(t *testing.T) {
	t.Parallel()
	s := testSchema()

	p, err := s.Assemble(memberRecord(), VariantFull)
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/Metaobject/1", p.ID)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, entity.RoleMember, p.Role)
	assert.True(t, p.Visible)
	assert.False(t, p.OpenToWork)
	assert.Equal(t, []string{"English", "French"}, p.Languages)
	require.NotNil(t, p.Description)
	assert.Equal(t, "I build storefronts.", *p.Description)
}

func TestAssembleMissingNameCollectsDetail(t *testing.T) {
	t.Parallel()
	s := testSchema()

	_, err := s.Assemble(memberRecord(field("name", "single_line_text_field", "")), VariantFull)
	ve, ok := AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Contains(t, ve.Details, "name")
}

func TestAssembleRejectsUnknownOptionValue(t *testing.T) {
	t.Parallel()
	s := testSchema()

	_, err := s.Assemble(memberRecord(field("languages", "list.single_line_text", `["English","Klingon"]`)), VariantFull)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details["languages"], "Klingon")
}

func TestAssembleAdminVariantRequiresRole(t *testing.T) {
	t.Parallel()
	s := testSchema()

	_, err := s.Assemble(memberRecord(field("role", "single_line_text_field", "")), VariantAdmin)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "is required", ve.Details["role"])

	_, err = s.Assemble(memberRecord(field("role", "single_line_text_field", "Emperor")), VariantAdmin)
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details["role"], "Founder")
}

func TestAssembleFullVariantIgnoresRoleValue(t *testing.T) {
	t.Parallel()
	s := testSchema()

	// The member-facing shape carries the role as-is; only the admin shape
	// enforces it.
	p, err := s.Assemble(memberRecord(field("role", "single_line_text_field", "")), VariantFull)
	require.NoError(t, err)
	assert.Empty(t, string(p.Role))
}

func TestAssembleCollectsEveryDetailAtOnce(t *testing.T) {
	t.Parallel()
	s := testSchema()

	_, err := s.Assemble(memberRecord(
		field("name", "single_line_text_field", ""),
		field("email", "single_line_text_field", "not-an-email"),
		field("languages", "list.single_line_text", `["Klingon"]`),
	), VariantFull)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details, "name")
	assert.Contains(t, ve.Details, "email")
	assert.Contains(t, ve.Details, "languages")
}

func TestAssembleReviews(t *testing.T) {
	t.Parallel()
	s := testSchema()

	review := metaobject.Record{
		ID: "gid://shopify/Metaobject/77",
		Fields: []metaobject.RawField{
			field("reference", "single_line_text_field", "Acme migration"),
			field("reviewer", "single_line_text_field", "Bob"),
			field("link", "url", "https://acme.example.com"),
		},
	}
	ids := `["gid://shopify/Metaobject/77"]`
	rec := memberRecord(metaobject.RawField{
		Key:        "reviews",
		Type:       "list.metaobject_reference",
		Value:      &ids,
		References: []metaobject.Record{review},
	})

	p, err := s.Assemble(rec, VariantFull)
	require.NoError(t, err)
	require.NotNil(t, p.Reviews)
	assert.Equal(t, []string{"gid://shopify/Metaobject/77"}, p.Reviews.IDs)
	require.Len(t, p.Reviews.References, 1)
	assert.Equal(t, "gid://shopify/Metaobject/77", p.Reviews.References[0].ID)
	assert.Equal(t, "Bob", p.Reviews.References[0].Reviewer)
}

func TestAssembleMalformedRecordIsFatal(t *testing.T) {
	t.Parallel()
	s := testSchema()

	rec := memberRecord(field("profile", "boolean", "maybe"))
	_, err := s.Assemble(rec, VariantFull)
	require.Error(t, err)

	var mre *metaobject.MalformedRecordError
	assert.ErrorAs(t, err, &mre)
	_, isValidation := AsValidation(err)
	assert.False(t, isValidation)
}
