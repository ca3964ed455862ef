package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sda-collective/member-directory/config"
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/metaobject"
	"github.com/sda-collective/member-directory/pkg/validation"
)

// SchemaVariant selects which shape Assemble validates against.
type SchemaVariant int

const (
	// VariantFull is the member-facing profile with every editable field.
	VariantFull SchemaVariant = iota
	// VariantAdmin is the minimal admin shape: id, name, email, role.
	VariantAdmin
)

// SchemaOptions carries the configurable pieces of profile validation. The
// option lists are copied at construction; the schema never reads shared
// mutable state afterwards.
type SchemaOptions struct {
	ReviewsFieldKey string
	RichTextKeys    []string

	Languages    []string
	Services     []string
	Technologies []string
	Industries   []string
}

// SchemaOptionsFromConfig builds SchemaOptions from the loaded config.
func SchemaOptionsFromConfig(cfg *config.Config) SchemaOptions {
	return SchemaOptions{
		ReviewsFieldKey: cfg.ReviewsFieldKey,
		RichTextKeys:    metaobject.RichTextKeys,
		Languages:       cfg.Languages(),
		Services:        cfg.Services(),
		Technologies:    cfg.Technologies(),
		Industries:      cfg.Industries(),
	}
}

// ProfileSchema assembles raw store records into validated profiles and
// serializes partial updates back into raw fields.
type ProfileSchema struct {
	codec      *metaobject.Codec
	validate   *validator.Validate
	reviewsKey string

	languages    map[string]bool
	services     map[string]bool
	technologies map[string]bool
	industries   map[string]bool
}

func NewProfileSchema(opts SchemaOptions) *ProfileSchema {
	if opts.ReviewsFieldKey == "" {
		opts.ReviewsFieldKey = "reviews"
	}
	if opts.RichTextKeys == nil {
		opts.RichTextKeys = metaobject.RichTextKeys
	}
	return &ProfileSchema{
		codec:        metaobject.NewCodec(opts.RichTextKeys),
		validate:     validation.New(),
		reviewsKey:   opts.ReviewsFieldKey,
		languages:    toSet(opts.Languages),
		services:     toSet(opts.Services),
		technologies: toSet(opts.Technologies),
		industries:   toSet(opts.Industries),
	}
}

// Codec exposes the schema's field codec for callers that encode outside
// the profile shape (credential blobs, review fields).
func (s *ProfileSchema) Codec() *metaobject.Codec { return s.codec }

// Assemble decodes every field of the record, folds the result into a flat
// key→value map, and validates it for the requested variant. A structurally
// broken record returns *metaobject.MalformedRecordError; user-fixable
// problems return *ValidationError with field-path details.
func (s *ProfileSchema) Assemble(rec *metaobject.Record, variant SchemaVariant) (*entity.Profile, error) {
	m, err := s.codec.Flatten(rec)
	if err != nil {
		return nil, err
	}

	b := &fieldReader{m: m, details: map[string]string{}}
	p := &entity.Profile{
		ID:           b.str("id"),
		Name:         b.str("name"),
		Email:        b.str("email"),
		Tagline:      b.strPtr("tagline"),
		Description:  b.strPtr("description"),
		Visible:      b.boolOrFalse("profile"),
		OpenToWork:   b.boolOrFalse("open_to_work"),
		ProfilePhoto: b.strPtr("profile_photo"),
		WorkingHours: b.strPtr("working_hours"),

		Languages:          b.strList("languages"),
		PrimaryService:     b.strPtr("primary_service"),
		Services:           b.strList("services"),
		Technologies:       b.strList("technologies"),
		IndustryExperience: b.strList("industry_experience"),

		Links: entity.Links{
			Website:            b.strPtr("website"),
			Twitter:            b.strPtr("twitter"),
			LinkedIn:           b.strPtr("linked_in"),
			GitHub:             b.strPtr("github"),
			YouTube:            b.strPtr("you_tube"),
			AlternativeContact: b.strPtr("alternative_contact"),
		},

		AdditionalServices: b.strPtr("additional_services"),
		SkillsNotes:        b.strPtr("skills_and_technologies_additional_notes"),
		PortfolioSites:     b.strPtr("portfolio_sites"),
		OtherLinks:         b.strPtr("other_links"),

		Reviews: b.reviews(s.reviewsKey),
	}

	role := b.str("role")
	p.Role = entity.Role(role)
	if variant == VariantAdmin {
		if role == "" {
			b.details["role"] = "is required"
		} else if !entity.ValidRole(role) {
			b.details["role"] = roleMessage()
		}
	}

	if err := s.validate.Struct(p); err != nil {
		for k, msg := range validation.ToDetails(err) {
			if _, seen := b.details[k]; !seen {
				b.details[k] = msg
			}
		}
	}
	if variant == VariantFull {
		s.checkOptionLists(p, b.details)
	}

	if len(b.details) > 0 {
		return nil, &ValidationError{Details: b.details}
	}
	return p, nil
}

func (s *ProfileSchema) checkOptionLists(p *entity.Profile, details map[string]string) {
	checkList(details, "languages", p.Languages, s.languages)
	checkList(details, "services", p.Services, s.services)
	checkList(details, "technologies", p.Technologies, s.technologies)
	checkList(details, "industry_experience", p.IndustryExperience, s.industries)
	if p.PrimaryService != nil && *p.PrimaryService != "" && !s.services[*p.PrimaryService] {
		setIfAbsent(details, "primary_service", fmt.Sprintf("unsupported service %q", *p.PrimaryService))
	}
}

func checkList(details map[string]string, key string, values []string, allowed map[string]bool) {
	for _, v := range values {
		if !allowed[v] {
			setIfAbsent(details, key, fmt.Sprintf("contains an unsupported value %q", v))
			return
		}
	}
}

func setIfAbsent(details map[string]string, key, msg string) {
	if _, ok := details[key]; !ok {
		details[key] = msg
	}
}

func roleMessage() string {
	return fmt.Sprintf("must be one of: %s, %s, %s",
		entity.RoleFounder, entity.RoleFoundingMember, entity.RoleMember)
}

func toSet(vs []string) map[string]bool {
	m := make(map[string]bool, len(vs))
	for _, v := range vs {
		m[v] = true
	}
	return m
}

// fieldReader pulls typed values out of the flattened map, recording a
// detail entry whenever a key holds a value of the wrong runtime kind.
type fieldReader struct {
	m       map[string]any
	details map[string]string
}

func (r *fieldReader) str(key string) string {
	v, ok := r.m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		setIfAbsent(r.details, key, "must be text")
		return ""
	}
	return s
}

func (r *fieldReader) strPtr(key string) *string {
	v, ok := r.m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		setIfAbsent(r.details, key, "must be text")
		return nil
	}
	return &s
}

func (r *fieldReader) boolOrFalse(key string) bool {
	v, ok := r.m[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		setIfAbsent(r.details, key, "must be a boolean")
		return false
	}
	return b
}

func (r *fieldReader) strList(key string) []string {
	v, ok := r.m[key]
	if !ok {
		return nil
	}
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				setIfAbsent(r.details, key, "must be a list of text values")
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	setIfAbsent(r.details, key, "must be a list of text values")
	return nil
}

// reviews accepts either a single reference or a reference list under the
// configured key; the store-side definition has shipped both shapes.
func (r *fieldReader) reviews(key string) *entity.ReviewSet {
	v, ok := r.m[key]
	if !ok {
		return nil
	}
	switch rv := v.(type) {
	case metaobject.ListReferenceValue:
		set := &entity.ReviewSet{IDs: rv.IDs}
		for _, ref := range rv.References {
			set.References = append(set.References, reviewFromReference(ref))
		}
		return set
	case metaobject.ReferenceValue:
		return &entity.ReviewSet{
			IDs:        []string{rv.ID},
			References: []entity.Review{reviewFromReference(rv)},
		}
	}
	setIfAbsent(r.details, key, "must be a reference list")
	return nil
}

func reviewFromReference(ref metaobject.ReferenceValue) entity.Review {
	rev := entity.Review{ID: ref.ID}
	if s, ok := ref.Fields["reference"].(string); ok {
		rev.Reference = s
	}
	if s, ok := ref.Fields["reviewer"].(string); ok {
		rev.Reviewer = s
	}
	if s, ok := ref.Fields["link"].(string); ok {
		rev.Link = s
	}
	return rev
}
