package application

import (
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/metaobject"
	"github.com/sda-collective/member-directory/pkg/validation"
)

// ProfileUpdate is a partial profile edit. A nil pointer means "leave
// unchanged" and is omitted from the encoded set; a pointer to a zero value
// means "clear" and encodes to an explicit empty string; the store needs
// the empty value to distinguish clearing from omission.
//
// The id is never part of an update and email is immutable in the member
// flow, so neither appears here.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=3"`

	// Role is admin-assigned; the member-facing handler discards it before
	// serializing.
	Role *string `json:"role,omitempty"`

	Tagline     *string `json:"tagline,omitempty"`
	Description *string `json:"description,omitempty"`

	Visible    *bool `json:"profile,omitempty"`
	OpenToWork *bool `json:"open_to_work,omitempty"`

	ProfilePhoto *string `json:"profile_photo,omitempty" validate:"omitempty,url"`
	WorkingHours *string `json:"working_hours,omitempty"`

	Languages          *[]string `json:"languages,omitempty"`
	PrimaryService     *string   `json:"primary_service,omitempty"`
	Services           *[]string `json:"services,omitempty"`
	Technologies       *[]string `json:"technologies,omitempty"`
	IndustryExperience *[]string `json:"industry_experience,omitempty"`

	Website            *string `json:"website,omitempty" validate:"omitempty,url"`
	Twitter            *string `json:"twitter,omitempty" validate:"omitempty,url"`
	LinkedIn           *string `json:"linked_in,omitempty" validate:"omitempty,url"`
	GitHub             *string `json:"github,omitempty" validate:"omitempty,url"`
	YouTube            *string `json:"you_tube,omitempty" validate:"omitempty,url"`
	AlternativeContact *string `json:"alternative_contact,omitempty"`

	AdditionalServices *string `json:"additional_services,omitempty"`
	SkillsNotes        *string `json:"skills_and_technologies_additional_notes,omitempty"`
	PortfolioSites     *string `json:"portfolio_sites,omitempty"`
	OtherLinks         *string `json:"other_links,omitempty"`

	// ReviewIDs rewrites the profile's review reference list. The field key
	// it serializes under is configuration, not a literal.
	ReviewIDs *[]string `json:"reviews,omitempty"`
}

// Serialize validates a partial update and re-encodes it into the raw
// key/value shape the store's update mutation expects. Absent fields are
// omitted; cleared fields encode as "".
func (s *ProfileSchema) Serialize(u ProfileUpdate) ([]metaobject.RawField, error) {
	details := map[string]string{}
	if err := s.validate.Struct(u); err != nil {
		for k, msg := range validation.ToDetails(err) {
			setIfAbsent(details, k, msg)
		}
	}
	if u.Role != nil && !entity.ValidRole(*u.Role) {
		setIfAbsent(details, "role", roleMessage())
	}
	s.checkUpdateOptionLists(u, details)
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	var fields []metaobject.RawField
	addStr := func(key string, v *string) {
		if v != nil {
			fields = append(fields, s.codec.Encode(key, *v))
		}
	}
	addBool := func(key string, v *bool) {
		if v != nil {
			fields = append(fields, s.codec.Encode(key, *v))
		}
	}
	addList := func(key string, v *[]string) {
		if v == nil {
			return
		}
		if len(*v) == 0 {
			fields = append(fields, s.codec.Encode(key, nil))
			return
		}
		fields = append(fields, s.codec.Encode(key, *v))
	}

	addStr("name", u.Name)
	addStr("role", u.Role)
	addStr("tagline", u.Tagline)
	addStr("description", u.Description)
	addBool("profile", u.Visible)
	addBool("open_to_work", u.OpenToWork)
	addStr("profile_photo", u.ProfilePhoto)
	addStr("working_hours", u.WorkingHours)
	addList("languages", u.Languages)
	addStr("primary_service", u.PrimaryService)
	addList("services", u.Services)
	addList("technologies", u.Technologies)
	addList("industry_experience", u.IndustryExperience)
	addStr("website", u.Website)
	addStr("twitter", u.Twitter)
	addStr("linked_in", u.LinkedIn)
	addStr("github", u.GitHub)
	addStr("you_tube", u.YouTube)
	addStr("alternative_contact", u.AlternativeContact)
	addStr("additional_services", u.AdditionalServices)
	addStr("skills_and_technologies_additional_notes", u.SkillsNotes)
	addStr("portfolio_sites", u.PortfolioSites)
	addStr("other_links", u.OtherLinks)
	addList(s.reviewsKey, u.ReviewIDs)

	return fields, nil
}

func (s *ProfileSchema) checkUpdateOptionLists(u ProfileUpdate, details map[string]string) {
	if u.Languages != nil {
		checkList(details, "languages", *u.Languages, s.languages)
	}
	if u.Services != nil {
		checkList(details, "services", *u.Services, s.services)
	}
	if u.Technologies != nil {
		checkList(details, "technologies", *u.Technologies, s.technologies)
	}
	if u.IndustryExperience != nil {
		checkList(details, "industry_experience", *u.IndustryExperience, s.industries)
	}
	if u.PrimaryService != nil && *u.PrimaryService != "" && !s.services[*u.PrimaryService] {
		setIfAbsent(details, "primary_service", "unsupported service "+*u.PrimaryService)
	}
}
