package entity

// Role is a member's standing in the directory. Assigned by admins at
// creation time; members cannot change their own role.
type Role string

const (
	RoleFounder        Role = "Founder"
	RoleFoundingMember Role = "Founding Member"
	RoleMember         Role = "Member"
)

// Roles lists every assignable role.
var Roles = []Role{RoleFounder, RoleFoundingMember, RoleMember}

// ValidRole reports whether s names an assignable role.
func ValidRole(s string) bool {
	for _, r := range Roles {
		if string(r) == s {
			return true
		}
	}
	return false
}

// Links groups the profile's outbound URLs. All optional; each, when
// present, must be a syntactically valid URL.
type Links struct {
	Website            *string `json:"website,omitempty" validate:"omitempty,url"`
	Twitter            *string `json:"twitter,omitempty" validate:"omitempty,url"`
	LinkedIn           *string `json:"linked_in,omitempty" validate:"omitempty,url"`
	GitHub             *string `json:"github,omitempty" validate:"omitempty,url"`
	YouTube            *string `json:"you_tube,omitempty" validate:"omitempty,url"`
	AlternativeContact *string `json:"alternative_contact,omitempty"`
}

// Review is one testimonial attached to a profile, stored as its own
// metaobject and referenced from the profile's review list.
type Review struct {
	ID        string `json:"id"`
	Reference string `json:"reference" validate:"required"`
	Reviewer  string `json:"reviewer" validate:"required"`
	Link      string `json:"link" validate:"omitempty,url"`
}

// ReviewSet pairs the ordered reference-id list with the resolved reviews.
// The two are not index-aligned; the store returns resolved records in its
// own order.
type ReviewSet struct {
	IDs        []string `json:"ids"`
	References []Review `json:"references"`
}

// Profile is the validated member record assembled from the store. The store
// is the sole source of truth; a Profile lives for one request and is never
// cached.
type Profile struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role,omitempty"`

	Tagline     *string `json:"tagline,omitempty"`
	Description *string `json:"description,omitempty"`

	Visible    bool `json:"profile"`
	OpenToWork bool `json:"open_to_work"`

	ProfilePhoto *string `json:"profile_photo,omitempty" validate:"omitempty,url"`
	WorkingHours *string `json:"working_hours,omitempty"`

	Languages          []string `json:"languages,omitempty"`
	PrimaryService     *string  `json:"primary_service,omitempty"`
	Services           []string `json:"services,omitempty"`
	Technologies       []string `json:"technologies,omitempty"`
	IndustryExperience []string `json:"industry_experience,omitempty"`

	Links Links `json:"links"`

	AdditionalServices *string `json:"additional_services,omitempty"`
	SkillsNotes        *string `json:"skills_and_technologies_additional_notes,omitempty"`
	PortfolioSites     *string `json:"portfolio_sites,omitempty"`
	OtherLinks         *string `json:"other_links,omitempty"`

	Reviews *ReviewSet `json:"reviews,omitempty"`
}

// Summary is the listing row for the admin directory table.
type Summary struct {
	ID        string `json:"id"`
	Handle    string `json:"handle"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
