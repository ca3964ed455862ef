package application

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/pkg/helpers"
	"github.com/sda-collective/member-directory/pkg/mailer"
	"github.com/sda-collective/member-directory/pkg/validation"
)

// AuthService owns login verification, member provisioning, and the
// password-reset flow. Credentials live in the store's metafield namespace;
// there is no local user table.
type AuthService struct {
	Members     repository.MemberRepository
	Credentials repository.CredentialStore
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool

	validate *validator.Validate
}

func NewAuthService(members repository.MemberRepository, creds repository.CredentialStore, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthService {
	return &AuthService{
		Members:     members,
		Credentials: creds,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
		validate:    validation.New(),
	}
}

// LoginResult is what a successful login binds the session to.
type LoginResult struct {
	Handle    string
	NeedReset bool
}

// Login verifies an email/password pair against the credential store.
// Unknown email, unusable record, and wrong password all return
// ErrInvalidCredentials; a credential-store transport failure is returned
// as-is and must be treated as a failed request, never a failed login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	email := normalizeEmail(username)
	rec, err := s.Credentials.Fetch(ctx, email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("credential fetch failed")
		}
		return nil, err
	}
	if rec == nil || !rec.Valid() {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(rec.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return &LoginResult{Handle: rec.Handle, NeedReset: rec.NeedReset}, nil
}

// CreateMemberInput is the admin form for provisioning a member.
type CreateMemberInput struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,min=3,email"`
	Role            string `json:"role" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// CreateMember provisions a member record and its credential. The initial
// password is admin-issued, so the credential is stored with needReset set
// and the member is forced through the reset flow on first login.
func (s *AuthService) CreateMember(ctx context.Context, in CreateMemberInput) (handle string, err error) {
	details := map[string]string{}
	if err := s.validate.Struct(in); err != nil {
		for k, msg := range validation.ToDetails(err) {
			setIfAbsent(details, k, msg)
		}
	}
	if in.Role != "" && !entity.ValidRole(in.Role) {
		setIfAbsent(details, "role", roleMessage())
	}
	if len(details) > 0 {
		return "", &ValidationError{Details: details}
	}

	email := normalizeEmail(in.Email)
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	handle, _, err = s.Members.Create(ctx, in.Name, email, entity.Role(in.Role))
	if err != nil {
		return "", err
	}
	if err := s.Credentials.Store(ctx, email, entity.CredentialRecord{
		Handle:         handle,
		HashedPassword: hash,
		NeedReset:      true,
	}); err != nil {
		return "", err
	}

	s.sendMail(ctx, email, mailer.TemplateMemberWelcome, map[string]any{
		"Name":   in.Name,
		"Handle": handle,
	})
	return handle, nil
}

// ResetPasswordInput is the reset form. Email re-proves identity against
// the credential store; a session cookie alone is not enough to rotate a
// hash.
type ResetPasswordInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ResetPassword replaces the member's hash and clears needReset. The email
// must resolve to a credential record bound to the route's handle.
func (s *AuthService) ResetPassword(ctx context.Context, handle string, in ResetPasswordInput) error {
	if err := s.validate.Struct(in); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}

	email := normalizeEmail(in.Email)
	rec, err := s.Credentials.Fetch(ctx, email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("credential fetch failed during reset")
		}
		return err
	}
	if rec == nil || !rec.Valid() || rec.Handle != handle {
		// Same message whether the email is unknown or belongs to someone
		// else.
		return &ValidationError{Details: map[string]string{"email": "invalid email"}}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	if err := s.Credentials.Store(ctx, email, entity.CredentialRecord{
		Handle:         handle,
		HashedPassword: hash,
		NeedReset:      false,
	}); err != nil {
		return err
	}

	s.sendMail(ctx, email, mailer.TemplatePasswordChanged, map[string]any{
		"Handle": handle,
	})
	return nil
}

func (s *AuthService) sendMail(ctx context.Context, to, template string, data map[string]any) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("email job publish failed")
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
