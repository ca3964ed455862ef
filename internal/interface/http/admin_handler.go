package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/pkg/response"
	"github.com/sda-collective/member-directory/pkg/validation"
)

// AdminHandler serves the key-protected admin surface: member provisioning
// and the full directory listing.
type AdminHandler struct {
	Profiles *application.ProfileService
	Auth     *application.AuthService
	Logger   *logrus.Logger
}

func NewAdminHandler(profiles *application.ProfileService, auth *application.AuthService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Profiles: profiles, Auth: auth, Logger: logger}
}

// List GET /api/admin/members?role=&direction=&cursor=&reverse=
func (h *AdminHandler) List(c *gin.Context) {
	role := c.Query("role")
	if role != "" && !entity.ValidRole(role) {
		response.Fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"role": "unknown role"})
		return
	}
	opts := repository.ListOptions{
		Role:      entity.Role(role),
		Direction: c.Query("direction"),
		Cursor:    c.Query("cursor"),
		Reverse:   c.Query("reverse") != "false",
	}
	members, page, err := h.Profiles.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OKWithMeta(c, http.StatusOK, members, "members", page)
}

// Create POST /api/admin/members
func (h *AdminHandler) Create(c *gin.Context) {
	var req application.CreateMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	handle, err := h.Auth.CreateMember(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"handle": handle}, "member created")
}

// Get GET /api/admin/members/:handle
// The admin variant additionally requires the role field to be present and
// assignable.
func (h *AdminHandler) Get(c *gin.Context) {
	p, err := h.Profiles.GetByHandle(c.Request.Context(), c.Param("handle"), application.VariantAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "member profile")
}

// Update PUT /api/admin/members/:handle
func (h *AdminHandler) Update(c *gin.Context) {
	var req application.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.Profiles.GetByHandle(ctx, c.Param("handle"), application.VariantAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.Profiles.Update(ctx, p.ID, req); err != nil {
		writeError(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "profile updated")
}
