package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
	"github.com/sda-collective/member-directory/pkg/helpers"
	"github.com/sda-collective/member-directory/pkg/response"
	"github.com/sda-collective/member-directory/pkg/validation"
)

const maxPhotoBytes = 5 << 20

// MemberHandler serves the member-facing profile surface. All routes sit
// behind the session guard; writes additionally require the route handle to
// match the session.
type MemberHandler struct {
	Profiles *application.ProfileService
	Photos   *helpers.PhotoStore
	Logger   *logrus.Logger
}

func NewMemberHandler(profiles *application.ProfileService, photos *helpers.PhotoStore, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{Profiles: profiles, Photos: photos, Logger: logger}
}

// Get GET /api/members/:handle
func (h *MemberHandler) Get(c *gin.Context) {
	p, err := h.Profiles.GetByHandle(c.Request.Context(), c.Param("handle"), application.VariantFull)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "member profile")
}

// Update PUT /api/members/:handle
func (h *MemberHandler) Update(c *gin.Context) {
	var req application.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	// Role is assigned through the admin surface only.
	req.Role = nil

	ctx := c.Request.Context()
	p, err := h.Profiles.GetByHandle(ctx, c.Param("handle"), application.VariantFull)
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

// UpdateReview PUT /api/members/:handle/reviews/:reviewID
// The review must be referenced from the member's own profile.
func (h *MemberHandler) UpdateReview(c *gin.Context) {
	var req application.ReviewUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.Profiles.GetByHandle(ctx, c.Param("handle"), application.VariantFull)
	if err != nil {
		writeError(c, err)
		return
	}

	reviewID := c.Param("reviewID")
	if !ownsReview(p.Reviews, reviewID) {
		response.Fail(c, http.StatusNotFound, "not found", nil)
		return
	}
	if err := h.Profiles.UpdateReview(ctx, reviewID, req); err != nil {
		writeError(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "review updated")
}

// UploadPhoto POST /api/members/:handle/photo
// Multipart upload under the "photo" field; the stored URL is written back
// to the profile.
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	if h.Photos == nil {
		response.Fail(c, http.StatusServiceUnavailable, "photo uploads disabled", nil)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "photo file is required"})
		return
	}
	if file.Size > maxPhotoBytes {
		response.Fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "photo exceeds the 5MB limit"})
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !h.Photos.Accepts(contentType) {
		response.Fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "unsupported image type"})
		return
	}

	ctx := c.Request.Context()
	handle := middleware.SessionHandle(c)
	p, err := h.Profiles.GetByHandle(ctx, handle, application.VariantFull)
	if err != nil {
		writeError(c, err)
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "unreadable upload"})
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.Photos.Upload(ctx, handle, contentType, src)
	if err != nil {
		h.Logger.WithError(err).Error("photo upload failed")
		response.Fail(c, http.StatusBadGateway, "photo storage unavailable", nil)
		return
	}
	if err := h.Profiles.SetProfilePhoto(ctx, p.ID, url); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"profile_photo": url}, "photo updated")
}

func ownsReview(set *entity.ReviewSet, reviewID string) bool {
	if set == nil {
		return false
	}
	for _, id := range set.IDs {
		if id == reviewID {
			return true
		}
	}
	for _, r := range set.References {
		if r.ID == reviewID {
			return true
		}
	}
	return false
}
