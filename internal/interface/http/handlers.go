package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/metaobject"
	"github.com/sda-collective/member-directory/internal/infrastructure/shopify"
	"github.com/sda-collective/member-directory/pkg/response"
)

// writeError maps service errors onto the response envelope. Validation
// failures render inline; store faults become a 502 so callers can tell a
// bad request from a bad upstream.
func writeError(c *gin.Context, err error) {
	if ve, ok := application.AsValidation(err); ok {
		response.Fail(c, http.StatusUnprocessableEntity, "validation failed", ve.Details)
		return
	}
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Fail(c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, "not found", nil)
		return
	}
	var te *shopify.TransportError
	var mre *metaobject.MalformedRecordError
	if errors.As(err, &te) || errors.As(err, &mre) {
		response.Fail(c, http.StatusBadGateway, "member store unavailable", nil)
		return
	}
	response.Fail(c, http.StatusInternalServerError, "internal error", nil)
}
