package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"itemhub/internal/domain"
)

const (
	detailBadCredentials = "Incorrect username or password"
	detailBadToken       = "Invalid authentication credentials"
	detailInactive       = "Inactive user"
	detailForbidden      = "Not enough permissions."
	detailNotAuthorized  = "Not authenticated"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

// respondError maps service errors onto status codes. Operation failures
// keep their cause in the server log only.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		operation  *domain.OperationError
		validation *domain.ValidationError
	)

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusUnauthorized, detailBadCredentials)
	case errors.Is(err, domain.ErrInvalidToken):
		abortWithDetail(c, http.StatusUnauthorized, detailBadToken)
	case errors.Is(err, domain.ErrInactiveUser):
		abortWithDetail(c, http.StatusUnauthorized, detailInactive)
	case errors.Is(err, domain.ErrForbidden):
		abortWithDetail(c, http.StatusForbidden, detailForbidden)
	case errors.As(err, &notFound):
		abortWithDetail(c, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		abortWithDetail(c, http.StatusNotFound, "Not found.")
	case errors.As(err, &validation):
		abortWithDetail(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &operation):
		h.logger.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": operation.Err,
		}).Error(operation.Message)
		abortWithDetail(c, http.StatusBadRequest, operation.Message)
	default:
		h.logger.WithField("path", c.FullPath()).WithError(err).Error("request failed")
		abortWithDetail(c, http.StatusBadRequest, "Request failed.")
	}
}
