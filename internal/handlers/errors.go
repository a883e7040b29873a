package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/editor"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/service"
	"ellavera-site/pkg/logger"
)

// statusFor maps an error to the status the admin API answers with. Backend
// failures keep the backend status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, editor.ErrInvalidPath),
		errors.Is(err, editor.ErrNotAList),
		errors.Is(err, editor.ErrInvalidOrder),
		errors.Is(err, editor.ErrSectionTypeRequired):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrSaveInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	}

	var apiErr *repository.APIError
	if errors.As(err, &apiErr) {
		return repository.StatusOf(err, http.StatusBadGateway)
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes the {"error": ...} notification of a failed call.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := repository.MessageOf(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
		var apiErr *repository.APIError
		if !errors.As(err, &apiErr) {
			message = "internal server error"
		}
	}
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
