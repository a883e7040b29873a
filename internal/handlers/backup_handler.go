package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/service"
	"ellavera-site/pkg/logger"
)

type BackupHandler struct {
	service *service.BackupService
}

func NewBackupHandler(service *service.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

func (h *BackupHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export streams the archive built by the backend to the operator without
// buffering it.
func (h *BackupHandler) Export(c *gin.Context) {
	includeMedia := true
	if raw := strings.TrimSpace(c.Query("include_media")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "include_media must be true or false"})
			return
		}
		includeMedia = parsed
	}

	download, err := h.service.Download(c.Request.Context(), c.Query("format"), includeMedia)
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := download.Close(); err != nil {
			logger.FromContext(c.Request.Context()).WithError(err).Warn("Failed to close backup stream")
		}
	}()

	c.DataFromReader(http.StatusOK, download.ContentLength, download.ContentType, download.Body, map[string]string{
		"Content-Disposition": download.ContentDisposition,
	})
}
