package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/pkg/logger"
)

type BackupService struct {
	backups repository.BackupRepository
	now     func() time.Time
}

func NewBackupService(backupRepo repository.BackupRepository) *BackupService {
	return &BackupService{backups: backupRepo, now: time.Now}
}

func (s *BackupService) Stats(ctx context.Context) (models.BackupStats, error) {
	return s.backups.Stats(ctx)
}

// Download opens the backup archive stream. The caller closes it.
func (s *BackupService) Download(ctx context.Context, format string, includeMedia bool) (*repository.BackupDownload, error) {
	backupFormat := models.BackupFormat(strings.ToLower(strings.TrimSpace(format)))
	if backupFormat == "" {
		backupFormat = models.BackupFormatJSON
	}
	if !backupFormat.Valid() {
		return nil, invalidInput("unsupported backup format %q", format)
	}

	download, err := s.backups.Download(ctx, backupFormat, includeMedia)
	if err != nil {
		return nil, err
	}
	if download.ContentDisposition == "" {
		download.ContentDisposition = fmt.Sprintf(`attachment; filename="ellavera_backup_%s_%s.zip"`,
			backupFormat, s.now().UTC().Format("20060102_150405"))
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"format":        backupFormat,
		"include_media": includeMedia,
	}).Info("Backup download started")

	return download, nil
}
