package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/pkg/validator"
)

var ErrInvalidUpload = errors.New("invalid upload")

const maxImageSize = 2 * 1024 * 1024

// UploadService checks files before they are forwarded to the backend, which
// returns them as data URLs. Files are checked by extension and by sniffed
// content.
type UploadService struct {
	uploads           repository.UploadRepository
	maxSize           int64
	imageMaxSize      int64
	imageAllowedTypes []string
	fileAllowedTypes  []string
}

func NewUploadService(uploadRepo repository.UploadRepository, maxSize int64) *UploadService {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	imageMaxSize := int64(maxImageSize)
	if maxSize < imageMaxSize {
		imageMaxSize = maxSize
	}

	return &UploadService{
		uploads:           uploadRepo,
		maxSize:           maxSize,
		imageMaxSize:      imageMaxSize,
		imageAllowedTypes: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		fileAllowedTypes: []string{
			".pdf", ".doc", ".docx", ".xls", ".xlsx", ".txt", ".csv",
			".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
			".mp4", ".webm", ".mov",
		},
	}
}

func (s *UploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*models.UploadResult, error) {
	if file == nil {
		return nil, uploadError("image file is required")
	}
	if !validator.ValidateFileSize(file.Size, s.imageMaxSize) {
		return nil, uploadError("image size must be less than %d MB", s.imageMaxSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext, s.imageAllowedTypes) {
		return nil, uploadError("invalid file type, allowed: %s", strings.Join(s.imageAllowedTypes, ", "))
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, err
	}

	detected := validator.DetectFileType(data)
	if !validator.ValidateImageContentType(detected) {
		return nil, uploadError("file content is not an image")
	}

	return s.uploads.UploadImage(ctx, repository.MultipartFile{
		Filename:    validator.SanitizeFilename(file.Filename),
		ContentType: detected,
		Content:     bytes.NewReader(data),
	})
}

func (s *UploadService) UploadFile(ctx context.Context, file *multipart.FileHeader) (*models.UploadResult, error) {
	if file == nil {
		return nil, uploadError("file is required")
	}
	if !validator.ValidateFileSize(file.Size, s.maxSize) {
		return nil, uploadError("file size must be less than %d MB", s.maxSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext, s.fileAllowedTypes) {
		return nil, uploadError("invalid file type, allowed: %s", strings.Join(s.fileAllowedTypes, ", "))
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if detected := validator.DetectFileType(data); detected != "" {
		contentType = detected
	}
	if !acceptedFileContent(contentType) {
		return nil, uploadError("unsupported file content")
	}

	return s.uploads.UploadFile(ctx, repository.MultipartFile{
		Filename:    validator.SanitizeFilename(file.Filename),
		ContentType: contentType,
		Content:     bytes.NewReader(data),
	})
}

// acceptedFileContent allows product documents, images and hero background
// videos.
func acceptedFileContent(contentType string) bool {
	return validator.ValidateDocumentContentType(contentType) ||
		validator.ValidateImageContentType(contentType) ||
		validator.ValidateVideoContentType(contentType)
}

func (s *UploadService) isAllowedType(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		if ext == allowedExt {
			return true
		}
	}
	return false
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, uploadError("file is empty")
	}
	return data, nil
}

type uploadErr struct {
	message string
}

func (e *uploadErr) Error() string { return e.message }

func (e *uploadErr) Is(target error) bool {
	return target == ErrInvalidUpload || target == ErrInvalidInput
}

func uploadError(format string, args ...interface{}) error {
	return &uploadErr{message: fmt.Sprintf(format, args...)}
}
