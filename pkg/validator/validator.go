package validator

import (
	"bytes"
	"mime"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	initOnce  sync.Once

	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	phoneRegex    = regexp.MustCompile(`^[0-9+()\-\s.]{5,32}$`)
	spaceRegex    = regexp.MustCompile(`\s+`)
	filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("hexcolor_css", validateHexColor)
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidateHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

func validateHexColor(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return ValidateHexColor(value)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneRegex.MatchString(value)
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func NormalizeSpaces(s string) string {
	return spaceRegex.ReplaceAllString(s, " ")
}

func SanitizeFilename(filename string) string {
	return filenameRegex.ReplaceAllString(filename, "_")
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}

// ValidateContentType validates that the provided MIME type is in the allowed list
func ValidateContentType(contentType string, allowedMimeTypes []string) bool {
	if contentType == "" || len(allowedMimeTypes) == 0 {
		return false
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	for _, allowed := range allowedMimeTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))

		if mimeType == allowed {
			return true
		}

		// "image/*" matches "image/png"
		if strings.HasSuffix(allowed, "/*") {
			prefix := strings.TrimSuffix(allowed, "/*")
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
		}
	}

	return false
}

// DetectFileType sniffs the magic number of common upload formats.
// Returns an empty string when nothing matches.
func DetectFileType(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	switch {
	case bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}):
		return "image/png"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte{0x47, 0x49, 0x46, 0x38}):
		return "image/gif"
	case bytes.HasPrefix(data, []byte{0x52, 0x49, 0x46, 0x46}) && len(data) > 12 &&
		bytes.HasPrefix(data[8:], []byte{0x57, 0x45, 0x42, 0x50}):
		return "image/webp"
	case bytes.HasPrefix(data, []byte{0x25, 0x50, 0x44, 0x46}):
		return "application/pdf"
	case bytes.HasPrefix(data, []byte{0x50, 0x4B, 0x03, 0x04}):
		return "application/zip"
	case len(data) > 12 && bytes.HasPrefix(data[4:], []byte{0x66, 0x74, 0x79, 0x70}):
		return "video/mp4"
	case bytes.HasPrefix(data, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return "video/webm"
	}

	if isProbablyText(data) {
		return "text/plain"
	}

	return ""
}

func isProbablyText(data []byte) bool {
	checkSize := 512
	if len(data) < checkSize {
		checkSize = len(data)
	}

	for i := 0; i < checkSize; i++ {
		if data[i] == 0 {
			return false
		}
	}
	return true
}

// ValidateImageContentType validates image MIME types
func ValidateImageContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"image/x-icon",
	})
}

// ValidateVideoContentType validates hero background videos.
func ValidateVideoContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"video/mp4",
		"video/webm",
		"video/quicktime",
	})
}

// ValidateDocumentContentType validates product documents.
func ValidateDocumentContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"application/pdf",
		"text/plain",
		"text/csv",
		"application/msword",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/zip",
	})
}
