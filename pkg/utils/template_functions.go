package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// AssetVersionFunc returns the cache busting version of a static asset.
type AssetVersionFunc func(path string) string

// GetTemplateFuncs returns the functions shared by every site template.
func GetTemplateFuncs(assetVersion AssetVersionFunc) template.FuncMap {
	return template.FuncMap{
		"eq":    func(a, b interface{}) bool { return a == b },
		"title": Capitalize,
		"truncate": func(s string, length int) string {
			runes := []rune(s)
			if len(runes) <= length {
				return s
			}
			return strings.TrimSpace(string(runes[:length])) + "..."
		},
		"initials":      Initials,
		"pathEquals":    pathEquals,
		"formatDate":    formatDate,
		"default":       defaultValue,
		"guessFileType": guessFileType,
		"asset": func(path string) string {
			return versionedAsset(path, assetVersion)
		},
	}
}

var dateLayouts = map[string]string{
	"short":    "02/01/2006",
	"medium":   "January 2, 2006",
	"long":     "Monday, January 2, 2006",
	"datetime": "02/01/2006 15:04",
	"iso":      time.RFC3339,
}

func formatDate(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	if layout, ok := dateLayouts[format]; ok {
		return t.Format(layout)
	}
	return t.Format(format)
}

func defaultValue(fallback, value interface{}) interface{} {
	if isEmpty(value) {
		return fallback
	}
	return value
}

func pathEquals(current, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	return NormalizePath(current) == NormalizePath(value)
}

// versionedAsset appends the content version of a local asset so browsers
// refetch it after a deploy. Remote URLs are returned unchanged.
func versionedAsset(path string, assetVersion AssetVersionFunc) string {
	if path == "" || assetVersion == nil || isRemote(path) {
		return path
	}
	version := assetVersion(path)
	if version == "" {
		return path
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%sv=%s", path, separator, version)
}

func isRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(path, "//")
}

// guessFileType labels a product document for the download list. An explicit
// type wins over the mime type, which wins over the URL extension.
func guessFileType(fileType, mimeType, rawURL string) string {
	if ft := strings.TrimSpace(fileType); ft != "" {
		return Capitalize(strings.ToLower(ft))
	}

	mt := strings.TrimSpace(strings.ToLower(mimeType))
	switch {
	case mt == "":
	case strings.HasPrefix(mt, "image/"):
		return "Image"
	case strings.HasPrefix(mt, "video/"):
		return "Video"
	case mt == "application/pdf", strings.HasPrefix(mt, "text/"):
		return "Document"
	case strings.Contains(mt, "zip"):
		return "Archive"
	default:
		return mt
	}

	switch strings.ToLower(filepath.Ext(strings.TrimSpace(rawURL))) {
	case ".pdf", ".doc", ".docx", ".txt", ".xls", ".xlsx", ".ppt", ".pptx":
		return "Document"
	case ".zip", ".rar", ".7z":
		return "Archive"
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp":
		return "Image"
	case ".mp4", ".mov", ".webm":
		return "Video"
	}
	return "File"
}

// Capitalize upper-cases the first letter of every word.
func Capitalize(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}

// Initials returns up to two upper-case initials of a name, used where a
// client has no logo.
func Initials(name string) string {
	var result []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				result = append(result, unicode.ToUpper(r))
				break
			}
		}
		if len(result) == 2 {
			break
		}
	}
	return string(result)
}

func NormalizePath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			if parsed.Path != "" {
				trimmed = parsed.Path
			} else {
				trimmed = "/"
			}
		}
	}

	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}

	if cleaned != "/" && strings.HasSuffix(cleaned, "/") {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}

	return cleaned
}
