package models

import (
	"encoding/json"
)

// JSONMap is the loosely typed content payload of a page section.
type JSONMap map[string]interface{}

// Clone returns a deep copy so edits never alias a stored section.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return JSONMap{}
	}
	cloned, _ := cloneValue(map[string]interface{}(m)).(map[string]interface{})
	return JSONMap(cloned)
}

func cloneValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			out[k] = cloneValue(v)
		}
		return out
	case JSONMap:
		return cloneValue(map[string]interface{}(typed))
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	case []string:
		out := make([]interface{}, len(typed))
		for i, v := range typed {
			out[i] = v
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	default:
		return value
	}
}

func (m *JSONMap) UnmarshalJSON(data []byte) error {
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		// content that is not an object is treated as empty
		*m = JSONMap{}
		return nil
	}
	if decoded == nil {
		decoded = map[string]interface{}{}
	}
	*m = decoded
	return nil
}

// PageSection is one configurable content block of a page.
type PageSection struct {
	ID          string    `json:"id"`
	PageName    string    `json:"page_name"`
	SectionName string    `json:"section_name"`
	SectionType string    `json:"section_type"`
	Content     JSONMap   `json:"content"`
	Order       int       `json:"order"`
	Visible     bool      `json:"visible"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// Clone returns a copy of the section with its own content tree.
func (s PageSection) Clone() PageSection {
	s.Content = s.Content.Clone()
	return s
}

// UnmarshalJSON defaults visible to true when the backend omits it.
func (s *PageSection) UnmarshalJSON(data []byte) error {
	type alias PageSection
	decoded := alias{Visible: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Content == nil {
		decoded.Content = JSONMap{}
	}
	*s = PageSection(decoded)
	return nil
}

// PageSectionRequest is the body of create and update calls; updates always
// send the whole section.
type PageSectionRequest struct {
	PageName    string  `json:"page_name" binding:"required"`
	SectionName string  `json:"section_name" binding:"required"`
	SectionType string  `json:"section_type" binding:"required"`
	Content     JSONMap `json:"content"`
	Order       int     `json:"order"`
	Visible     bool    `json:"visible"`
}

func (s PageSection) ToRequest() PageSectionRequest {
	content := s.Content
	if content == nil {
		content = JSONMap{}
	}
	return PageSectionRequest{
		PageName:    s.PageName,
		SectionName: s.SectionName,
		SectionType: s.SectionType,
		Content:     content,
		Order:       s.Order,
		Visible:     s.Visible,
	}
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt Timestamp `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type ContactLead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	CreatedAt Timestamp `json:"created_at"`
}

type ContactLeadRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=200,no_html"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" form:"phone" validate:"omitempty,phone"`
	Company string `json:"company,omitempty" form:"company" validate:"omitempty,max=200,no_html"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

type AIContentRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type AIContentResponse struct {
	Content string `json:"content"`
}

type AIImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type AIImageResponse struct {
	ImageBase64 string `json:"image_base64"`
}

type UploadResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	DataURL  string `json:"data_url"`
	Size     int64  `json:"size"`
	Type     string `json:"type,omitempty"`
}

type BackupStats map[string]interface{}

type BackupFormat string

const (
	BackupFormatJSON BackupFormat = "json"
	BackupFormatCSV  BackupFormat = "csv"
)

func (f BackupFormat) Valid() bool {
	return f == BackupFormatJSON || f == BackupFormatCSV
}
