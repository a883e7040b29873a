package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"ellavera-site/pkg/logger"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("not authorized")
)

var backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ellavera_site",
	Subsystem: "backend",
	Name:      "request_duration_seconds",
	Help:      "Duration of calls made to the REST backend.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "resource", "status"})

// APIError is a non-2xx answer of the backend.
type APIError struct {
	Status int
	Detail string
	Method string
	Path   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("backend %s %s: %d", e.Method, e.Path, e.Status)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// StatusOf returns the backend status carried by err, or fallback.
func StatusOf(err error, fallback int) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status > 0 {
		return apiErr.Status
	}
	return fallback
}

// MessageOf returns the backend detail carried by err, or err's text.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

type tokenKey struct{}

// WithToken attaches the operator's bearer token to calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks JSON to the REST backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A zero timeout leaves calls bound
// only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP builds a client on top of httpClient. Requests carry the
// trace context of the incoming request to the backend.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: instrument(httpClient)}
}

func instrument(httpClient *http.Client) *http.Client {
	if _, ok := httpClient.Transport.(*otelhttp.Transport); ok {
		return httpClient
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	instrumented := *httpClient
	instrumented.Transport = otelhttp.NewTransport(base)
	return &instrumented
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	response, err := c.send(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	return decodeResponse(response, out)
}

// MultipartFile is one file part of a multipart request.
type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// postMultipart sends fields and an optional file as multipart/form-data.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, file *MultipartFile, out interface{}) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.Field), escapeQuotes(file.Filename)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalise multipart body: %w", err)
	}

	response, err := c.send(ctx, http.MethodPost, path, nil, &body, writer.FormDataContentType())
	if err != nil {
		return err
	}
	defer response.Body.Close()

	return decodeResponse(response, out)
}

// stream performs a GET and hands back the open response on success. The
// caller closes the body.
func (c *Client) stream(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	response, err := c.send(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	if response.StatusCode >= http.StatusMultipleChoices {
		defer response.Body.Close()
		return nil, readAPIError(response)
	}
	return response, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if token := tokenFrom(ctx); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	resource := resourceOf(path)
	if err != nil {
		backendRequestDuration.WithLabelValues(method, resource, "error").Observe(time.Since(start).Seconds())
		logger.FromContext(ctx).WithError(err).WithField("path", path).Warn("Backend request failed")
		return nil, fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	backendRequestDuration.WithLabelValues(method, resource, strconv.Itoa(response.StatusCode)).Observe(time.Since(start).Seconds())

	return response, nil
}

func decodeResponse(response *http.Response, out interface{}) error {
	if response.StatusCode >= http.StatusMultipleChoices {
		return readAPIError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func readAPIError(response *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(response.Body, 64*1024))
	apiErr := &APIError{
		Status: response.StatusCode,
		Detail: detailOf(payload),
	}
	if response.Request != nil {
		apiErr.Method = response.Request.Method
		apiErr.Path = response.Request.URL.Path
	}
	if response.StatusCode >= http.StatusInternalServerError {
		logger.Error(apiErr, "Backend returned a server error", nil)
	}
	return apiErr
}

// detailOf extracts the "detail" member of an error body. Validation errors
// carry a list whose messages are joined.
func detailOf(payload []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(payload))
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				messages = append(messages, item.Msg)
			}
		}
		if len(messages) > 0 {
			return strings.Join(messages, "; ")
		}
	}

	return string(body.Detail)
}

// resourceOf keeps the metric label set small: "/pages/sections/42" becomes "pages".
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func escapeID(id string) string {
	return url.PathEscape(id)
}
