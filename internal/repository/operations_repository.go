package repository

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"ellavera-site/internal/models"
)

type LeadRepository interface {
	Submit(ctx context.Context, lead models.ContactLeadRequest) (*models.ContactLead, error)
	List(ctx context.Context) ([]models.ContactLead, error)
}

type leadRepository struct {
	client *Client
}

func NewLeadRepository(client *Client) LeadRepository {
	return &leadRepository{client: client}
}

func (r *leadRepository) Submit(ctx context.Context, lead models.ContactLeadRequest) (*models.ContactLead, error) {
	var created models.ContactLead
	if err := r.client.post(ctx, "/contact", lead, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *leadRepository) List(ctx context.Context) ([]models.ContactLead, error) {
	var leads []models.ContactLead
	if err := r.client.get(ctx, "/contact/leads", nil, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []models.ContactLead{}
	}
	return leads, nil
}

type UploadRepository interface {
	UploadImage(ctx context.Context, file MultipartFile) (*models.UploadResult, error)
	UploadFile(ctx context.Context, file MultipartFile) (*models.UploadResult, error)
}

type uploadRepository struct {
	client *Client
}

func NewUploadRepository(client *Client) UploadRepository {
	return &uploadRepository{client: client}
}

func (r *uploadRepository) UploadImage(ctx context.Context, file MultipartFile) (*models.UploadResult, error) {
	return r.upload(ctx, "/upload-image", file)
}

func (r *uploadRepository) UploadFile(ctx context.Context, file MultipartFile) (*models.UploadResult, error) {
	return r.upload(ctx, "/upload-file", file)
}

func (r *uploadRepository) upload(ctx context.Context, path string, file MultipartFile) (*models.UploadResult, error) {
	file.Field = "file"
	var result models.UploadResult
	if err := r.client.postMultipart(ctx, path, nil, &file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type AIRepository interface {
	GenerateContent(ctx context.Context, req models.AIContentRequest) (*models.AIContentResponse, error)
	GenerateImage(ctx context.Context, req models.AIImageRequest) (*models.AIImageResponse, error)
}

type aiRepository struct {
	client *Client
}

func NewAIRepository(client *Client) AIRepository {
	return &aiRepository{client: client}
}

func (r *aiRepository) GenerateContent(ctx context.Context, req models.AIContentRequest) (*models.AIContentResponse, error) {
	var response models.AIContentResponse
	if err := r.client.post(ctx, "/ai/generate-content", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *aiRepository) GenerateImage(ctx context.Context, req models.AIImageRequest) (*models.AIImageResponse, error) {
	var response models.AIImageResponse
	if err := r.client.post(ctx, "/ai/generate-image", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// BackupDownload is an open archive stream. Close releases the connection.
type BackupDownload struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
	ContentLength      int64
}

func (d *BackupDownload) Close() error {
	return d.Body.Close()
}

type BackupRepository interface {
	Stats(ctx context.Context) (models.BackupStats, error)
	Download(ctx context.Context, format models.BackupFormat, includeMedia bool) (*BackupDownload, error)
}

type backupRepository struct {
	client *Client
}

func NewBackupRepository(client *Client) BackupRepository {
	return &backupRepository{client: client}
}

func (r *backupRepository) Stats(ctx context.Context) (models.BackupStats, error) {
	var stats models.BackupStats
	if err := r.client.get(ctx, "/admin/backup/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *backupRepository) Download(ctx context.Context, format models.BackupFormat, includeMedia bool) (*BackupDownload, error) {
	query := url.Values{}
	query.Set("format", string(format))
	query.Set("include_media", strconv.FormatBool(includeMedia))

	response, err := r.client.stream(ctx, "/admin/backup", query)
	if err != nil {
		return nil, err
	}
	return &BackupDownload{
		Body:               response.Body,
		ContentType:        headerOr(response.Header, "Content-Type", "application/zip"),
		ContentDisposition: response.Header.Get("Content-Disposition"),
		ContentLength:      response.ContentLength,
	}, nil
}

func headerOr(header http.Header, key, fallback string) string {
	if value := header.Get(key); value != "" {
		return value
	}
	return fallback
}

type AuthRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

type authRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var token models.TokenResponse
	if err := r.client.post(ctx, "/auth/login", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authRepository) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	var token models.TokenResponse
	if err := r.client.post(ctx, "/auth/register", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authRepository) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.client.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
