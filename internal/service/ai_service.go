package service

import (
	"context"
	"strings"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
)

const maxPromptLength = 4000

type AIService struct {
	ai repository.AIRepository
}

func NewAIService(aiRepo repository.AIRepository) *AIService {
	return &AIService{ai: aiRepo}
}

func (s *AIService) GenerateContent(ctx context.Context, req models.AIContentRequest) (*models.AIContentResponse, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	req.ContentType = strings.TrimSpace(req.ContentType)
	if req.Prompt == "" {
		return nil, invalidInput("prompt is required")
	}
	if len(req.Prompt) > maxPromptLength {
		return nil, invalidInput("prompt must be at most %d characters", maxPromptLength)
	}
	if req.ContentType == "" {
		req.ContentType = "description"
	}
	return s.ai.GenerateContent(ctx, req)
}

func (s *AIService) GenerateImage(ctx context.Context, req models.AIImageRequest) (*models.AIImageResponse, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return nil, invalidInput("prompt is required")
	}
	if len(req.Prompt) > maxPromptLength {
		return nil, invalidInput("prompt must be at most %d characters", maxPromptLength)
	}
	return s.ai.GenerateImage(ctx, req)
}
