package service

import (
	"context"
	"strings"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/pkg/logger"
	"ellavera-site/pkg/validator"
)

type LeadService struct {
	leads repository.LeadRepository
}

func NewLeadService(leadRepo repository.LeadRepository) *LeadService {
	return &LeadService{leads: leadRepo}
}

// Submit validates a contact form and forwards it. Nothing reaches the
// backend when a required field is empty or the email is malformed.
func (s *LeadService) Submit(ctx context.Context, req models.ContactLeadRequest) (*models.ContactLead, error) {
	req.Name = validator.NormalizeSpaces(strings.TrimSpace(req.Name))
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = validator.NormalizeSpaces(strings.TrimSpace(req.Company))
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		return nil, invalidInput("name is required")
	case req.Email == "":
		return nil, invalidInput("email is required")
	case req.Message == "":
		return nil, invalidInput("message is required")
	case !validator.ValidateEmail(req.Email):
		return nil, invalidInput("email address is not valid")
	}

	if err := validator.Validate(req); err != nil {
		return nil, invalidInput("invalid contact request: %v", err)
	}

	lead, err := s.leads.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("lead_id", lead.ID).Info("Contact lead submitted")
	return lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]models.ContactLead, error) {
	return s.leads.List(ctx)
}
