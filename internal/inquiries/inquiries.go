// Package inquiries stores messages sent through the contact form.
package inquiries

import (
	"context"
	"fmt"
	"strings"

	"github.com/exclusivefashions/storefront/api/validators"
	"github.com/exclusivefashions/storefront/pkg/db/models"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Input is the contact form payload.
type Input struct {
	Name    string `form:"name" json:"name" validate:"required,max=120"`
	Contact string `form:"contact" json:"contact" validate:"required,max=160"`
	Message string `form:"message" json:"message" validate:"required,max=2000"`
}

// Repository persists inquiries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an inquiry repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an inquiry.
func (r *Repository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert inquiry")
	}
	return nil
}

// Count returns the number of stored inquiries.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&n).Error
	return n, err
}

type store interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
}

// Service validates and stores inquiries.
type Service interface {
	Submit(ctx context.Context, input Input) (*models.Inquiry, error)
}

type service struct {
	repo store
	logg *logger.Logger
}

// NewService constructs the inquiry service.
func NewService(repo store, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inquiry repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Submit returns a CodeValidation error with per-field details for bad input and
// a CodeDependency error when storage fails.
func (s *service) Submit(ctx context.Context, input Input) (*models.Inquiry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Message = strings.TrimSpace(input.Message)
	if err := validators.ValidateStruct(&input); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{Name: input.Name, Contact: input.Contact, Message: input.Message}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		s.logg.Error(ctx, "inquiries.submit.failed", err)
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "inquiry_id", inquiry.ID.String()), "inquiries.submitted")
	return inquiry, nil
}
