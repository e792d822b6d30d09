package settings

import (
	"context"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the site_settings row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the singleton row. A missing row yields gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var row models.SiteSettings
	if err := r.db.WithContext(ctx).First(&row, "id = ?", models.SiteSettingsID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
