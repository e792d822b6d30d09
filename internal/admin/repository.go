package admin

import (
	"context"
	"strings"
	"time"

	"github.com/exclusivefashions/storefront/pkg/db"
	"github.com/exclusivefashions/storefront/pkg/db/models"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists admin accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an admin repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail looks up an account by its lowercased email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. A duplicate email is a CodeConflict error.
func (r *Repository) Create(ctx context.Context, user *models.AdminUser) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "admin account already exists")
		}
		return err
	}
	return nil
}

// UpdateLastLogin stamps a successful sign-in.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).
		Error
}

// UpdateCredentials replaces the password hash and role.
func (r *Repository) UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash string, role string) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": passwordHash, "role": role}).
		Error
}

// UpdatePasswordHash replaces only the password hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).
		Error
}
