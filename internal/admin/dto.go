package admin

import (
	"time"

	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/google/uuid"
)

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email,max=254"`
	Password string `form:"password" json:"password" validate:"required,max=256"`
}

// LoginResult carries the token to set in the admin cookie.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal Principal
}

// Principal is the signed-in admin attached to the request context.
type Principal struct {
	UserID   uuid.UUID
	Email    string
	Role     enums.AdminRole
	AccessID string
}
