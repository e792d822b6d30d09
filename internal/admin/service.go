// Package admin signs back-office users in and out of the /admin area.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/exclusivefashions/storefront/pkg/auth"
	"github.com/exclusivefashions/storefront/pkg/auth/session"
	"github.com/exclusivefashions/storefront/pkg/config"
	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/enums"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid email or password"

// Service is the sign-in surface used by the admin controllers and middleware.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Logout(ctx context.Context, token string) error
	EnsureAccount(ctx context.Context, email, password string, role enums.AdminRole) (bool, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash string, role string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type sessionManager interface {
	Open(ctx context.Context, accessID, userID string) error
	HasSession(ctx context.Context, accessID string) (bool, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build the admin service.
type ServiceParams struct {
	Users     userRepository
	Sessions  sessionManager
	Hasher    *security.Hasher
	JWTConfig config.JWTConfig
	Logger    *logger.Logger
}

type service struct {
	users    userRepository
	sessions sessionManager
	hasher   *security.Hasher
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs the admin service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("admin user repository is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &service{
		users:    params.Users,
		sessions: params.Sessions,
		hasher:   params.Hasher,
		jwtCfg:   params.JWTConfig,
		logg:     params.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.sessions.Open(ctx, accessID, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open admin session")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "admin.login.succeeded")
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwtCfg.SessionTTL()),
		Principal: Principal{UserID: user.ID, Email: user.Email, Role: user.Role, AccessID: accessID},
	}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin session")
	}
	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin session")
	}
	live, err := s.sessions.HasSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin session")
	}
	if !live {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session expired")
	}
	return &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role, AccessID: claims.ID}, nil
}

// Logout revokes the session behind token. Unparseable tokens are ignored.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, strings.TrimSpace(token))
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke admin session")
	}
	s.logg.Info(s.logg.WithUserID(ctx, claims.UserID.String()), "admin.logout")
	return nil
}

// EnsureAccount creates the account or resets its password and role. It reports
// whether a new account was created.
func (s *service) EnsureAccount(ctx context.Context, email, password string, role enums.AdminRole) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !role.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := &models.AdminUser{Email: email, PasswordHash: hash, Role: role}
		if err := s.users.Create(ctx, user); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin user")
		}
		return true, nil
	case err != nil:
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin user")
	}

	if err := s.users.UpdateCredentials(ctx, existing.ID, hash, string(role)); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin user")
	}
	return false, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.VerifyMissing(password)
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin user")
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		if hash, err := s.hasher.Hash(password); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "admin.login.rehash_failed")
			}
		}
	}
	return user, nil
}
