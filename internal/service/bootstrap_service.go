package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/pkg/config"
)

type schemaInitializer interface {
	Init(ctx context.Context) error
}

// BootstrapService initializes the schema and seeds the admin account. It
// runs at startup and again on demand through /init-db; both paths are
// idempotent.
type BootstrapService struct {
	schema schemaInitializer
	users  authUserRepository
	logger *zap.Logger
	admin  config.SeedAdminConfig
}

// NewBootstrapService constructs a BootstrapService instance.
func NewBootstrapService(schema schemaInitializer, users authUserRepository, logger *zap.Logger, admin config.SeedAdminConfig) *BootstrapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BootstrapService{schema: schema, users: users, logger: logger, admin: admin}
}

// Run creates missing tables and seeds the configured admin. A second run
// finds the existing admin and reports instead of duplicating.
func (s *BootstrapService) Run(ctx context.Context) (*dto.BootstrapResult, error) {
	if err := s.schema.Init(ctx); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, s.admin.Email)
	if err == nil {
		return &dto.BootstrapResult{
			Message:      "database already initialized, admin user exists",
			AdminCreated: false,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Email:        s.admin.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsApproved:   true,
		FirstName:    s.admin.FirstName,
		LastName:     s.admin.LastName,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("seeded admin account", zap.String("email", s.admin.Email))
	return &dto.BootstrapResult{
		Message:      "database initialized, admin user created",
		AdminCreated: true,
	}, nil
}
