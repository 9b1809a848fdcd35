package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	Approve(ctx context.Context, id string, approvedAt time.Time) error
	ListPendingAlumni(ctx context.Context) ([]models.User, error)
	Directory(ctx context.Context, filter models.DirectoryFilter) ([]models.User, error)
	DirectoryFacets(ctx context.Context) (*models.DirectoryFacets, error)
}

// UserService covers profile management, the alumni directory and the admin
// approval workflow.
type UserService struct {
	repo      userRepository
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Profile returns the caller's own record.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return user, nil
}

// UpdateProfile writes the owner-editable fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Company = req.Company
	user.Position = req.Position
	user.Phone = req.Phone
	user.LinkedIn = req.LinkedIn
	user.Bio = req.Bio

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return user, nil
}

// Directory searches approved alumni and returns the filter facets.
func (s *UserService) Directory(ctx context.Context, filter models.DirectoryFilter) (*dto.DirectoryResponse, error) {
	users, err := s.repo.Directory(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "directory search failed")
	}

	facets, err := s.repo.DirectoryFacets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load directory facets")
	}

	alumni := make([]models.UserInfo, 0, len(users))
	for i := range users {
		alumni = append(alumni, userInfo(&users[i]))
	}

	return &dto.DirectoryResponse{Alumni: alumni, Facets: *facets}, nil
}

// PendingUsers lists alumni awaiting approval.
func (s *UserService) PendingUsers(ctx context.Context) ([]models.UserInfo, error) {
	users, err := s.repo.ListPendingAlumni(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending users")
	}
	infos := make([]models.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, userInfo(&users[i]))
	}
	return infos, nil
}

// ApproveUser flips the approval flag for a pending account.
func (s *UserService) ApproveUser(ctx context.Context, adminID, userID string) (*models.UserInfo, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := s.repo.Approve(ctx, userID, time.Now().UTC()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve user")
	}
	user.IsApproved = true

	if s.audit != nil {
		if err := s.audit.Create(ctx, &models.AuditLog{
			UserID:     &adminID,
			Action:     models.AuditActionApproveUser,
			Resource:   "user",
			ResourceID: &userID,
		}); err != nil {
			s.logger.Warn("failed to record approval audit log", zap.Error(err))
		}
	}

	info := userInfo(user)
	return &info, nil
}
