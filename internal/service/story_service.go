package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/repository"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type storyRepository interface {
	Create(ctx context.Context, story *models.Story) error
	FindByID(ctx context.Context, id string) (*models.Story, error)
	ListPublished(ctx context.Context) ([]models.Story, error)
	ListPending(ctx context.Context) ([]models.Story, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Story, error)
	SetPublished(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
}

// StoryService runs the submission and moderation workflow: members submit
// unpublished stories, admins publish and feature them. Featuring toggles
// independently of publication; the public views filter on is_published, so
// a featured-but-unpublished story stays invisible.
type StoryService struct {
	repo      storyRepository
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStoryService constructs a StoryService instance.
func NewStoryService(repo storyRepository, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *StoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StoryService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Submit creates an unpublished story awaiting moderation.
func (s *StoryService) Submit(ctx context.Context, userID string, req models.StoryRequest) (*models.Story, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid story payload")
	}

	story := &models.Story{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, story); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit story")
	}
	return story, nil
}

// Published returns published stories, newest first. A missing schema yields
// an empty list so the public page survives cold starts.
func (s *StoryService) Published(ctx context.Context) ([]models.Story, error) {
	stories, err := s.repo.ListPublished(ctx)
	if err != nil {
		if repository.IsNotInitialized(err) {
			s.logger.Warn("stories table missing, serving empty listing", zap.Error(err))
			return []models.Story{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stories")
	}
	if stories == nil {
		stories = []models.Story{}
	}
	return stories, nil
}

// Featured returns published, featured stories for the home page.
func (s *StoryService) Featured(ctx context.Context, limit int) ([]models.Story, error) {
	stories, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		if repository.IsNotInitialized(err) {
			return []models.Story{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list featured stories")
	}
	if stories == nil {
		stories = []models.Story{}
	}
	return stories, nil
}

// ManageList splits stories by publication state for the moderation view.
func (s *StoryService) ManageList(ctx context.Context) (*dto.ManageStoriesResponse, error) {
	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending stories")
	}
	published, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list published stories")
	}

	if pending == nil {
		pending = []models.Story{}
	}
	if published == nil {
		published = []models.Story{}
	}
	return &dto.ManageStoriesResponse{Pending: pending, Published: published}, nil
}

// Publish marks a story published.
func (s *StoryService) Publish(ctx context.Context, adminID, storyID string) (*models.Story, error) {
	story, err := s.find(ctx, storyID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPublished(ctx, storyID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish story")
	}
	story.IsPublished = true

	s.recordModeration(ctx, adminID, models.AuditActionPublishStory, storyID)
	return story, nil
}

// ToggleFeature flips the featured flag and returns the updated story.
// Toggling twice restores the original state.
func (s *StoryService) ToggleFeature(ctx context.Context, adminID, storyID string) (*models.Story, error) {
	story, err := s.find(ctx, storyID)
	if err != nil {
		return nil, err
	}

	story.IsFeatured = !story.IsFeatured
	if err := s.repo.SetFeatured(ctx, storyID, story.IsFeatured); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to feature story")
	}

	s.recordModeration(ctx, adminID, models.AuditActionFeatureStory, storyID)
	return story, nil
}

func (s *StoryService) find(ctx context.Context, storyID string) (*models.Story, error) {
	story, err := s.repo.FindByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "story not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load story")
	}
	return story, nil
}

func (s *StoryService) recordModeration(ctx context.Context, adminID, action, storyID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, &models.AuditLog{
		UserID:     &adminID,
		Action:     action,
		Resource:   "story",
		ResourceID: &storyID,
	}); err != nil {
		s.logger.Warn("failed to record story audit log", zap.Error(err))
	}
}
