package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/repository"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

// jobsPageSize is the fixed page size of the public board listing.
const jobsPageSize = 10

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	ListActive(ctx context.Context, page, pageSize int) ([]models.Job, int, error)
}

// JobService handles board postings and the public listing.
type JobService struct {
	repo      jobRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs a JobService instance.
func NewJobService(repo jobRepository, validate *validator.Validate, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &JobService{repo: repo, validator: validate, logger: logger}
}

// Post creates an active posting owned by the caller.
func (s *JobService) Post(ctx context.Context, userID string, req models.JobPostRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	job := &models.Job{
		UserID:       userID,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		JobType:      models.JobType(req.JobType),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to post job")
	}
	return job, nil
}

// List returns a page of active postings, newest first. A store without a
// schema yet yields an empty page instead of an error so the public board
// stays up through cold starts.
func (s *JobService) List(ctx context.Context, page int) ([]models.Job, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}

	jobs, total, err := s.repo.ListActive(ctx, page, jobsPageSize)
	if err != nil {
		if repository.IsNotInitialized(err) {
			s.logger.Warn("jobs table missing, serving empty listing", zap.Error(err))
			return []models.Job{}, &models.Pagination{Page: page, PageSize: jobsPageSize}, nil
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	return jobs, &models.Pagination{Page: page, PageSize: jobsPageSize, TotalCount: total}, nil
}
