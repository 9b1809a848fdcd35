package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

const jobColumns = `id, user_id, title, company, location, description, requirements, salary_range, job_type, is_active, created_at, expires_at`

// JobRepository provides database access for board postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a posting.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO jobs (id, user_id, title, company, location, description, requirements, salary_range, job_type, is_active, created_at, expires_at)
		VALUES (:id, :user_id, :title, :company, :location, :description, :requirements, :salary_range, :job_type, :is_active, :created_at, :expires_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// ListActive returns the requested page of active postings, newest first,
// along with the total active count.
func (r *JobRepository) ListActive(ctx context.Context, page, pageSize int) ([]models.Job, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE is_active = TRUE ORDER BY created_at DESC LIMIT %d OFFSET %d`, jobColumns, pageSize, offset)
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, 0, err
	}

	const countQuery = `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// CountActive counts active postings.
func (r *JobRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active jobs: %w", err)
	}
	return count, nil
}

// CountByUser counts postings authored by a member.
func (r *JobRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM jobs WHERE user_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count jobs by user: %w", err)
	}
	return count, nil
}
