package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

const storyColumns = `id, user_id, title, content, is_published, is_featured, created_at`

// StoryRepository provides database access for the story workflow.
type StoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository creates a new instance of StoryRepository.
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// Create inserts a submitted story. Submissions always start unpublished.
func (r *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	if story.ID == "" {
		story.ID = uuid.NewString()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO stories (id, user_id, title, content, is_published, is_featured, created_at)
		VALUES (:id, :user_id, :title, :content, :is_published, :is_featured, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, story); err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// FindByID returns a story by identifier.
func (r *StoryRepository) FindByID(ctx context.Context, id string) (*models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE id = $1 LIMIT 1`, storyColumns)
	var story models.Story
	if err := r.db.GetContext(ctx, &story, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find story by id: %w", err)
	}
	return &story, nil
}

// ListPublished returns published stories, newest first.
func (r *StoryRepository) ListPublished(ctx context.Context) ([]models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE is_published = TRUE ORDER BY created_at DESC`, storyColumns)
	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, err
	}
	return stories, nil
}

// ListPending returns unpublished submissions awaiting moderation.
func (r *StoryRepository) ListPending(ctx context.Context) ([]models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE is_published = FALSE ORDER BY created_at ASC`, storyColumns)
	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, fmt.Errorf("list pending stories: %w", err)
	}
	return stories, nil
}

// ListFeatured returns published, featured stories for the home page.
func (r *StoryRepository) ListFeatured(ctx context.Context, limit int) ([]models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE is_published = TRUE AND is_featured = TRUE ORDER BY created_at DESC`, storyColumns)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, err
	}
	return stories, nil
}

// SetPublished marks a story published.
func (r *StoryRepository) SetPublished(ctx context.Context, id string) error {
	const query = `UPDATE stories SET is_published = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("publish story: %w", err)
	}
	return nil
}

// SetFeatured writes the featured flag.
func (r *StoryRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	const query = `UPDATE stories SET is_featured = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, featured); err != nil {
		return fmt.Errorf("feature story: %w", err)
	}
	return nil
}
