package models

import "time"

// Story is a member-submitted article. Submissions start unpublished and
// only admins publish or feature them. Featuring is tracked independently
// of publication; public views filter on is_published.
type Story struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StoryRequest is the submission payload.
type StoryRequest struct {
	Title   string `json:"title" form:"title" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}
