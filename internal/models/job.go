package models

import "time"

// JobType enumerates the supported employment types.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// Job is a board posting authored by an approved member.
type Job struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Title        string     `db:"title" json:"title"`
	Company      string     `db:"company" json:"company"`
	Location     string     `db:"location" json:"location"`
	Description  string     `db:"description" json:"description"`
	Requirements string     `db:"requirements" json:"requirements"`
	SalaryRange  string     `db:"salary_range" json:"salary_range"`
	JobType      JobType    `db:"job_type" json:"job_type"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// JobPostRequest is the posting payload.
type JobPostRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Company      string `json:"company" form:"company" validate:"required"`
	Location     string `json:"location" form:"location"`
	Description  string `json:"description" form:"description" validate:"required"`
	Requirements string `json:"requirements" form:"requirements"`
	SalaryRange  string `json:"salary_range" form:"salary_range"`
	JobType      string `json:"job_type" form:"job_type" validate:"required,oneof=full-time part-time contract internship"`
}
