package models

import "time"

// UserRole represents the available account roles.
type UserRole string

const (
	RoleAlumni UserRole = "alumni"
	RoleAdmin  UserRole = "admin"
	RoleGuest  UserRole = "guest"
)

// User represents an account stored in the users table. Profile columns use
// empty-string / zero defaults rather than NULLs so they scan into plain Go
// types on both supported drivers.
type User struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           UserRole  `db:"role" json:"role"`
	IsApproved     bool      `db:"is_approved" json:"is_approved"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	GraduationYear int       `db:"graduation_year" json:"graduation_year,omitempty"`
	Degree         string    `db:"degree" json:"degree,omitempty"`
	Department     string    `db:"department" json:"department,omitempty"`
	Company        string    `db:"company" json:"company,omitempty"`
	Position       string    `db:"position" json:"position,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	LinkedIn       string    `db:"linkedin" json:"linkedin,omitempty"`
	Bio            string    `db:"bio" json:"bio,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DirectoryFilter captures the directory search criteria: a free-text match
// over first name, last name and company, plus exact year/department filters.
type DirectoryFilter struct {
	Search         string
	GraduationYear *int
	Department     string
}

// DirectoryFacets lists the distinct graduation years and departments among
// approved alumni, used to populate the directory filter controls.
type DirectoryFacets struct {
	Years       []int    `json:"years"`
	Departments []string `json:"departments"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
