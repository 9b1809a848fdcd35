package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the session token claims. Approval is a snapshot taken at
// login; the approved-only gate re-reads the user record so an admin
// approval takes effect without a fresh login.
type JWTClaims struct {
	UserID     string   `json:"uid"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	IsApproved bool     `json:"approved"`
	jwt.RegisteredClaims
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email          string `json:"email" form:"email" validate:"required,email"`
	Password       string `json:"password" form:"password" validate:"required,min=6"`
	FirstName      string `json:"first_name" form:"first_name" validate:"required"`
	LastName       string `json:"last_name" form:"last_name" validate:"required"`
	GraduationYear int    `json:"graduation_year" form:"graduation_year" validate:"required,gte=1900"`
	Degree         string `json:"degree" form:"degree" validate:"required"`
	Department     string `json:"department" form:"department" validate:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`

	IP        string `json:"-" form:"-"`
	UserAgent string `json:"-" form:"-"`
}

// Destinations a successful login is steered to, mirroring the post-login
/// redirect decision: admins to the admin dashboard, approved alumni to the
// alumni dashboard, everyone else to the pending-approval page.
const (
	DestinationAdminDashboard  = "admin-dashboard"
	DestinationAlumniDashboard = "alumni-dashboard"
	DestinationPendingApproval = "pending-approval"
)

// LoginResponse carries the issued session token and routing hint.
type LoginResponse struct {
	Token       string   `json:"token"`
	Destination string   `json:"destination"`
	User        UserInfo `json:"user"`
}

// UserInfo is the public slice of an account.
type UserInfo struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Role       UserRole `json:"role"`
	IsApproved bool     `json:"is_approved"`
}

// ProfileUpdateRequest carries the owner-editable profile fields.
type ProfileUpdateRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Company   string `json:"company" form:"company"`
	Position  string `json:"position" form:"position"`
	Phone     string `json:"phone" form:"phone"`
	LinkedIn  string `json:"linkedin" form:"linkedin"`
	Bio       string `json:"bio" form:"bio"`
}
