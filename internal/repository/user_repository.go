package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

const userColumns = `id, email, password_hash, role, is_approved, first_name, last_name, graduation_year, degree, department, company, position, phone, linkedin, bio, created_at, updated_at`

// UserRepository provides database access for accounts and the directory.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique index on email turns concurrent
// duplicate registrations into a constraint error; callers classify it with
// IsUniqueViolation.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, email, password_hash, role, is_approved, first_name, last_name, graduation_year, degree, department, company, position, phone, linkedin, bio, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :role, :is_approved, :first_name, :last_name, :graduation_year, :degree, :department, :company, :position, :phone, :linkedin, :bio, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the owner-editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET first_name = :first_name, last_name = :last_name, company = :company, position = :position, phone = :phone, linkedin = :linkedin, bio = :bio, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// Approve flips the approval flag for a user.
func (r *UserRepository) Approve(ctx context.Context, id string, approvedAt time.Time) error {
	const query = `UPDATE users SET is_approved = TRUE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, approvedAt); err != nil {
		return fmt.Errorf("approve user: %w", err)
	}
	return nil
}

// ListPendingAlumni returns unapproved alumni awaiting review.
func (r *UserRepository) ListPendingAlumni(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE is_approved = FALSE AND role = $1 ORDER BY created_at ASC`, userColumns)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, models.RoleAlumni); err != nil {
		return nil, fmt.Errorf("list pending alumni: %w", err)
	}
	return users, nil
}

// Directory returns approved alumni matching the filter. The free-text term
// matches first name, last name or company.
func (r *UserRepository) Directory(ctx context.Context, filter models.DirectoryFilter) ([]models.User, error) {
	baseQuery := `FROM users WHERE role = $1 AND is_approved = TRUE`
	args := []interface{}{models.RoleAlumni}

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(company) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.GraduationYear != nil {
		baseQuery += fmt.Sprintf(" AND graduation_year = $%d", len(args)+1)
		args = append(args, *filter.GraduationYear)
	}
	if filter.Department != "" {
		baseQuery += fmt.Sprintf(" AND department = $%d", len(args)+1)
		args = append(args, filter.Department)
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY last_name ASC, first_name ASC", userColumns, baseQuery)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("directory search: %w", err)
	}
	return users, nil
}

// DirectoryFacets computes the distinct non-empty graduation years and
// departments among approved alumni.
func (r *UserRepository) DirectoryFacets(ctx context.Context) (*models.DirectoryFacets, error) {
	facets := &models.DirectoryFacets{}

	const yearsQuery = `SELECT DISTINCT graduation_year FROM users WHERE role = $1 AND is_approved = TRUE AND graduation_year > 0 ORDER BY graduation_year DESC`
	if err := r.db.SelectContext(ctx, &facets.Years, yearsQuery, models.RoleAlumni); err != nil {
		return nil, fmt.Errorf("directory years: %w", err)
	}

	const departmentsQuery = `SELECT DISTINCT department FROM users WHERE role = $1 AND is_approved = TRUE AND department <> '' ORDER BY department ASC`
	if err := r.db.SelectContext(ctx, &facets.Departments, departmentsQuery, models.RoleAlumni); err != nil {
		return nil, fmt.Errorf("directory departments: %w", err)
	}

	return facets, nil
}

// CountPendingAlumni counts unapproved alumni accounts.
func (r *UserRepository) CountPendingAlumni(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE is_approved = FALSE AND role = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, models.RoleAlumni); err != nil {
		return 0, fmt.Errorf("count pending alumni: %w", err)
	}
	return count, nil
}

// CountApprovedAlumni counts approved alumni accounts.
func (r *UserRepository) CountApprovedAlumni(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE is_approved = TRUE AND role = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, models.RoleAlumni); err != nil {
		return 0, fmt.Errorf("count approved alumni: %w", err)
	}
	return count, nil
}
