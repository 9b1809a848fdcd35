package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

// DonationRepository provides database access for donation records.
type DonationRepository struct {
	db *sqlx.DB
}

// NewDonationRepository creates a new instance of DonationRepository.
func NewDonationRepository(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts a donation record.
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == "" {
		donation.ID = uuid.NewString()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}
	if donation.Status == "" {
		donation.Status = models.DonationPending
	}

	const query = `INSERT INTO donations (id, user_id, amount, purpose, payment_method, transaction_id, status, created_at)
		VALUES (:id, :user_id, :amount, :purpose, :payment_method, :transaction_id, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, donation); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// ListByUser returns a donor's history, newest first.
func (r *DonationRepository) ListByUser(ctx context.Context, userID string) ([]models.Donation, error) {
	const query = `SELECT id, user_id, amount, purpose, payment_method, transaction_id, status, created_at FROM donations WHERE user_id = $1 ORDER BY created_at DESC`
	var donations []models.Donation
	if err := r.db.SelectContext(ctx, &donations, query, userID); err != nil {
		return nil, fmt.Errorf("list donations by user: %w", err)
	}
	return donations, nil
}

// CountByUser counts a donor's recorded donations.
func (r *DonationRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM donations WHERE user_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count donations by user: %w", err)
	}
	return count, nil
}

// SumAmount totals every recorded donation. An empty table sums to zero.
func (r *DonationRepository) SumAmount(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM donations`
	var total float64
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("sum donations: %w", err)
	}
	return total, nil
}

// MonthlyTotals groups donations by calendar month. The month expression is
// the only dialect-specific SQL in the repository layer.
func (r *DonationRepository) MonthlyTotals(ctx context.Context) ([]models.MonthlyDonation, error) {
	monthExpr := `to_char(created_at, 'YYYY-MM')`
	if r.db.DriverName() == "sqlite3" {
		monthExpr = `strftime('%Y-%m', created_at)`
	}

	query := fmt.Sprintf(`SELECT %s AS month, SUM(amount) AS total FROM donations GROUP BY month ORDER BY month ASC`, monthExpr)
	var totals []models.MonthlyDonation
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("monthly donation totals: %w", err)
	}
	return totals, nil
}

// ListAll returns every donation, newest first, for admin exports.
func (r *DonationRepository) ListAll(ctx context.Context) ([]models.Donation, error) {
	const query = `SELECT id, user_id, amount, purpose, payment_method, transaction_id, status, created_at FROM donations ORDER BY created_at DESC`
	var donations []models.Donation
	if err := r.db.SelectContext(ctx, &donations, query); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}
