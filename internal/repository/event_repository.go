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

const eventColumns = `id, title, description, date, location, max_attendees, registration_fee, is_active, created_at`

// EventRepository provides database access for events and registrations.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO events (id, title, description, date, location, max_attendees, registration_fee, is_active, created_at)
		VALUES (:id, :title, :description, :date, :location, :max_attendees, :registration_fee, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// FindByID returns an event by identifier.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 LIMIT 1`, eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

// ListUpcoming returns active events dated after now, soonest first.
// A limit of zero means no limit.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE date > $1 AND is_active = TRUE ORDER BY date ASC`, eventColumns)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, now); err != nil {
		return nil, err
	}
	return events, nil
}

// ListPast returns events dated at or before now, most recent first.
func (r *EventRepository) ListPast(ctx context.Context, now time.Time) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE date <= $1 ORDER BY date DESC`, eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, now); err != nil {
		return nil, err
	}
	return events, nil
}

// ListAll returns every event, newest date first, for admin management.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY date DESC`, eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindRegistration returns the registration for an (event, user) pair.
func (r *EventRepository) FindRegistration(ctx context.Context, eventID, userID string) (*models.EventRegistration, error) {
	const query = `SELECT id, event_id, user_id, status, registered_at FROM event_registrations WHERE event_id = $1 AND user_id = $2 LIMIT 1`
	var reg models.EventRegistration
	if err := r.db.GetContext(ctx, &reg, query, eventID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event registration: %w", err)
	}
	return &reg, nil
}

// CreateRegistration inserts a registration. The unique index on
// (event_id, user_id) rejects a concurrent duplicate; callers classify it
// with IsUniqueViolation.
func (r *EventRepository) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}
	if reg.Status == "" {
		reg.Status = models.RegistrationRegistered
	}

	const query = `INSERT INTO event_registrations (id, event_id, user_id, status, registered_at)
		VALUES (:id, :event_id, :user_id, :status, :registered_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create event registration: %w", err)
	}
	return nil
}
