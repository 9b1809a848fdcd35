package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

func eventRows(events ...models.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "date", "location", "max_attendees",
		"registration_fee", "is_active", "created_at",
	})
	for _, e := range events {
		rows.AddRow(e.ID, e.Title, e.Description, e.Date, e.Location, e.MaxAttendees,
			e.RegistrationFee, e.IsActive, e.CreatedAt)
	}
	return rows
}

func TestEventRepositoryListUpcomingHonorsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	now := time.Now().UTC()
	event := models.Event{ID: "e1", Title: "Reunion", Date: now.Add(24 * time.Hour), IsActive: true, CreatedAt: now}
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE date > $1 AND is_active = TRUE ORDER BY date ASC LIMIT 5")).
		WithArgs(now).
		WillReturnRows(eventRows(event))

	events, err := repo.ListUpcoming(context.Background(), now, 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryFindRegistrationNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM event_registrations WHERE event_id = $1 AND user_id = $2")).
		WithArgs("e1", "u1").
		WillReturnError(sql.ErrNoRows)

	reg, err := repo.FindRegistration(context.Background(), "e1", "u1")
	assert.Nil(t, reg)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreateRegistrationDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("INSERT INTO event_registrations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	reg := &models.EventRegistration{EventID: "e1", UserID: "u1"}
	require.NoError(t, repo.CreateRegistration(context.Background(), reg))
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, models.RegistrationRegistered, reg.Status)
	assert.False(t, reg.RegisteredAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryListAllOrdersByDateDesc(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM events ORDER BY date DESC")).
		WillReturnRows(eventRows(
			models.Event{ID: "e2", Title: "Gala", Date: now.Add(48 * time.Hour), IsActive: true, CreatedAt: now},
			models.Event{ID: "e1", Title: "Reunion", Date: now.Add(-24 * time.Hour), IsActive: true, CreatedAt: now},
		))

	events, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
