package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type mockEventRepo struct {
	events        map[string]*models.Event
	upcoming      []models.Event
	past          []models.Event
	all           []models.Event
	registrations map[string]*models.EventRegistration
	createdRegs   []*models.EventRegistration
	createdEvents []*models.Event
	upcomingErr   error
	pastErr       error
	createRegErr  error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	event.ID = "e-new"
	m.createdEvents = append(m.createdEvents, event)
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if event, ok := m.events[id]; ok {
		return event, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	if m.upcomingErr != nil {
		return nil, m.upcomingErr
	}
	return m.upcoming, nil
}

func (m *mockEventRepo) ListPast(ctx context.Context, now time.Time) ([]models.Event, error) {
	if m.pastErr != nil {
		return nil, m.pastErr
	}
	return m.past, nil
}

func (m *mockEventRepo) ListAll(ctx context.Context) ([]models.Event, error) {
	return m.all, nil
}

func (m *mockEventRepo) FindRegistration(ctx context.Context, eventID, userID string) (*models.EventRegistration, error) {
	if reg, ok := m.registrations[eventID+"/"+userID]; ok {
		return reg, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEventRepo) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	if m.createRegErr != nil {
		return m.createRegErr
	}
	m.createdRegs = append(m.createdRegs, reg)
	return nil
}

func TestEventServiceRegisterUnknownEvent(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockAudit{}, nil, nil)

	_, err := svc.Register(context.Background(), "missing", "u1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestEventServiceRegisterIsIdempotent(t *testing.T) {
	repo := &mockEventRepo{
		events:        map[string]*models.Event{"e1": {ID: "e1", Title: "Reunion"}},
		registrations: map[string]*models.EventRegistration{},
	}
	svc := NewEventService(repo, &mockAudit{}, nil, nil)

	reg, err := svc.Register(context.Background(), "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationRegistered, reg.Status)
	require.Len(t, repo.createdRegs, 1)

	repo.registrations["e1/u1"] = reg
	_, err = svc.Register(context.Background(), "e1", "u1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyRegistered.Code, appErr.Code)
	assert.Len(t, repo.createdRegs, 1)
}

func TestEventServiceRegisterRaceHitsUniqueIndex(t *testing.T) {
	// The pre-check misses but a concurrent insert already won.
	repo := &mockEventRepo{
		events:        map[string]*models.Event{"e1": {ID: "e1"}},
		registrations: map[string]*models.EventRegistration{},
		createRegErr:  &pq.Error{Code: "23505"},
	}
	svc := NewEventService(repo, &mockAudit{}, nil, nil)

	_, err := svc.Register(context.Background(), "e1", "u1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyRegistered.Code, appErr.Code)
}

func TestEventServiceListServesEmptyOnColdStart(t *testing.T) {
	repo := &mockEventRepo{upcomingErr: &pq.Error{Code: "42P01"}}
	svc := NewEventService(repo, &mockAudit{}, nil, nil)

	res, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Upcoming)
	assert.Empty(t, res.Past)
	assert.NotNil(t, res.Upcoming)
	assert.NotNil(t, res.Past)
}

func TestEventServiceCreateEventParsesFormDate(t *testing.T) {
	repo := &mockEventRepo{}
	audit := &mockAudit{}
	svc := NewEventService(repo, audit, nil, nil)

	event, err := svc.CreateEvent(context.Background(), "admin", models.EventCreateRequest{
		Title: "Homecoming",
		Date:  "2026-09-12T18:30",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC), event.Date)
	assert.True(t, event.IsActive)
	assert.Zero(t, event.RegistrationFee)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionCreateEvent, audit.logs[0].Action)
}

func TestEventServiceCreateEventRejectsBadDate(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockAudit{}, nil, nil)

	_, err := svc.CreateEvent(context.Background(), "admin", models.EventCreateRequest{
		Title: "Homecoming",
		Date:  "12/09/2026",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEventServiceCreateEventOptionalFields(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewEventService(repo, &mockAudit{}, nil, nil)

	capacity := 150
	fee := 25.0
	event, err := svc.CreateEvent(context.Background(), "admin", models.EventCreateRequest{
		Title:           "Gala",
		Date:            "2026-11-01T19:00",
		MaxAttendees:    &capacity,
		RegistrationFee: &fee,
	})
	require.NoError(t, err)
	require.NotNil(t, event.MaxAttendees)
	assert.Equal(t, 150, *event.MaxAttendees)
	assert.Equal(t, 25.0, event.RegistrationFee)
}
