package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/repository"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type eventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error)
	ListPast(ctx context.Context, now time.Time) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	FindRegistration(ctx context.Context, eventID, userID string) (*models.EventRegistration, error)
	CreateRegistration(ctx context.Context, reg *models.EventRegistration) error
}

// EventService handles the public event calendar, member registration and
// admin event management.
type EventService struct {
	repo      eventRepository
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs an EventService instance.
func NewEventService(repo eventRepository, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EventService{repo: repo, audit: audit, validator: validate, logger: logger, now: time.Now}
}

// List partitions events into upcoming (future and active) and past.
// A missing schema serves empty partitions, keeping the page up on cold
// starts.
func (s *EventService) List(ctx context.Context) (*dto.EventsResponse, error) {
	now := s.now().UTC()

	upcoming, err := s.repo.ListUpcoming(ctx, now, 0)
	if err != nil {
		if repository.IsNotInitialized(err) {
			s.logger.Warn("events table missing, serving empty calendar", zap.Error(err))
			return &dto.EventsResponse{Upcoming: []models.Event{}, Past: []models.Event{}}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming events")
	}

	past, err := s.repo.ListPast(ctx, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list past events")
	}

	if upcoming == nil {
		upcoming = []models.Event{}
	}
	if past == nil {
		past = []models.Event{}
	}
	return &dto.EventsResponse{Upcoming: upcoming, Past: past}, nil
}

// Register records the caller's attendance for an event. Registering twice
// is reported, not duplicated: the pre-check answers the common case and the
// unique index on (event_id, user_id) closes the race between concurrent
// identical requests.
func (s *EventService) Register(ctx context.Context, eventID, userID string) (*models.EventRegistration, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	if _, err := s.repo.FindRegistration(ctx, eventID, userID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrAlreadyRegistered, "already registered for this event")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check registration")
	}

	reg := &models.EventRegistration{
		EventID:      eventID,
		UserID:       userID,
		Status:       models.RegistrationRegistered,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.repo.CreateRegistration(ctx, reg); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyRegistered, "already registered for this event")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register for event")
	}

	return reg, nil
}

// CreateEvent creates an event from the admin form. Capacity and fee are
// optional; the fee defaults to zero.
func (s *EventService) CreateEvent(ctx context.Context, adminID string, req models.EventCreateRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	date, err := time.Parse(models.EventDateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DDTHH:MM")
	}

	fee := 0.0
	if req.RegistrationFee != nil {
		fee = *req.RegistrationFee
	}

	event := &models.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date.UTC(),
		Location:        req.Location,
		MaxAttendees:    req.MaxAttendees,
		RegistrationFee: fee,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	if s.audit != nil {
		if err := s.audit.Create(ctx, &models.AuditLog{
			UserID:     &adminID,
			Action:     models.AuditActionCreateEvent,
			Resource:   "event",
			ResourceID: &event.ID,
		}); err != nil {
			s.logger.Warn("failed to record event audit log", zap.Error(err))
		}
	}

	return event, nil
}

// ManageList returns every event for the admin view, newest date first.
func (s *EventService) ManageList(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// Upcoming returns the next events, soonest first.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	events, err := s.repo.ListUpcoming(ctx, s.now().UTC(), limit)
	if err != nil {
		if repository.IsNotInitialized(err) {
			return []models.Event{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}
