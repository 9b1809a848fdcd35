package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/repository"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

const adminDashboardCacheKey = "dash:admin"

const (
	homeStoriesLimit        = 3
	homeEventsLimit         = 3
	alumniDashboardEventMax = 5
)

type dashboardUserCounter interface {
	CountPendingAlumni(ctx context.Context) (int, error)
	CountApprovedAlumni(ctx context.Context) (int, error)
}

type dashboardDonationReader interface {
	SumAmount(ctx context.Context) (float64, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type dashboardJobCounter interface {
	CountActive(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// DashboardService composes the home page, the alumni dashboard and the
// admin aggregates.
type DashboardService struct {
	users     dashboardUserCounter
	donations dashboardDonationReader
	jobs      dashboardJobCounter
	events    *EventService
	stories   *StoryService
	cache     *CacheService
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Users     dashboardUserCounter
	Donations dashboardDonationReader
	Jobs      dashboardJobCounter
	Events    *EventService
	Stories   *StoryService
	Cache     *CacheService
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		users:     params.Users,
		donations: params.Donations,
		jobs:      params.Jobs,
		events:    params.Events,
		stories:   params.Stories,
		cache:     params.Cache,
		logger:    logger,
		cacheTTL:  ttl,
	}
}

// Home returns the public landing payload: up to three featured stories and
// the next three upcoming events. Both lists degrade to empty on a store
// without a schema.
func (s *DashboardService) Home(ctx context.Context) (*dto.HomeResponse, error) {
	stories, err := s.stories.Featured(ctx, homeStoriesLimit)
	if err != nil {
		return nil, err
	}
	events, err := s.events.Upcoming(ctx, homeEventsLimit)
	if err != nil {
		return nil, err
	}
	return &dto.HomeResponse{FeaturedStories: stories, UpcomingEvents: events}, nil
}

// Alumni summarises the signed-in member's activity.
func (s *DashboardService) Alumni(ctx context.Context, userID string) (*dto.AlumniDashboardResponse, error) {
	donations, err := s.donations.CountByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count donations")
	}
	jobs, err := s.jobs.CountByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count jobs")
	}
	events, err := s.events.Upcoming(ctx, alumniDashboardEventMax)
	if err != nil {
		return nil, err
	}

	return &dto.AlumniDashboardResponse{
		DonationsCount: donations,
		JobsCount:      jobs,
		UpcomingEvents: events,
	}, nil
}

// Admin aggregates the headline admin numbers, reporting cache utilisation.
func (s *DashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	var cached dto.AdminDashboardResponse
	if hit, err := s.cache.Get(ctx, adminDashboardCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary := &dto.AdminDashboardResponse{}
	var err error

	if summary.PendingUsers, err = s.users.CountPendingAlumni(ctx); err != nil {
		return nil, false, s.wrapCount(err, "pending users")
	}
	if summary.TotalDonations, err = s.donations.SumAmount(ctx); err != nil {
		return nil, false, s.wrapCount(err, "donation total")
	}
	if summary.ActiveJobs, err = s.jobs.CountActive(ctx); err != nil {
		return nil, false, s.wrapCount(err, "active jobs")
	}
	if summary.TotalAlumni, err = s.users.CountApprovedAlumni(ctx); err != nil {
		return nil, false, s.wrapCount(err, "approved alumni")
	}

	if err := s.cache.Set(ctx, adminDashboardCacheKey, summary, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache admin dashboard", zap.Error(err))
	}

	return summary, false, nil
}

func (s *DashboardService) wrapCount(err error, what string) error {
	if repository.IsNotInitialized(err) {
		// Admin dashboards require an initialized store; report it rather
		// than masking with zeros.
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store not initialized")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate "+what)
}
