package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

type mockDashboardCounts struct {
	pendingAlumni  int
	approvedAlumni int
	donationSum    float64
	donationsBy    int
	activeJobs     int
	jobsBy         int

	userCounts int
}

func (m *mockDashboardCounts) CountPendingAlumni(ctx context.Context) (int, error) {
	m.userCounts++
	return m.pendingAlumni, nil
}

func (m *mockDashboardCounts) CountApprovedAlumni(ctx context.Context) (int, error) {
	return m.approvedAlumni, nil
}

func (m *mockDashboardCounts) SumAmount(ctx context.Context) (float64, error) {
	return m.donationSum, nil
}

func (m *mockDashboardCounts) CountByUser(ctx context.Context, userID string) (int, error) {
	return m.donationsBy, nil
}

type mockJobCounts struct {
	active int
	byUser int
}

func (m *mockJobCounts) CountActive(ctx context.Context) (int, error) { return m.active, nil }

func (m *mockJobCounts) CountByUser(ctx context.Context, userID string) (int, error) {
	return m.byUser, nil
}

func newDashboardService(counts *mockDashboardCounts, jobs *mockJobCounts, eventRepo *mockEventRepo, storyRepo *mockStoryRepo, cache *CacheService) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Users:     counts,
		Donations: counts,
		Jobs:      jobs,
		Events:    NewEventService(eventRepo, &mockAudit{}, nil, nil),
		Stories:   NewStoryService(storyRepo, &mockAudit{}, nil, nil),
		Cache:     cache,
		CacheTTL:  time.Minute,
	})
}

func TestDashboardHomeComposesHeadlines(t *testing.T) {
	eventRepo := &mockEventRepo{upcoming: []models.Event{
		{ID: "e1", Title: "Reunion"},
		{ID: "e2", Title: "Career Fair"},
		{ID: "e3", Title: "Webinar"},
	}}
	storyRepo := &mockStoryRepo{featured: []models.Story{
		{ID: "s1", Title: "From campus to CTO", IsPublished: true, IsFeatured: true},
	}}
	svc := newDashboardService(&mockDashboardCounts{}, &mockJobCounts{}, eventRepo, storyRepo, nil)

	home, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, home.UpcomingEvents, 3)
	assert.Len(t, home.FeaturedStories, 1)
}

func TestDashboardAlumniCountsOwnActivity(t *testing.T) {
	counts := &mockDashboardCounts{donationsBy: 4}
	jobs := &mockJobCounts{byUser: 2}
	svc := newDashboardService(counts, jobs, &mockEventRepo{}, &mockStoryRepo{}, nil)

	res, err := svc.Alumni(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, res.DonationsCount)
	assert.Equal(t, 2, res.JobsCount)
	assert.NotNil(t, res.UpcomingEvents)
}

func TestDashboardAdminAggregates(t *testing.T) {
	counts := &mockDashboardCounts{pendingAlumni: 3, approvedAlumni: 40, donationSum: 1250.5}
	jobs := &mockJobCounts{active: 7}
	svc := newDashboardService(counts, jobs, &mockEventRepo{}, &mockStoryRepo{}, nil)

	res, cacheHit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 3, res.PendingUsers)
	assert.Equal(t, 40, res.TotalAlumni)
	assert.Equal(t, 1250.5, res.TotalDonations)
	assert.Equal(t, 7, res.ActiveJobs)
}

func TestDashboardAdminServesFromCache(t *testing.T) {
	counts := &mockDashboardCounts{pendingAlumni: 3}
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := newDashboardService(counts, &mockJobCounts{}, &mockEventRepo{}, &mockStoryRepo{}, cache)

	_, cacheHit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	res, cacheHit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, 3, res.PendingUsers)
	assert.Equal(t, 1, counts.userCounts)
}
