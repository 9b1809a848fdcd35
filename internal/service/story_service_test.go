package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type mockStoryRepo struct {
	stories      map[string]*models.Story
	published    []models.Story
	pending      []models.Story
	featured     []models.Story
	publishedErr error
	featuredErr  error
	created      []*models.Story
}

func (m *mockStoryRepo) Create(ctx context.Context, story *models.Story) error {
	story.ID = "s-new"
	m.created = append(m.created, story)
	return nil
}

func (m *mockStoryRepo) FindByID(ctx context.Context, id string) (*models.Story, error) {
	if story, ok := m.stories[id]; ok {
		copy := *story
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStoryRepo) ListPublished(ctx context.Context) ([]models.Story, error) {
	if m.publishedErr != nil {
		return nil, m.publishedErr
	}
	return m.published, nil
}

func (m *mockStoryRepo) ListPending(ctx context.Context) ([]models.Story, error) {
	return m.pending, nil
}

func (m *mockStoryRepo) ListFeatured(ctx context.Context, limit int) ([]models.Story, error) {
	if m.featuredErr != nil {
		return nil, m.featuredErr
	}
	return m.featured, nil
}

func (m *mockStoryRepo) SetPublished(ctx context.Context, id string) error {
	if story, ok := m.stories[id]; ok {
		story.IsPublished = true
	}
	return nil
}

func (m *mockStoryRepo) SetFeatured(ctx context.Context, id string, featured bool) error {
	if story, ok := m.stories[id]; ok {
		story.IsFeatured = featured
	}
	return nil
}

func TestStoryServiceSubmitStartsUnpublished(t *testing.T) {
	repo := &mockStoryRepo{}
	svc := NewStoryService(repo, &mockAudit{}, nil, nil)

	story, err := svc.Submit(context.Background(), "u1", models.StoryRequest{Title: "My journey", Content: "..."})
	require.NoError(t, err)
	assert.False(t, story.IsPublished)
	assert.False(t, story.IsFeatured)
	assert.Equal(t, "u1", story.UserID)
}

func TestStoryServicePublishedColdStart(t *testing.T) {
	repo := &mockStoryRepo{publishedErr: &pq.Error{Code: "42P01"}}
	svc := NewStoryService(repo, &mockAudit{}, nil, nil)

	stories, err := svc.Published(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}

func TestStoryServicePublishUnknownStory(t *testing.T) {
	svc := NewStoryService(&mockStoryRepo{}, &mockAudit{}, nil, nil)

	_, err := svc.Publish(context.Background(), "admin", "missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStoryServiceFeatureToggleRoundTrip(t *testing.T) {
	repo := &mockStoryRepo{stories: map[string]*models.Story{
		"s1": {ID: "s1", Title: "Story", IsPublished: false, IsFeatured: false},
	}}
	audit := &mockAudit{}
	svc := NewStoryService(repo, audit, nil, nil)

	// Featuring is independent of publication.
	story, err := svc.ToggleFeature(context.Background(), "admin", "s1")
	require.NoError(t, err)
	assert.True(t, story.IsFeatured)
	assert.False(t, story.IsPublished)
	assert.True(t, repo.stories["s1"].IsFeatured)

	story, err = svc.ToggleFeature(context.Background(), "admin", "s1")
	require.NoError(t, err)
	assert.False(t, story.IsFeatured)
	assert.False(t, repo.stories["s1"].IsFeatured)

	require.Len(t, audit.logs, 2)
	assert.Equal(t, models.AuditActionFeatureStory, audit.logs[0].Action)
}

func TestStoryServicePublishRecordsModeration(t *testing.T) {
	repo := &mockStoryRepo{stories: map[string]*models.Story{
		"s1": {ID: "s1", Title: "Story"},
	}}
	audit := &mockAudit{}
	svc := NewStoryService(repo, audit, nil, nil)

	story, err := svc.Publish(context.Background(), "admin", "s1")
	require.NoError(t, err)
	assert.True(t, story.IsPublished)
	assert.True(t, repo.stories["s1"].IsPublished)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionPublishStory, audit.logs[0].Action)
}

func TestStoryServiceManageListSplitsByState(t *testing.T) {
	repo := &mockStoryRepo{
		pending:   []models.Story{{ID: "s1"}},
		published: []models.Story{{ID: "s2", IsPublished: true}},
	}
	svc := NewStoryService(repo, &mockAudit{}, nil, nil)

	res, err := svc.ManageList(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Pending, 1)
	require.Len(t, res.Published, 1)
	assert.Equal(t, "s1", res.Pending[0].ID)
	assert.Equal(t, "s2", res.Published[0].ID)
}
