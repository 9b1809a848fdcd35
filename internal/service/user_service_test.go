package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type mockDirectoryRepo struct {
	users    map[string]*models.User
	matches  []models.User
	facets   models.DirectoryFacets
	pending  []models.User
	approved []string
	updated  []*models.User

	lastFilter models.DirectoryFilter
}

func (m *mockDirectoryRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDirectoryRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	m.updated = append(m.updated, user)
	return nil
}

func (m *mockDirectoryRepo) Approve(ctx context.Context, id string, approvedAt time.Time) error {
	m.approved = append(m.approved, id)
	return nil
}

func (m *mockDirectoryRepo) ListPendingAlumni(ctx context.Context) ([]models.User, error) {
	return m.pending, nil
}

func (m *mockDirectoryRepo) Directory(ctx context.Context, filter models.DirectoryFilter) ([]models.User, error) {
	m.lastFilter = filter
	return m.matches, nil
}

func (m *mockDirectoryRepo) DirectoryFacets(ctx context.Context) (*models.DirectoryFacets, error) {
	facets := m.facets
	return &facets, nil
}

func TestUserServiceUpdateProfileWritesEditableFields(t *testing.T) {
	repo := &mockDirectoryRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Role: models.RoleAlumni},
	}}
	svc := NewUserService(repo, &mockAudit{}, nil, nil)

	user, err := svc.UpdateProfile(context.Background(), "u1", models.ProfileUpdateRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Company:   "Acme",
		Position:  "CTO",
		Bio:       "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", user.LastName)
	assert.Equal(t, "Acme", user.Company)
	require.Len(t, repo.updated, 1)
	// Email is not an editable field.
	assert.Equal(t, "jane@example.com", repo.updated[0].Email)
}

func TestUserServiceDirectoryReturnsFacets(t *testing.T) {
	repo := &mockDirectoryRepo{
		matches: []models.User{{ID: "u1", FirstName: "Jane", LastName: "Doe", Role: models.RoleAlumni, IsApproved: true}},
		facets:  models.DirectoryFacets{Years: []int{2020, 2015}, Departments: []string{"CS"}},
	}
	svc := NewUserService(repo, &mockAudit{}, nil, nil)

	year := 2015
	res, err := svc.Directory(context.Background(), models.DirectoryFilter{Search: "jane", GraduationYear: &year})
	require.NoError(t, err)
	require.Len(t, res.Alumni, 1)
	assert.Equal(t, "Jane", res.Alumni[0].FirstName)
	assert.Equal(t, []int{2020, 2015}, res.Facets.Years)
	assert.Equal(t, "jane", repo.lastFilter.Search)
	require.NotNil(t, repo.lastFilter.GraduationYear)
	assert.Equal(t, 2015, *repo.lastFilter.GraduationYear)
}

func TestUserServiceApproveUnknownUser(t *testing.T) {
	svc := NewUserService(&mockDirectoryRepo{}, &mockAudit{}, nil, nil)

	_, err := svc.ApproveUser(context.Background(), "admin", "missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestUserServiceApproveUserRecordsAudit(t *testing.T) {
	repo := &mockDirectoryRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleAlumni, IsApproved: false},
	}}
	audit := &mockAudit{}
	svc := NewUserService(repo, audit, nil, nil)

	info, err := svc.ApproveUser(context.Background(), "admin", "u1")
	require.NoError(t, err)
	assert.True(t, info.IsApproved)
	assert.Equal(t, []string{"u1"}, repo.approved)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionApproveUser, audit.logs[0].Action)
	require.NotNil(t, audit.logs[0].ResourceID)
	assert.Equal(t, "u1", *audit.logs[0].ResourceID)
}
