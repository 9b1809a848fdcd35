package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik0133/alumni-connect-api/internal/models"
)

func jobRows(jobs ...models.Job) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "company", "location", "description",
		"requirements", "salary_range", "job_type", "is_active", "created_at", "expires_at",
	})
	for _, j := range jobs {
		rows.AddRow(j.ID, j.UserID, j.Title, j.Company, j.Location, j.Description,
			j.Requirements, j.SalaryRange, j.JobType, j.IsActive, j.CreatedAt, j.ExpiresAt)
	}
	return rows
}

func TestJobRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.Job{UserID: "u1", Title: "Engineer", Company: "Acme", JobType: models.JobFullTime, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), job))
	assert.NotEmpty(t, job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryListActivePaginates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	job := models.Job{ID: "j11", UserID: "u1", Title: "Engineer", Company: "Acme",
		JobType: models.JobFullTime, IsActive: true, CreatedAt: time.Now()}
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 10 OFFSET 10")).
		WillReturnRows(jobRows(job))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs WHERE is_active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	jobs, total, err := repo.ListActive(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j11", jobs[0].ID)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryCountByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
