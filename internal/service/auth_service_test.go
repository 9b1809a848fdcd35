package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

type mockUserRepo struct {
	userByEmail    *models.User
	userByID       *models.User
	findByEmailErr error
	findByIDErr    error
	createErr      error
	created        []*models.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "new-user"
	}
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	return m.userByEmail, nil
}

type mockAudit struct {
	logs []*models.AuditLog
	err  error
}

func (m *mockAudit) Create(ctx context.Context, log *models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func newAuthService(repo *mockUserRepo, audit *mockAudit) *AuthService {
	return NewAuthService(repo, audit, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "test",
	})
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:          "jane@example.com",
		Password:       "secret123",
		FirstName:      "Jane",
		LastName:       "Doe",
		GraduationYear: 2015,
		Degree:         "BSc",
		Department:     "CS",
	}
}

func TestAuthServiceRegisterCreatesUnapprovedAlumni(t *testing.T) {
	repo := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	audit := &mockAudit{}
	svc := newAuthService(repo, audit)

	info, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, models.RoleAlumni, created.Role)
	assert.False(t, created.IsApproved)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))

	assert.Equal(t, models.RoleAlumni, info.Role)
	assert.False(t, info.IsApproved)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionRegister, audit.logs[0].Action)
}

func TestAuthServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "jane@example.com"}}
	svc := newAuthService(repo, &mockAudit{})

	info, err := svc.Register(context.Background(), validRegisterRequest())
	assert.Nil(t, info)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestAuthServiceRegisterDuplicateRace(t *testing.T) {
	// The pre-check passes but the insert hits the unique index.
	repo := &mockUserRepo{
		findByEmailErr: sql.ErrNoRows,
		createErr:      &pq.Error{Code: "23505"},
	}
	svc := newAuthService(repo, &mockAudit{})

	_, err := svc.Register(context.Background(), validRegisterRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
}

func TestAuthServiceRegisterValidatesPayload(t *testing.T) {
	svc := newAuthService(&mockUserRepo{}, &mockAudit{})

	req := validRegisterRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceLoginFailuresAreUniform(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	unknown := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	wrongPassword := &mockUserRepo{userByEmail: &models.User{
		ID: "u1", Email: "jane@example.com", PasswordHash: string(hash),
	}}

	for name, repo := range map[string]*mockUserRepo{"unknown email": unknown, "wrong password": wrongPassword} {
		t.Run(name, func(t *testing.T) {
			svc := newAuthService(repo, &mockAudit{})
			_, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
			appErr := appErrors.FromError(err)
			assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
			assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErr.Message)
		})
	}
}

func TestAuthServiceLoginDestinations(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	cases := []struct {
		name        string
		role        models.UserRole
		approved    bool
		destination string
	}{
		{"admin", models.RoleAdmin, true, models.DestinationAdminDashboard},
		{"approved alumni", models.RoleAlumni, true, models.DestinationAlumniDashboard},
		{"pending alumni", models.RoleAlumni, false, models.DestinationPendingApproval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockUserRepo{userByEmail: &models.User{
				ID: "u1", Email: "jane@example.com", PasswordHash: string(hash),
				Role: tc.role, IsApproved: tc.approved,
			}}
			audit := &mockAudit{}
			svc := newAuthService(repo, audit)

			res, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
			require.NoError(t, err)
			assert.Equal(t, tc.destination, res.Destination)
			assert.NotEmpty(t, res.Token)
			require.Len(t, audit.logs, 1)
			assert.Equal(t, models.AuditActionLogin, audit.logs[0].Action)
		})
	}
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockUserRepo{userByEmail: &models.User{
		ID: "u1", Email: "jane@example.com", PasswordHash: string(hash),
		Role: models.RoleAlumni, IsApproved: true,
	}}
	svc := newAuthService(repo, &mockAudit{})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAlumni, claims.Role)
	assert.True(t, claims.IsApproved)

	_, err = svc.ValidateToken(res.Token + "tampered")
	assert.Error(t, err)

	other := newAuthService(repo, &mockAudit{})
	other.config.Secret = "different"
	_, err = other.ValidateToken(res.Token)
	assert.Error(t, err)
}

func TestAuthServiceCurrentUserReloadsAccount(t *testing.T) {
	repo := &mockUserRepo{userByID: &models.User{ID: "u1", IsApproved: true}}
	svc := newAuthService(repo, &mockAudit{})

	user, err := svc.CurrentUser(context.Background(), &models.JWTClaims{UserID: "u1", IsApproved: false})
	require.NoError(t, err)
	assert.True(t, user.IsApproved)

	repo.findByIDErr = sql.ErrNoRows
	_, err = svc.CurrentUser(context.Background(), &models.JWTClaims{UserID: "gone"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceAuditFailureDoesNotBlock(t *testing.T) {
	repo := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	svc := newAuthService(repo, &mockAudit{err: errors.New("audit store down")})

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.NoError(t, err)
}
