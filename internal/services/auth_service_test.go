package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/config"
	"jobmarket/internal/models"
	"jobmarket/internal/sqlbuild"
	"jobmarket/internal/token"
)

// fakeUserRepo keeps a single user in memory and mirrors the lockout
// bookkeeping the SQL implementation performs.
type fakeUserRepo struct {
	user       *models.User
	lockedTill *time.Time

	failureRecorded int
	loginRecorded   bool
}

func (f *fakeUserRepo) Create(u *models.User) error { f.user = u; return nil }

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email && f.user.IsActive {
		return f.user, nil
	}
	return nil, nil
}
func (f *fakeUserRepo) List(string, int, int) ([]*models.User, int, error) { return nil, 0, nil }

func (f *fakeUserRepo) UpdateProfile(string, *sqlbuild.Patch) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) SoftDelete(string) error { return nil }

func (f *fakeUserRepo) UpdatePassword(string, string) error { return nil }

func (f *fakeUserRepo) IsLocked(email string) (bool, error) {
	return f.lockedTill != nil && f.lockedTill.After(time.Now()), nil
}

func (f *fakeUserRepo) IncrementFailedAttempts(email string, threshold, lockMinutes int) error {
	f.failureRecorded++
	if f.user == nil || f.user.Email != email {
		return nil // unknown email, no row matched
	}
	f.user.FailedLoginAttempts++
	if f.user.FailedLoginAttempts >= threshold {
		t := time.Now().Add(time.Duration(lockMinutes) * time.Minute)
		f.lockedTill = &t
	}
	return nil
}

func (f *fakeUserRepo) RecordLogin(id string) error {
	f.loginRecorded = true
	f.user.FailedLoginAttempts = 0
	f.lockedTill = nil
	return nil
}

func (f *fakeUserRepo) CountByRole() (map[string]int, error) { return nil, nil }

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret",
		TokenTTLHours:    24,
		MaxLoginAttempts: 5,
		LockoutMinutes:   30,
	}
}

func newTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u-1",
		Email:        "student@rmu.ac.th",
		Username:     "student1",
		PasswordHash: string(hash),
		Role:         "student",
		IsActive:     true,
	}
}

func TestAuthenticate_Success(t *testing.T) {
	repo := &fakeUserRepo{user: newTestUser(t, "correct-horse")}
	codec := token.NewCodec("test-secret")
	svc := NewAuthService(repo, codec, testAuthConfig())

	user, tok, err := svc.Authenticate("student@rmu.ac.th", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, repo.loginRecorded)
	assert.Zero(t, repo.failureRecorded)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
	// 24h expiry, give or take scheduling slop
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), claims.Expires, 5)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: newTestUser(t, "correct-horse")}
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	_, _, err := svc.Authenticate("student@rmu.ac.th", "battery-staple")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 1, repo.failureRecorded)
	assert.False(t, repo.loginRecorded)
}

// An unknown email fails the same way as a wrong password, and the
// attempt is still recorded against the presented email.
func TestAuthenticate_UnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	_, _, err := svc.Authenticate("nobody@rmu.ac.th", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 1, repo.failureRecorded)
}

func TestAuthenticate_InactiveAccountLooksUnknown(t *testing.T) {
	user := newTestUser(t, "correct-horse")
	user.IsActive = false
	repo := &fakeUserRepo{user: user}
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	_, _, err := svc.Authenticate("student@rmu.ac.th", "correct-horse")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticate_LockedAccountRejectedBeforePasswordCheck(t *testing.T) {
	repo := &fakeUserRepo{user: newTestUser(t, "correct-horse")}
	till := time.Now().Add(10 * time.Minute)
	repo.lockedTill = &till
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	// the correct password does not help while the lock holds
	_, _, err := svc.Authenticate("student@rmu.ac.th", "correct-horse")
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	assert.Zero(t, repo.failureRecorded)
}

func TestAuthenticate_FifthFailureLocks(t *testing.T) {
	repo := &fakeUserRepo{user: newTestUser(t, "correct-horse")}
	repo.user.FailedLoginAttempts = 4
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	_, _, err := svc.Authenticate("student@rmu.ac.th", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Authenticate("student@rmu.ac.th", "correct-horse")
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestAuthenticate_ExpiredLockAdmitsAndResets(t *testing.T) {
	repo := &fakeUserRepo{user: newTestUser(t, "correct-horse")}
	repo.user.FailedLoginAttempts = 5
	till := time.Now().Add(-time.Minute)
	repo.lockedTill = &till
	svc := NewAuthService(repo, token.NewCodec("test-secret"), testAuthConfig())

	_, _, err := svc.Authenticate("student@rmu.ac.th", "correct-horse")
	require.NoError(t, err)
	assert.True(t, repo.loginRecorded)
	assert.Zero(t, repo.user.FailedLoginAttempts)
	assert.Nil(t, repo.lockedTill)
}
