package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
	"jobmarket/internal/sqlbuild"
)

var userRowColumns = []string{
	"id", "email", "username", "password_hash", "first_name", "last_name",
	"phone_number", "role", "is_active", "failed_login_attempts",
	"locked_until", "last_login", "created_at", "updated_at",
}

func userRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(userRowColumns).AddRow(
		"u-1", "student@rmu.ac.th", "student1", "$2a$10$hash", "Ada", "L",
		nil, "student", true, 0, nil, nil, now, now,
	)
}

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestUserGetByEmail_ActiveOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users\s+WHERE email = \$1 AND is_active = TRUE`).
		WithArgs("student@rmu.ac.th").
		WillReturnRows(userRow(mock))

	u, err := repo.GetByEmail("student@rmu.ac.th")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail_MissingIsNilNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users`).
		WithArgs("nobody@rmu.ac.th").
		WillReturnRows(mock.NewRows(userRowColumns))

	u, err := repo.GetByEmail("nobody@rmu.ac.th")
	require.NoError(t, err)
	assert.Nil(t, u)
}

// The increment and the conditional lock land in one statement, with the
// threshold and lock window as bound arguments.
func TestIncrementFailedAttempts_SingleConditionalUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SET failed_login_attempts = failed_login_attempts \+ 1`).
		WithArgs(5, 30, "student@rmu.ac.th").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementFailedAttempts("student@rmu.ac.th", 5, 30)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An unknown email matches zero rows and is still not an error.
func TestIncrementFailedAttempts_UnknownEmailNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs(5, 30, "nobody@rmu.ac.th").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementFailedAttempts("nobody@rmu.ac.th", 5, 30)
	assert.NoError(t, err)
}

func TestIsLocked(t *testing.T) {
	repo, mock := newMockRepo(t)

	future := time.Now().Add(10 * time.Minute)
	mock.ExpectQuery(`SELECT locked_until FROM users`).
		WithArgs("student@rmu.ac.th").
		WillReturnRows(mock.NewRows([]string{"locked_until"}).AddRow(future))

	locked, err := repo.IsLocked("student@rmu.ac.th")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestIsLocked_ExpiredLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	past := time.Now().Add(-time.Minute)
	mock.ExpectQuery(`SELECT locked_until FROM users`).
		WithArgs("student@rmu.ac.th").
		WillReturnRows(mock.NewRows([]string{"locked_until"}).AddRow(past))

	locked, err := repo.IsLocked("student@rmu.ac.th")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestIsLocked_UnknownEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT locked_until FROM users`).
		WithArgs("nobody@rmu.ac.th").
		WillReturnRows(mock.NewRows([]string{"locked_until"}))

	locked, err := repo.IsLocked("nobody@rmu.ac.th")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRecordLogin_ResetsCounterAndLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`failed_login_attempts = 0`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordLogin("u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An empty patch never reaches the database.
func TestUpdateProfile_NoFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.UpdateProfile("u-1", sqlbuild.NewPatch(UserColumns...))
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_SparsePatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	patch := sqlbuild.NewPatch(UserColumns...)
	patch.Set("phone_number", "555-0101")

	mock.ExpectQuery(`UPDATE users SET phone_number=\$1, updated_at=CURRENT_TIMESTAMP WHERE id=\$2`).
		WithArgs("555-0101", "u-1").
		WillReturnRows(userRow(mock))

	u, err := repo.UpdateProfile("u-1", patch)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(&models.User{
		Email:        "student@rmu.ac.th",
		Username:     "student1",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Ada",
		LastName:     "L",
		Role:         "student",
	})
	require.Error(t, err)
	assert.Equal(t, "users_email_key", apperrors.ConstraintName(err))
}
