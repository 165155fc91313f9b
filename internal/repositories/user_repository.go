package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
	"jobmarket/internal/sqlbuild"
)

// UserColumns are the patchable profile columns, in the order update
// statements emit them.
var UserColumns = []string{"first_name", "last_name", "phone_number"}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(role string, limit, offset int) ([]*models.User, int, error)
	UpdateProfile(id string, patch *sqlbuild.Patch) (*models.User, error)
	SoftDelete(id string) error
	UpdatePassword(id, passwordHash string) error

	// lockout bookkeeping
	IsLocked(email string) (bool, error)
	IncrementFailedAttempts(email string, threshold int, lockMinutes int) error
	RecordLogin(id string) error

	CountByRole() (map[string]int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userSelectColumns = `
	id, email, username, password_hash, first_name, last_name, phone_number,
	role, is_active, failed_login_attempts, locked_until, last_login,
	created_at, updated_at`

func (r *userRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (
			id, email, username, password_hash, first_name, last_name,
			phone_number, role
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING is_active, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Role,
	).Scan(&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	return apperrors.WrapStorage(err)
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT` + userSelectColumns + `
		FROM users
		WHERE id = $1 AND is_active = TRUE
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

// GetByEmail only matches active accounts; a soft-deleted account looks
// identical to a missing one.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT` + userSelectColumns + `
		FROM users
		WHERE email = $1 AND is_active = TRUE
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) List(role string, limit, offset int) ([]*models.User, int, error) {
	f := sqlbuild.NewFilter()
	if role != "" {
		f.Equal("role", role)
	}

	query := `SELECT` + userSelectColumns + ` FROM users` + f.Where()
	query += ` ORDER BY created_at DESC`
	query += sqlLimitOffset(f.NextArg())
	args := append(f.Args(), limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + f.Where()
	if err := r.DB.QueryRow(countQuery, f.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	return res, total, nil
}

func (r *userRepository) UpdateProfile(id string, patch *sqlbuild.Patch) (*models.User, error) {
	assignments, args, err := patch.Assignments(1)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at=CURRENT_TIMESTAMP WHERE id=$%d AND is_active = TRUE RETURNING%s`,
		assignments, len(args), userSelectColumns,
	)
	return r.scanOne(r.DB.QueryRow(query, args...))
}

func (r *userRepository) SoftDelete(id string) error {
	const q = `
		UPDATE users
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id)
	return apperrors.WrapStorage(err)
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(q, passwordHash, id)
	return apperrors.WrapStorage(err)
}

// IsLocked reports whether a lock timestamp is set and still in the
// future. A stale lock is not cleared here; the next successful login
// does that.
func (r *userRepository) IsLocked(email string) (bool, error) {
	const q = `SELECT locked_until FROM users WHERE email = $1`
	var lockedUntil sql.NullTime
	err := r.DB.QueryRow(q, email).Scan(&lockedUntil)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.WrapStorage(err)
	}
	return lockedUntil.Valid && lockedUntil.Time.After(time.Now()), nil
}

// IncrementFailedAttempts bumps the counter and sets the lock in one
// conditional UPDATE, so concurrent attempts on the same row cannot lose
// an increment. Matching zero rows (unknown email) is a deliberate no-op.
func (r *userRepository) IncrementFailedAttempts(email string, threshold int, lockMinutes int) error {
	const q = `
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    locked_until = CASE
		        WHEN failed_login_attempts + 1 >= $1
		        THEN CURRENT_TIMESTAMP + ($2 * INTERVAL '1 minute')
		        ELSE locked_until
		    END
		WHERE email = $3
	`
	_, err := r.DB.Exec(q, threshold, lockMinutes, email)
	return apperrors.WrapStorage(err)
}

func (r *userRepository) RecordLogin(id string) error {
	const q = `
		UPDATE users
		SET last_login = CURRENT_TIMESTAMP,
		    failed_login_attempts = 0,
		    locked_until = NULL
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id)
	return apperrors.WrapStorage(err)
}

func (r *userRepository) CountByRole() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT role, COUNT(*) FROM users WHERE is_active = TRUE GROUP BY role`)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts[role] = n
	}
	return counts, apperrors.WrapStorage(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		phone       sql.NullString
		lockedUntil sql.NullTime
		lastLogin   sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&phone, &u.Role, &u.IsActive, &u.FailedLoginAttempts, &lockedUntil,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, apperrors.WrapStorage(err)
	}
	if phone.Valid {
		s := phone.String
		u.PhoneNumber = &s
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		u.LockedUntil = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}
