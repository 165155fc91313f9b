package apperrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")

	ErrJobNotOpen        = errors.New("job is not open for applications")
	ErrDeadlinePassed    = errors.New("application deadline has passed")
	ErrJobFull           = errors.New("job has reached its application limit")
	ErrAlreadyApplied    = errors.New("already applied for this job")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
)

// StorageError wraps a database failure with the violated constraint (if
// any) so handlers can map duplicates to a conflict response without
// inspecting driver types themselves.
type StorageError struct {
	Constraint string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("storage: constraint %s violated: %v", e.Constraint, e.Err)
	}
	return fmt.Sprintf("storage: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage converts driver errors into *StorageError, extracting the
// constraint name from postgres unique violations (code 23505).
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return &StorageError{Constraint: pqErr.Constraint, Err: err}
		}
		return &StorageError{Err: err}
	}
	return err
}

// ConstraintName returns the violated constraint carried by err, or "".
func ConstraintName(err error) string {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Constraint
	}
	return ""
}
