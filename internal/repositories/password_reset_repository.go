package repositories

import (
	"database/sql"

	"github.com/google/uuid"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
)

type PasswordResetRepository interface {
	Create(reset *models.PasswordReset) error
	// GetValidByToken returns nil when the token is unknown, used or expired.
	GetValidByToken(token string) (*models.PasswordReset, error)
	MarkUsed(id string) error
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Create(reset *models.PasswordReset) error {
	if reset.ID == "" {
		reset.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO password_resets (id, user_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`
	err := r.DB.QueryRow(q, reset.ID, reset.UserID, reset.Token, reset.ExpiresAt).
		Scan(&reset.CreatedAt)
	return apperrors.WrapStorage(err)
}

func (r *passwordResetRepository) GetValidByToken(token string) (*models.PasswordReset, error) {
	const q = `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM password_resets
		WHERE token = $1 AND used_at IS NULL AND expires_at > CURRENT_TIMESTAMP
	`
	reset := &models.PasswordReset{}
	var usedAt sql.NullTime
	err := r.DB.QueryRow(q, token).Scan(
		&reset.ID, &reset.UserID, &reset.Token, &reset.ExpiresAt, &usedAt, &reset.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	if usedAt.Valid {
		t := usedAt.Time
		reset.UsedAt = &t
	}
	return reset, nil
}

func (r *passwordResetRepository) MarkUsed(id string) error {
	_, err := r.DB.Exec(`UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return apperrors.WrapStorage(err)
}
