package services

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
	"jobmarket/internal/repositories"
)

const resetTokenTTL = time.Hour

type PasswordResetService interface {
	// Request issues a reset token for the account, if one exists. It
	// returns nil either way so callers cannot probe for accounts.
	Request(email string) error
	Confirm(token, newPassword string) error
}

type passwordResetService struct {
	resets repositories.PasswordResetRepository
	users  repositories.UserRepository
	email  EmailService
	auth   AuthService
}

func NewPasswordResetService(
	resets repositories.PasswordResetRepository,
	users repositories.UserRepository,
	email EmailService,
	auth AuthService,
) PasswordResetService {
	return &passwordResetService{resets: resets, users: users, email: email, auth: auth}
}

func (s *passwordResetService) Request(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[reset][request] no active account for email=%q", email)
		return nil
	}

	tok, err := newResetToken(32)
	if err != nil {
		return err
	}
	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     tok,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resets.Create(reset); err != nil {
		return err
	}

	if s.email != nil {
		if err := s.email.SendPasswordResetEmail(user.Email, tok); err != nil {
			log.Printf("[reset][request] warning: email to %s failed: %v", user.Email, err)
		}
	}
	return nil
}

func (s *passwordResetService) Confirm(tok, newPassword string) error {
	reset, err := s.resets.GetValidByToken(tok)
	if err != nil {
		return err
	}
	if reset == nil {
		return apperrors.ErrResetTokenInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(reset.UserID, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(reset.ID)
}

func newResetToken(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
