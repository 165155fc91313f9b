package services

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/config"
	"jobmarket/internal/models"
	"jobmarket/internal/repositories"
	"jobmarket/internal/token"
)

// AuthService owns the credential check: lockout consultation, password
// comparison and token issuance as one decision sequence. One call is one
// attempt; there are no retries here.
type AuthService interface {
	Authenticate(email, password string) (*models.User, string, error)
	HashPassword(plain string) (string, error)
	IssueToken(user *models.User) (string, error)
}

type authService struct {
	users repositories.UserRepository
	codec *token.Codec
	cfg   config.AuthConfig
}

func NewAuthService(users repositories.UserRepository, codec *token.Codec, cfg config.AuthConfig) AuthService {
	return &authService{users: users, codec: codec, cfg: cfg}
}

func (s *authService) Authenticate(email, password string) (*models.User, string, error) {
	locked, err := s.users.IsLocked(email)
	if err != nil {
		return nil, "", err
	}
	if locked {
		log.Printf("[auth][login] rejected locked account email=%q", email)
		return nil, "", apperrors.ErrAccountLocked
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// unknown (or inactive) email: same failure path as a wrong
		// password, and the attempt is still recorded against the email
		if err := s.recordFailure(email); err != nil {
			return nil, "", err
		}
		log.Printf("[auth][login] no active account for email=%q", email)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if err := s.recordFailure(email); err != nil {
			return nil, "", err
		}
		log.Printf("[auth][login] password mismatch userID=%s", user.ID)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(user.ID); err != nil {
		return nil, "", err
	}

	tokenStr, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[auth][login] success userID=%s role=%s", user.ID, user.Role)
	return user, tokenStr, nil
}

func (s *authService) recordFailure(email string) error {
	return s.users.IncrementFailedAttempts(email, s.cfg.MaxLoginAttempts, s.cfg.LockoutMinutes)
}

func (s *authService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	return s.codec.Sign(token.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IssuedAt: now.Unix(),
		Expires:  now.Add(s.cfg.TokenTTL()).Unix(),
	})
}
