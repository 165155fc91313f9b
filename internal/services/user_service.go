package services

import (
	"fmt"
	"log"
	"strings"

	"jobmarket/internal/authz"
	"jobmarket/internal/models"
	"jobmarket/internal/repositories"
	"jobmarket/internal/sqlbuild"
)

type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List(role string, limit, offset int) ([]*models.User, int, error)
	Update(id string, req *models.UpdateUserRequest) (*models.User, error)
	Delete(id string) error
}

type userService struct {
	repo  repositories.UserRepository
	email EmailService
	auth  AuthService
}

func NewUserService(repo repositories.UserRepository, email EmailService, auth AuthService) UserService {
	return &userService{repo: repo, email: email, auth: auth}
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	if !authz.IsValidRole(req.Role) {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if p := strings.TrimSpace(req.PhoneNumber); p != "" {
		user.PhoneNumber = &p
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) List(role string, limit, offset int) ([]*models.User, int, error) {
	return s.repo.List(role, limit, offset)
}

// Update converts the sparse request into a patch; a pointer that is nil
// was omitted, a pointer to "" is an explicit set.
func (s *userService) Update(id string, req *models.UpdateUserRequest) (*models.User, error) {
	patch := sqlbuild.NewPatch(repositories.UserColumns...)
	if req.FirstName != nil {
		patch.Set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		patch.Set("last_name", *req.LastName)
	}
	if req.PhoneNumber != nil {
		patch.Set("phone_number", *req.PhoneNumber)
	}
	return s.repo.UpdateProfile(id, patch)
}

func (s *userService) Delete(id string) error {
	return s.repo.SoftDelete(id)
}
