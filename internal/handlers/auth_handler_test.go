package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Authenticate(email, password string) (*models.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, "stub-token", nil
}

func (s *stubAuthService) HashPassword(plain string) (string, error) { return "hashed", nil }

func (s *stubAuthService) IssueToken(user *models.User) (string, error) { return "stub-token", nil }

type stubUserService struct {
	user *models.User
	err  error
}

func (s *stubUserService) Register(req *models.RegisterRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetByID(id string) (*models.User, error) { return s.user, s.err }

func (s *stubUserService) List(role string, limit, offset int) ([]*models.User, int, error) {
	return nil, 0, nil
}

func (s *stubUserService) Update(id string, req *models.UpdateUserRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(id string) error { return s.err }

func newLoginRouter(auth *stubAuthService, users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(users, auth, nil)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	auth := &stubAuthService{user: &models.User{ID: "u-1", Email: "a@b.c", Role: "student"}}
	r := newLoginRouter(auth, &stubUserService{})

	w := postJSON(r, "/auth/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"stub-token"`)
}

func TestLogin_BadPayload(t *testing.T) {
	r := newLoginRouter(&stubAuthService{}, &stubUserService{})

	w := postJSON(r, "/auth/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{err: apperrors.ErrInvalidCredentials}
	r := newLoginRouter(auth, &stubUserService{})

	w := postJSON(r, "/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

// A locked account is distinguishable from bad credentials: 403, not 401.
func TestLogin_LockedAccount(t *testing.T) {
	auth := &stubAuthService{err: apperrors.ErrAccountLocked}
	r := newLoginRouter(auth, &stubUserService{})

	w := postJSON(r, "/auth/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "locked")
}

func TestRegister_Success(t *testing.T) {
	users := &stubUserService{user: &models.User{ID: "u-1", Role: "student"}}
	r := newLoginRouter(&stubAuthService{}, users)

	w := postJSON(r, "/auth/register", `{
		"email":"a@b.c","username":"abc","password":"secret1",
		"first_name":"A","last_name":"B","role":"student"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"stub-token"`)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	users := &stubUserService{err: &apperrors.StorageError{Constraint: "users_email_key"}}
	r := newLoginRouter(&stubAuthService{}, users)

	w := postJSON(r, "/auth/register", `{
		"email":"a@b.c","username":"abc","password":"secret1",
		"first_name":"A","last_name":"B","role":"student"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already in use")
}
