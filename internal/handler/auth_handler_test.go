package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_server/internal/model"
	"portfolio_server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerUser *model.User
	registerErr  error
	loginUser    *model.User
	loginToken   string
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	return s.loginUser, s.loginToken, s.loginErr
}

func setupAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).RegisterAuthRoutes(r.Group("/"))
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{
		registerUser: &model.User{ID: 1, Username: "alice"},
	})

	w := postJSON(r, "/register", map[string]string{"username": "alice", "password": "password123"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{registerErr: service.ErrUserAlreadyExists})

	w := postJSON(r, "/register", map[string]string{"username": "alice", "password": "password123"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/register", map[string]string{"username": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{
		loginUser:  &model.User{ID: 1, Username: "alice", IsAdmin: false},
		loginToken: "signed.jwt.token",
	})

	w := postJSON(r, "/login", map[string]string{"username": "alice", "password": "pw1"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.False(t, resp.IsAdmin)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	// Unknown user and wrong password surface as the same service error, so
	// the response shape and status are identical for both.
	r := setupAuthRouter(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	wUnknown := postJSON(r, "/login", map[string]string{"username": "ghost", "password": "pw1"})
	wWrongPw := postJSON(r, "/login", map[string]string{"username": "alice", "password": "nope"})

	assert.Equal(t, http.StatusBadRequest, wUnknown.Code)
	assert.Equal(t, http.StatusBadRequest, wWrongPw.Code)
	assert.Equal(t, wUnknown.Body.String(), wWrongPw.Body.String())
}
