package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wookrail/trainbooking/internal/domain"
)

// MockAuthUseCase is a mock implementation of auth.AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) Whoami(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestAuthHandler_register(t *testing.T) {
	mockAuth := &MockAuthUseCase{}
	handler := NewAuthHandler(mockAuth, "session", 3600)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "alice", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAuth.On("Register", c.Request.Context(), "alice", "s3cret").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_register_duplicate(t *testing.T) {
	mockAuth := &MockAuthUseCase{}
	handler := NewAuthHandler(mockAuth, "session", 3600)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "alice", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAuth.On("Register", c.Request.Context(), "alice", "s3cret").Return(nil, domain.ErrConflict)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	mockAuth := &MockAuthUseCase{}
	handler := NewAuthHandler(mockAuth, "session", 3600)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "alice", Password: "s3cret"})
	c.Request = httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAuth.On("Login", c.Request.Context(), "alice", "s3cret").Return("token123", nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "session=token123")

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "token123", response["token"])
}

func TestAuthHandler_login_invalidCredentials(t *testing.T) {
	mockAuth := &MockAuthUseCase{}
	handler := NewAuthHandler(mockAuth, "session", 3600)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "alice", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAuth.On("Login", c.Request.Context(), "alice", "wrong").Return("", domain.ErrUnauthorized)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_me_anonymous(t *testing.T) {
	mockAuth := &MockAuthUseCase{}
	handler := NewAuthHandler(mockAuth, "session", 3600)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/me", nil)

	mockAuth.On("Whoami", c.Request.Context(), "").Return("", domain.ErrUnauthorized)

	handler.me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}
