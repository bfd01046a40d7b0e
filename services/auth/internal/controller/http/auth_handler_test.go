package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/elnathantransportes-ai/troca/services/auth/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/usecase"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(name, email, password, cpf, city, state string) (*entity.User, string, error) {
	args := m.Called(name, email, password, cpf, city, state)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UpdateProfile(userID string, update usecase.ProfileUpdate) (*entity.User, error) {
	args := m.Called(userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	args := m.Called(userID, fileReader, fileKey, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UploadDocument(ctx context.Context, userID string, imageData []byte, fileKey string) (*entity.User, error) {
	args := m.Called(ctx, userID, imageData, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) RequestPasswordReset(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthUseCase) ResetPassword(email, code, newPassword string) error {
	args := m.Called(email, code, newPassword)
	return args.Error(0)
}

func (m *MockAuthUseCase) ActivatePremium(userID string, paymentID int64) (*entity.User, error) {
	args := m.Called(userID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	user := &entity.User{ID: "user-123", Name: "Maria", Email: "maria@example.com", City: "Curitiba", State: "PR"}
	mockUseCase.On("Register", "Maria", "maria@example.com", "secret1", "", "Curitiba", "PR").
		Return(user, "token-abc", nil)

	body, _ := json.Marshal(RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "secret1",
		City:     "Curitiba",
		State:    "PR",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.Token)
	assert.Equal(t, "user-123", resp.User.ID)
	mockUseCase.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", "Maria", "maria@example.com", "secret1", "", "Curitiba", "PR").
		Return(nil, "", errors.New("user with this email already exists"))

	body, _ := json.Marshal(RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "secret1",
		City:     "Curitiba",
		State:    "PR",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_BlockedAccount(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", "bad@example.com", "secret1").
		Return(nil, "", errors.New("account is blocked"))

	body, _ := json.Marshal(LoginRequest{Email: "bad@example.com", Password: "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", "maria@example.com", "wrong").
		Return(nil, "", errors.New("invalid credentials"))

	body, _ := json.Marshal(LoginRequest{Email: "maria@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/me", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.Me(c)
	})

	user := &entity.User{ID: "user-123", Name: "Maria", Plan: entity.PlanPremium}
	mockUseCase.On("GetUser", "user-123").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.PlanPremium, resp.Plan)
}

func TestActivatePremium_PaymentNotConfirmed(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/premium/activate", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ActivatePremium(c)
	})

	mockUseCase.On("ActivatePremium", "user-123", int64(987)).
		Return(nil, errors.New("payment not confirmed"))

	body, _ := json.Marshal(ActivatePremiumRequest{PaymentID: 987})
	req := httptest.NewRequest(http.MethodPost, "/premium/activate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/recovery/reset", handler.ResetPassword)

	mockUseCase.On("ResetPassword", "maria@example.com", "123456", "newpass1").
		Return(errors.New("recovery code expired"))

	body, _ := json.Marshal(ResetPasswordRequest{
		Email:       "maria@example.com",
		Code:        "123456",
		NewPassword: "newpass1",
	})
	req := httptest.NewRequest(http.MethodPost, "/recovery/reset", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
