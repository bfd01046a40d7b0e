package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/usecase"
)

type MockAdminUseCase struct {
	mock.Mock
}

var _ usecase.AdminUseCase = (*MockAdminUseCase)(nil)

func (m *MockAdminUseCase) ModerationQueue() ([]*entity.PendingListing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PendingListing), args.Error(1)
}

func (m *MockAdminUseCase) ApproveListing(adminID, listingID string) error {
	args := m.Called(adminID, listingID)
	return args.Error(0)
}

func (m *MockAdminUseCase) RejectListing(adminID, listingID, reason string) error {
	args := m.Called(adminID, listingID, reason)
	return args.Error(0)
}

func (m *MockAdminUseCase) ForceDeleteListing(adminID, listingID string) error {
	args := m.Called(adminID, listingID)
	return args.Error(0)
}

func (m *MockAdminUseCase) ListUsers() ([]*entity.ManagedUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ManagedUser), args.Error(1)
}

func (m *MockAdminUseCase) BlockUser(adminID, userID, reason string) error {
	args := m.Called(adminID, userID, reason)
	return args.Error(0)
}

func (m *MockAdminUseCase) UnblockUser(adminID, userID string) error {
	args := m.Called(adminID, userID)
	return args.Error(0)
}

func (m *MockAdminUseCase) ReviewDocument(adminID, userID string, approve bool, reason string) error {
	args := m.Called(adminID, userID, approve, reason)
	return args.Error(0)
}

func (m *MockAdminUseCase) DeleteUser(adminID, userID string) error {
	args := m.Called(adminID, userID)
	return args.Error(0)
}

func (m *MockAdminUseCase) RecentLogs(limit int) ([]*entity.AdminLog, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AdminLog), args.Error(1)
}

func (m *MockAdminUseCase) RequestReset(adminID string) (string, error) {
	args := m.Called(adminID)
	return args.String(0), args.Error(1)
}

func (m *MockAdminUseCase) ConfirmReset(adminID, token string) error {
	args := m.Called(adminID, token)
	return args.Error(0)
}

func setupAdminRouter(handler *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "admin-1")
		c.Set("user_role", "ADMIN")
	})

	router.GET("/admin/moderation", handler.ModerationQueue)
	router.POST("/admin/listings/:id/approve", handler.ApproveListing)
	router.POST("/admin/listings/:id/reject", handler.RejectListing)
	router.DELETE("/admin/listings/:id", handler.DeleteListing)
	router.DELETE("/admin/users/:id", handler.DeleteUser)
	router.POST("/admin/reset/confirm", handler.ConfirmReset)
	return router
}

func TestModerationQueue_ReturnsPendingListings(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	mockUseCase.On("ModerationQueue").Return([]*entity.PendingListing{
		{ID: "l1", Status: "PENDING", Title: "Bicicleta aro 29"},
		{ID: "l2", Status: "PENDING_AI", Title: "Violao eletrico"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*entity.PendingListing
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestRejectListing_MissingReason(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	req := httptest.NewRequest(http.MethodPost, "/admin/listings/l1/reject", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "RejectListing", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteListing_RequiresConfirmationEcho(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	body, _ := json.Marshal(ConfirmRequest{Confirm: "some-other-id"})
	req := httptest.NewRequest(http.MethodDelete, "/admin/listings/l1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "ForceDeleteListing", mock.Anything, mock.Anything)
}

func TestDeleteListing_ConfirmedEchoDeletes(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	mockUseCase.On("ForceDeleteListing", "admin-1", "l1").Return(nil)

	body, _ := json.Marshal(ConfirmRequest{Confirm: "l1"})
	req := httptest.NewRequest(http.MethodDelete, "/admin/listings/l1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUser_RequiresConfirmationEcho(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestConfirmReset_InvalidTokenForbidden(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	router := setupAdminRouter(NewAdminHandler(mockUseCase))

	mockUseCase.On("ConfirmReset", "admin-1", "stale-token").
		Return(errors.New("invalid or expired reset token"))

	body, _ := json.Marshal(ConfirmResetRequest{Token: "stale-token"})
	req := httptest.NewRequest(http.MethodPost, "/admin/reset/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
