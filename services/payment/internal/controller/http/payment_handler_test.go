package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/elnathantransportes-ai/troca/pkg/store"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/usecase"
)

// MockPaymentUseCase is a mock implementation of PaymentUseCase
type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) StartPayment(ctx context.Context, userID string, purpose entity.Purpose, targetID string) (entity.FlowSnapshot, error) {
	args := m.Called(ctx, userID, purpose, targetID)
	return args.Get(0).(entity.FlowSnapshot), args.Error(1)
}

func (m *MockPaymentUseCase) FlowStatus(userID string) entity.FlowSnapshot {
	args := m.Called(userID)
	return args.Get(0).(entity.FlowSnapshot)
}

func (m *MockPaymentUseCase) Recheck(ctx context.Context, userID string) (entity.FlowSnapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.FlowSnapshot), args.Error(1)
}

func (m *MockPaymentUseCase) Cancel(ctx context.Context, userID string) entity.FlowSnapshot {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.FlowSnapshot)
}

func (m *MockPaymentUseCase) History(userID string) ([]*entity.Payment, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) Subscribe(l store.Listener) func() {
	args := m.Called(l)
	return args.Get(0).(func())
}

func (m *MockPaymentUseCase) Shutdown() {
	m.Called()
}

var _ usecase.PaymentUseCase = (*MockPaymentUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		h(c)
	}
}

func TestStartPayment_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments", asUser("user-1", handler.StartPayment))

	snap := entity.FlowSnapshot{
		State:     entity.FlowQRCode,
		Purpose:   entity.PurposeHighlight24h,
		GatewayID: 77,
		QRCode:    "pix-copy-paste",
		Amount:    4.90,
	}
	mockUseCase.On("StartPayment", mock.Anything, "user-1", entity.PurposeHighlight24h, "listing-9").
		Return(snap, nil)

	body, _ := json.Marshal(StartPaymentRequest{Purpose: "HIGHLIGHT_24H", TargetID: "listing-9"})
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.FlowSnapshot
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.FlowQRCode, resp.State)
	assert.Equal(t, int64(77), resp.GatewayID)
	mockUseCase.AssertExpectations(t)
}

func TestStartPayment_AlreadyInProgress(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments", asUser("user-1", handler.StartPayment))

	mockUseCase.On("StartPayment", mock.Anything, "user-1", entity.PurposeNegotiationFee, "").
		Return(entity.FlowSnapshot{State: entity.FlowQRCode}, errors.New("a payment is already in progress"))

	body, _ := json.Marshal(StartPaymentRequest{Purpose: "NEGOTIATION_FEE"})
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStartPayment_MissingPurpose(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments", asUser("user-1", handler.StartPayment))

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "StartPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecheck_NotYetConfirmed(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments/recheck", asUser("user-1", handler.Recheck))

	mockUseCase.On("Recheck", mock.Anything, "user-1").
		Return(entity.FlowSnapshot{State: entity.FlowQRCode}, errors.New("payment not yet confirmed"))

	req := httptest.NewRequest(http.MethodPost, "/payments/recheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "not yet confirmed")
}

func TestRecheck_NothingPending(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments/recheck", asUser("user-1", handler.Recheck))

	mockUseCase.On("Recheck", mock.Anything, "user-1").
		Return(entity.FlowSnapshot{State: entity.FlowNone}, errors.New("no payment awaiting confirmation"))

	req := httptest.NewRequest(http.MethodPost, "/payments/recheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancel_AlwaysReturnsCurrentFlow(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/payments/cancel", asUser("user-1", handler.Cancel))

	mockUseCase.On("Cancel", mock.Anything, "user-1").
		Return(entity.FlowSnapshot{State: entity.FlowNone})

	req := httptest.NewRequest(http.MethodPost, "/payments/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.FlowSnapshot
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.FlowNone, resp.State)
}

func TestHistory_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/payments/history", asUser("user-1", handler.History))

	mockUseCase.On("History", "user-1").Return([]*entity.Payment{
		{ID: "p1", GatewayID: 77, Purpose: entity.PurposeHighlight24h, Status: entity.StatusApproved},
		{ID: "p2", GatewayID: 78, Purpose: entity.PurposeNegotiationFee, Status: entity.StatusPending},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*entity.Payment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
