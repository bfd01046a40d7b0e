package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/elnathantransportes-ai/troca/services/podium/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/podium/internal/usecase"
)

type MockPodiumUseCase struct {
	mock.Mock
}

func (m *MockPodiumUseCase) GetPodium() (*entity.Podium, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Podium), args.Error(1)
}

var _ usecase.PodiumUseCase = (*MockPodiumUseCase)(nil)

func TestGetPodium_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockPodiumUseCase)
	handler := NewPodiumHandler(mockUseCase)

	router := gin.New()
	router.GET("/podium", handler.GetPodium)

	mockUseCase.On("GetPodium").Return(&entity.Podium{
		Traders: []*entity.Trader{
			{UserID: "u1", Name: "Maria", Reputation: 40, TradesCompleted: 8, Score: 80},
			{UserID: "u2", Name: "Joao", Reputation: 50, TradesCompleted: 2, Score: 60},
		},
		Rewards: []entity.Reward{
			{Position: 1, Kind: "PREMIUM_WEEK"},
			{Position: 2, Kind: "HIGHLIGHT", HighlightHours: 7},
			{Position: 3, Kind: "HIGHLIGHT", HighlightHours: 24},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/podium", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.Podium
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Traders, 2)
	assert.Equal(t, "u1", resp.Traders[0].UserID)
	assert.Len(t, resp.Rewards, 3)
	assert.Equal(t, 7, resp.Rewards[1].HighlightHours)
}

func TestGetPodium_RepositoryFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockPodiumUseCase)
	handler := NewPodiumHandler(mockUseCase)

	router := gin.New()
	router.GET("/podium", handler.GetPodium)

	mockUseCase.On("GetPodium").Return(nil, errors.New("failed to load leaderboard"))

	req := httptest.NewRequest(http.MethodGet, "/podium", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
