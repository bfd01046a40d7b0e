package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elnathantransportes-ai/troca/services/podium/internal/usecase"
)

type PodiumHandler struct {
	podiumUseCase usecase.PodiumUseCase
}

func NewPodiumHandler(podiumUseCase usecase.PodiumUseCase) *PodiumHandler {
	return &PodiumHandler{
		podiumUseCase: podiumUseCase,
	}
}

// GetPodium godoc
// @Summary      Weekly trader leaderboard
// @Description  Top traders by reputation and completed trades, with this week's podium rewards
// @Tags         podium
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Podium
// @Failure      500  {object}  map[string]string
// @Router       /podium [get]
func (h *PodiumHandler) GetPodium(c *gin.Context) {
	podium, err := h.podiumUseCase.GetPodium()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, podium)
}
