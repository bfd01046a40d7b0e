package usecase

import (
	"fmt"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/services/podium/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/podium/internal/repo/persistent"
)

const podiumSize = 10

type PodiumUseCase interface {
	GetPodium() (*entity.Podium, error)
}

type podiumUseCase struct {
	traderRepo persistent.TraderRepository
	logger     *logger.Logger
}

func NewPodiumUseCase(traderRepo persistent.TraderRepository, logger *logger.Logger) PodiumUseCase {
	return &podiumUseCase{
		traderRepo: traderRepo,
		logger:     logger,
	}
}

// weeklyRewards lists what the top three positions earn. Rewards are
// announced here; granting them is an operator action on the admin surface.
func weeklyRewards() []entity.Reward {
	return []entity.Reward{
		{Position: 1, Kind: "PREMIUM_WEEK", Description: "Uma semana de plano premium"},
		{Position: 2, Kind: "HIGHLIGHT", Description: "Destaque de 7 horas em um anuncio", HighlightHours: 7},
		{Position: 3, Kind: "HIGHLIGHT", Description: "Destaque de 24 horas em um anuncio", HighlightHours: 24},
	}
}

func (uc *podiumUseCase) GetPodium() (*entity.Podium, error) {
	traders, err := uc.traderRepo.TopTraders(podiumSize)
	if err != nil {
		uc.logger.Error("podium: load leaderboard: %v", err)
		return nil, fmt.Errorf("failed to load leaderboard")
	}

	return &entity.Podium{
		Traders: traders,
		Rewards: weeklyRewards(),
	}, nil
}
