package persistent

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/podium/internal/entity"
)

const tradeWeight = 5

type TraderRepository interface {
	TopTraders(limit int) ([]*entity.Trader, error)
}

type traderRepository struct {
	db *gorm.DB
}

func NewTraderRepository(db *gorm.DB) TraderRepository {
	return &traderRepository{db: db}
}

// TopTraders ranks active users by reputation plus completed trades. The
// score expression runs in SQL so ties break deterministically on user id.
func (r *traderRepository) TopTraders(limit int) ([]*entity.Trader, error) {
	var rows []struct {
		ID              string
		Name            string
		AvatarURL       string
		City            string
		State           string
		Reputation      int
		TradesCompleted int
	}

	err := r.db.Table("users").
		Select("id", "name", "avatar_url", "city", "state", "reputation", "trades_completed").
		Where("account_status = ?", "ACTIVE").
		Order(fmt.Sprintf("reputation + trades_completed * %d DESC, id ASC", tradeWeight)).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top traders: %w", err)
	}

	traders := make([]*entity.Trader, 0, len(rows))
	for _, row := range rows {
		traders = append(traders, &entity.Trader{
			UserID:          row.ID,
			Name:            row.Name,
			AvatarURL:       row.AvatarURL,
			City:            row.City,
			State:           row.State,
			Reputation:      row.Reputation,
			TradesCompleted: row.TradesCompleted,
			Score:           row.Reputation + row.TradesCompleted*tradeWeight,
		})
	}
	return traders, nil
}
