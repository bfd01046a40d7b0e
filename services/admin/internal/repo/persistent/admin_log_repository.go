package persistent

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/model"
)

type AdminLogRepository interface {
	Create(log *entity.AdminLog) error
	Recent(limit int) ([]*entity.AdminLog, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(log *entity.AdminLog) error {
	m := &model.AdminLogModel{
		ID:         log.ID,
		AdminID:    log.AdminID,
		Action:     log.Action,
		TargetType: log.TargetType,
		TargetID:   log.TargetID,
		Reason:     log.Reason,
	}
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create admin log: %w", err)
	}

	log.ID = m.ID
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *adminLogRepository) Recent(limit int) ([]*entity.AdminLog, error) {
	var rows []model.AdminLogModel
	err := r.db.Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load admin logs: %w", err)
	}

	logs := make([]*entity.AdminLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, &entity.AdminLog{
			ID:         row.ID,
			AdminID:    row.AdminID,
			Action:     row.Action,
			TargetType: row.TargetType,
			TargetID:   row.TargetID,
			Reason:     row.Reason,
			CreatedAt:  row.CreatedAt,
		})
	}
	return logs, nil
}
