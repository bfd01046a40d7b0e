package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminLogModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	AdminID    string    `gorm:"type:varchar(36);index;not null" json:"admin_id"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	TargetType string    `gorm:"type:varchar(20)" json:"target_type"`
	TargetID   string    `gorm:"type:varchar(36);index" json:"target_id"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AdminLogModel) TableName() string {
	return "admin_logs"
}

func (m *AdminLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
