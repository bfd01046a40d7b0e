package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	GatewayID int64     `gorm:"index;not null" json:"gateway_id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Purpose   string    `gorm:"type:varchar(30);not null" json:"purpose"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Status    string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TargetID  string    `gorm:"type:uuid" json:"target_id"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
