package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentPurpose string

const (
	PurposeNegotiationFee PaymentPurpose = "NEGOTIATION_FEE"
	PurposeHighlight24h   PaymentPurpose = "HIGHLIGHT_24H"
	PurposeHighlight7d    PaymentPurpose = "HIGHLIGHT_7D"
	PurposePremiumSub     PaymentPurpose = "PREMIUM_SUB"
	PurposeUnlockContact  PaymentPurpose = "UNLOCK_CONTACT"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentApproved  PaymentStatus = "approved"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment records one PIX intent created at the gateway. GatewayID is the
// remote payment id used for status polling.
type Payment struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	GatewayID int64          `gorm:"uniqueIndex;not null" json:"gateway_id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Purpose   PaymentPurpose `gorm:"type:varchar(20);not null" json:"purpose"`
	Amount    float64        `gorm:"not null" json:"amount"`
	Status    PaymentStatus  `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	TargetID  string         `gorm:"index" json:"target_id,omitempty"`
	Consumed  bool           `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type AdminLog struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	AdminID    string    `gorm:"type:uuid;not null;index" json:"admin_id"`
	Action     string    `gorm:"not null" json:"action"`
	TargetType string    `gorm:"type:varchar(20)" json:"target_type"`
	TargetID   string    `gorm:"index" json:"target_id"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
