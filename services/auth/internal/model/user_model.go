package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	CPF              string         `gorm:"type:varchar(11)" json:"cpf"`
	Whatsapp         string         `gorm:"type:varchar(20)" json:"whatsapp"`
	City             string         `gorm:"type:varchar(100)" json:"city"`
	State            string         `gorm:"type:varchar(2)" json:"state"`
	AvatarURL        string         `gorm:"type:varchar(500)" json:"avatar_url"`
	Role             string         `gorm:"type:varchar(20);default:'USER'" json:"role"`
	Plan             string         `gorm:"type:varchar(20);default:'FREE'" json:"plan"`
	PlanStartedAt    *time.Time     `json:"plan_started_at"`
	AccountStatus    string         `gorm:"type:varchar(20);default:'ACTIVE'" json:"account_status"`
	DocumentStatus   string         `gorm:"type:varchar(20);default:'NOT_SENT'" json:"document_status"`
	Verified         bool           `gorm:"default:false" json:"verified"`
	Reputation       int            `gorm:"default:0" json:"reputation"`
	TradesCompleted  int            `gorm:"default:0" json:"trades_completed"`
	SeenTutorial     bool           `gorm:"default:false" json:"seen_tutorial"`
	RecoveryCode     string         `gorm:"type:varchar(6)" json:"-"`
	RecoveryExpires  *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type PaymentModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	GatewayID int64     `gorm:"index" json:"gateway_id"`
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
