package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser     UserRole = "USER"
	RoleAdmin    UserRole = "ADMIN"
	RoleOperator UserRole = "OPERATOR"
	RoleFinance  UserRole = "FINANCEIRO"
)

type UserPlan string

const (
	PlanFree    UserPlan = "FREE"
	PlanPremium UserPlan = "PREMIUM"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountBlocked   AccountStatus = "BLOCKED"
	AccountSuspended AccountStatus = "SUSPENDED"
)

type DocumentStatus string

const (
	DocumentNotSent  DocumentStatus = "NOT_SENT"
	DocumentPending  DocumentStatus = "PENDING"
	DocumentVerified DocumentStatus = "VERIFIED"
	DocumentRejected DocumentStatus = "REJECTED"
)

type User struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	CPF             string         `gorm:"column:cpf" json:"cpf,omitempty"`
	Whatsapp        string         `json:"whatsapp,omitempty"`
	City            string         `json:"city"`
	State           string         `json:"state"`
	AvatarURL       string         `json:"avatar_url"`
	Role            UserRole       `gorm:"type:varchar(20);default:'USER'" json:"role"`
	Plan            UserPlan       `gorm:"type:varchar(20);default:'FREE'" json:"plan"`
	PlanStartedAt   *time.Time     `json:"plan_started_at,omitempty"`
	AccountStatus   AccountStatus  `gorm:"type:varchar(20);default:'ACTIVE'" json:"account_status"`
	DocumentStatus  DocumentStatus `gorm:"type:varchar(20);default:'NOT_SENT'" json:"document_status"`
	DocumentURL     string         `json:"-"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	Reputation      int            `gorm:"default:0" json:"reputation"`
	TradesCompleted int            `gorm:"default:0" json:"trades_completed"`
	RecoveryCode    string         `json:"-"`
	RecoveryExpires *time.Time     `json:"-"`
	SeenTutorial    bool           `gorm:"default:false" json:"seen_tutorial"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Region is the "city - state" string listings carry for locality ranking.
func (u *User) Region() string {
	return u.City + " - " + u.State
}
