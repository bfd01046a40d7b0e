package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleAdmin     UserRole = "ADMIN"
	RoleOperator  UserRole = "OPERATOR"
	RoleFinancial UserRole = "FINANCEIRO"
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
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Password        string         `json:"-"`
	CPF             string         `json:"cpf,omitempty"`
	Whatsapp        string         `json:"whatsapp,omitempty"`
	City            string         `json:"city"`
	State           string         `json:"state"`
	AvatarURL       string         `json:"avatar_url"`
	Role            UserRole       `json:"role"`
	Plan            UserPlan       `json:"plan"`
	PlanStartedAt   *time.Time     `json:"plan_started_at,omitempty"`
	AccountStatus   AccountStatus  `json:"account_status"`
	DocumentStatus  DocumentStatus `json:"document_status"`
	Verified        bool           `json:"verified"`
	Reputation      int            `json:"reputation"`
	TradesCompleted int            `json:"trades_completed"`
	SeenTutorial    bool           `json:"seen_tutorial"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Region is the string matched against a viewer's city when ranking listings.
func (u *User) Region() string {
	if u.City == "" && u.State == "" {
		return ""
	}
	return u.City + " - " + u.State
}

func (u *User) IsBlocked() bool {
	return u.AccountStatus == AccountBlocked
}
