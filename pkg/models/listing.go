package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingPending   ListingStatus = "PENDING"
	ListingPendingAI ListingStatus = "PENDING_AI"
	ListingActive    ListingStatus = "ACTIVE"
	ListingRejected  ListingStatus = "REJECTED"
	ListingSold      ListingStatus = "SOLD"
)

type ListingType string

const (
	ListingTrade ListingType = "TRADE"
	ListingSell  ListingType = "SELL"
	ListingBoth  ListingType = "BOTH"
)

type Condition string

const (
	ConditionNew  Condition = "novo"
	ConditionUsed Condition = "usado"
)

type Listing struct {
	ID                 string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID            string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	OwnerName          string         `json:"owner_name"`
	OwnerAvatar        string         `json:"owner_avatar"`
	OwnerRegion        string         `json:"owner_region"`
	OwnerVerified      bool           `gorm:"default:false" json:"owner_verified"`
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `json:"description"`
	TradeInterest      string         `json:"trade_interest"`
	Value              float64        `gorm:"not null" json:"value"`
	Type               ListingType    `gorm:"type:varchar(10);not null" json:"type"`
	Category           string         `gorm:"index" json:"category"`
	Condition          Condition      `gorm:"type:varchar(10)" json:"condition"`
	VideoURL           string         `json:"video_url"`
	ImageURL           string         `json:"image_url"`
	Status             ListingStatus  `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	ModerationReason   string         `json:"moderation_reason,omitempty"`
	IsHighlight        bool           `gorm:"default:false" json:"is_highlight"`
	HighlightExpires   *time.Time     `json:"highlight_expires,omitempty"`
	Likes              int            `gorm:"default:0" json:"likes"`
	Rating             float64        `gorm:"default:0" json:"rating"`
	Views              int            `gorm:"default:0" json:"views"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
