package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingModel struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string         `gorm:"type:uuid;index;not null" json:"owner_id"`
	OwnerName        string         `gorm:"type:varchar(100)" json:"owner_name"`
	OwnerAvatar      string         `gorm:"type:varchar(500)" json:"owner_avatar"`
	OwnerRegion      string         `gorm:"type:varchar(120)" json:"owner_region"`
	Title            string         `gorm:"type:varchar(120);not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	TradeInterest    string         `gorm:"type:text" json:"trade_interest"`
	Value            float64        `gorm:"default:0" json:"value"`
	Category         string         `gorm:"type:varchar(50);index" json:"category"`
	Condition        string         `gorm:"type:varchar(10)" json:"condition"`
	Type             string         `gorm:"type:varchar(10);default:'TRADE'" json:"type"`
	VideoURL         string         `gorm:"type:varchar(500)" json:"video_url"`
	ImageURL         string         `gorm:"type:varchar(500)" json:"image_url"`
	Status           string         `gorm:"type:varchar(20);index;default:'PENDING'" json:"status"`
	ModerationReason string         `gorm:"type:text" json:"moderation_reason"`
	IsHighlight      bool           `gorm:"default:false" json:"is_highlight"`
	HighlightExpires *time.Time     `json:"highlight_expires"`
	Likes            int            `gorm:"default:0" json:"likes"`
	Rating           float64        `gorm:"default:0" json:"rating"`
	Views            int            `gorm:"default:0" json:"views"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ListingModel) TableName() string {
	return "listings"
}

func (l *ListingModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
