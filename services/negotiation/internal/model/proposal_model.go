package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalModel struct {
	ID              string     `gorm:"type:uuid;primary_key" json:"id"`
	ListingID       string     `gorm:"type:uuid;index;not null" json:"listing_id"`
	ListingTitle    string     `gorm:"type:varchar(120)" json:"listing_title"`
	OwnerID         string     `gorm:"type:uuid;index;not null" json:"owner_id"`
	BidderID        string     `gorm:"type:uuid;index;not null" json:"bidder_id"`
	BidderName      string     `gorm:"type:varchar(100)" json:"bidder_name"`
	Message         string     `gorm:"type:text" json:"message"`
	OfferValue      float64    `gorm:"default:0" json:"offer_value"`
	OfferItems      string     `gorm:"type:text" json:"offer_items"`
	Status          string     `gorm:"type:varchar(10);index;default:'OPEN'" json:"status"`
	ContactUnlocked bool       `gorm:"default:false" json:"contact_unlocked"`
	PaymentID       int64      `gorm:"default:0" json:"payment_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastMessageAt   *time.Time `json:"last_message_at"`
}

func (ProposalModel) TableName() string {
	return "proposals"
}

func (p *ProposalModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type ChatMessageModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	ProposalID string    `gorm:"type:uuid;index;not null" json:"proposal_id"`
	SenderID   string    `gorm:"type:uuid;not null" json:"sender_id"`
	Text       string    `gorm:"type:text" json:"text"`
	Type       string    `gorm:"type:varchar(10);default:'text'" json:"type"`
	MediaURL   string    `gorm:"type:varchar(500)" json:"media_url"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

func (m *ChatMessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
