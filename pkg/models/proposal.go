package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalOpen ProposalStatus = "OPEN"
	ProposalWon  ProposalStatus = "WON"
	ProposalLost ProposalStatus = "LOST"
)

type Proposal struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	ListingID       string         `gorm:"type:uuid;not null;index" json:"listing_id"`
	ListingTitle    string         `json:"listing_title"`
	OwnerID         string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	BidderID        string         `gorm:"type:uuid;not null;index" json:"bidder_id"`
	BidderName      string         `json:"bidder_name"`
	Message         string         `json:"message"`
	OfferValue      float64        `json:"offer_value,omitempty"`
	OfferItems      string         `json:"offer_items,omitempty"`
	Status          ProposalStatus `gorm:"type:varchar(10);default:'OPEN';index" json:"status"`
	ContactUnlocked bool           `gorm:"default:false" json:"contact_unlocked"`
	PaymentID       int64          `gorm:"default:0" json:"payment_id"`
	CreatedAt       time.Time      `json:"created_at"`
	LastMessageAt   *time.Time     `json:"last_message_at,omitempty"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

type ChatMessage struct {
	ID         string      `gorm:"type:uuid;primary_key" json:"id"`
	ProposalID string      `gorm:"type:uuid;not null;index" json:"proposal_id"`
	SenderID   string      `gorm:"type:uuid;not null" json:"sender_id"`
	Text       string      `gorm:"not null" json:"text"`
	Type       MessageType `gorm:"type:varchar(10);default:'text'" json:"type"`
	MediaURL   string      `json:"media_url,omitempty"`
	Read       bool        `gorm:"default:false" json:"read"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
