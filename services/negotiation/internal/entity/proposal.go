package entity

import "time"

type ProposalStatus string

const (
	ProposalOpen ProposalStatus = "OPEN"
	ProposalWon  ProposalStatus = "WON"
	ProposalLost ProposalStatus = "LOST"
)

// IsTerminal reports whether the status can never transition again.
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalWon || s == ProposalLost
}

type Proposal struct {
	ID              string         `json:"id"`
	ListingID       string         `json:"listing_id"`
	ListingTitle    string         `json:"listing_title"`
	OwnerID         string         `json:"owner_id"`
	BidderID        string         `json:"bidder_id"`
	BidderName      string         `json:"bidder_name"`
	Message         string         `json:"message"`
	OfferValue      float64        `json:"offer_value"`
	OfferItems      string         `json:"offer_items"`
	Status          ProposalStatus `json:"status"`
	ContactUnlocked bool           `json:"contact_unlocked"`
	PaymentID       int64          `json:"payment_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	LastMessageAt   *time.Time     `json:"last_message_at,omitempty"`
}

// CanChat reports whether the given user may still write into this
// negotiation. Losing bidders keep read access only.
func (p *Proposal) CanChat(userID string) bool {
	if userID != p.OwnerID && userID != p.BidderID {
		return false
	}
	return p.Status != ProposalLost
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

type ChatMessage struct {
	ID         string      `json:"id"`
	ProposalID string      `json:"proposal_id"`
	SenderID   string      `json:"sender_id"`
	Text       string      `json:"text"`
	Type       MessageType `json:"type"`
	MediaURL   string      `json:"media_url,omitempty"`
	Read       bool        `json:"read"`
	CreatedAt  time.Time   `json:"created_at"`
}
