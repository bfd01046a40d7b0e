package entity

import "time"

// AdminLog records one operator action for audit.
type AdminLog struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PendingListing is a moderation-queue row: enough to review, not the full
// listing document.
type PendingListing struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	VideoURL    string    `json:"video_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ManagedUser struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Plan            string    `json:"plan"`
	AccountStatus   string    `json:"account_status"`
	DocumentStatus  string    `json:"document_status"`
	DocumentURL     string    `json:"document_url,omitempty"`
	TradesCompleted int       `json:"trades_completed"`
	CreatedAt       time.Time `json:"created_at"`
}
