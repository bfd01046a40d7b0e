package entity

import "time"

type ListingStatus string

const (
	StatusPending   ListingStatus = "PENDING"
	StatusPendingAI ListingStatus = "PENDING_AI"
	StatusActive    ListingStatus = "ACTIVE"
	StatusRejected  ListingStatus = "REJECTED"
	StatusSold      ListingStatus = "SOLD"
)

type ListingType string

const (
	TypeTrade ListingType = "TRADE"
	TypeSell  ListingType = "SELL"
	TypeBoth  ListingType = "BOTH"
)

type Condition string

const (
	ConditionNew  Condition = "novo"
	ConditionUsed Condition = "usado"
)

type Listing struct {
	ID               string        `json:"id"`
	OwnerID          string        `json:"owner_id"`
	OwnerName        string        `json:"owner_name"`
	OwnerAvatar      string        `json:"owner_avatar"`
	OwnerRegion      string        `json:"owner_region"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	TradeInterest    string        `json:"trade_interest"`
	Value            float64       `json:"value"`
	Category         string        `json:"category"`
	Condition        Condition     `json:"condition"`
	Type             ListingType   `json:"type"`
	VideoURL         string        `json:"video_url"`
	ImageURL         string        `json:"image_url"`
	Status           ListingStatus `json:"status"`
	ModerationReason string        `json:"moderation_reason,omitempty"`
	IsHighlight      bool          `json:"is_highlight"`
	HighlightExpires *time.Time    `json:"highlight_expires,omitempty"`
	Likes            int           `json:"likes"`
	Rating           float64       `json:"rating"`
	Views            int           `json:"views"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// FeedFilters are the structural filters a viewer can pin. All of them are
// combined with AND; zero values mean "no constraint".
type FeedFilters struct {
	Type      ListingType `json:"type,omitempty"`
	Condition Condition   `json:"condition,omitempty"`
	Category  string      `json:"category,omitempty"`
	Region    string      `json:"region,omitempty"`
	MinPrice  *float64    `json:"min_price,omitempty"`
	MaxPrice  *float64    `json:"max_price,omitempty"`
}

func (f FeedFilters) IsZero() bool {
	return f.Type == "" && f.Condition == "" && f.Category == "" &&
		f.Region == "" && f.MinPrice == nil && f.MaxPrice == nil
}

type FeedPage struct {
	Items   []*Listing `json:"items"`
	HasMore bool       `json:"has_more"`
	Total   int        `json:"total"`
}
