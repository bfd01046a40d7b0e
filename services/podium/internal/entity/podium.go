package entity

// Trader is one leaderboard row. Score is derived, never stored.
type Trader struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Reputation      int    `json:"reputation"`
	TradesCompleted int    `json:"trades_completed"`
	Score           int    `json:"score"`
}

// Reward describes what a podium position grants for the week.
type Reward struct {
	Position    int    `json:"position"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	// HighlightHours is zero for non-highlight rewards.
	HighlightHours int `json:"highlight_hours,omitempty"`
}

type Podium struct {
	Traders []*Trader `json:"traders"`
	Rewards []Reward  `json:"rewards"`
}
