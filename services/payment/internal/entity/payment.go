package entity

import "time"

type Purpose string

const (
	PurposeNegotiationFee Purpose = "NEGOTIATION_FEE"
	PurposeHighlight24h   Purpose = "HIGHLIGHT_24H"
	PurposeHighlight7d    Purpose = "HIGHLIGHT_7D"
	PurposePremiumSub     Purpose = "PREMIUM_SUB"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusApproved  PaymentStatus = "approved"
	StatusRejected  PaymentStatus = "rejected"
	StatusCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	ID        string        `json:"id"`
	GatewayID int64         `json:"gateway_id"`
	UserID    string        `json:"user_id"`
	Purpose   Purpose       `json:"purpose"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	TargetID  string        `json:"target_id,omitempty"`
	Consumed  bool          `json:"consumed"`
	CreatedAt time.Time     `json:"created_at"`
}

// FlowState tracks where a user's checkout currently is. NONE is both the
// idle state and the state after a cancel.
type FlowState string

const (
	FlowNone       FlowState = "NONE"
	FlowProcessing FlowState = "PROCESSING"
	FlowQRCode     FlowState = "QRCODE"
	FlowSuccess    FlowState = "SUCCESS"
)

// FlowSnapshot is what handlers and pollers see; it is a copy, never shared
// mutable state.
type FlowSnapshot struct {
	State        FlowState `json:"state"`
	Purpose      Purpose   `json:"purpose,omitempty"`
	GatewayID    int64     `json:"gateway_id,omitempty"`
	QRCode       string    `json:"qr_code,omitempty"`
	QRCodeBase64 string    `json:"qr_code_base64,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	StartedAt    time.Time `json:"started_at,omitempty"`
}
