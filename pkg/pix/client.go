// Package pix wraps the PIX payment REST gateway. The gateway fails CLOSED:
// any transport or API error surfaces to the caller and the gated action
// stays blocked, unlike the moderation client which fails open.
package pix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var ErrInvalidCPF = fmt.Errorf("invalid CPF: a valid 11-digit tax id is required for PIX")

type Payer struct {
	Email string
	Name  string
	CPF   string
}

// Payment is the gateway's view of one PIX intent. QRCode is the copy-paste
// payload; QRCodeBase64 is the rendered PNG when the gateway provides one.
type Payment struct {
	ID           int64
	QRCode       string
	QRCodeBase64 string
	Status       string
}

type Gateway interface {
	CreatePayment(ctx context.Context, amount float64, description string, payer Payer) (*Payment, error)
	GetStatus(ctx context.Context, paymentID int64) (string, error)
}

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

var nonDigits = regexp.MustCompile(`\D`)

// SanitizeCPF strips formatting and validates length locally, so a malformed
// tax id never reaches the gateway (which would reject it anyway).
func SanitizeCPF(cpf string) (string, error) {
	clean := nonDigits.ReplaceAllString(cpf, "")
	if len(clean) != 11 {
		return "", ErrInvalidCPF
	}
	return clean, nil
}

type createPaymentRequest struct {
	TransactionAmount float64       `json:"transaction_amount"`
	Description       string        `json:"description"`
	PaymentMethodID   string        `json:"payment_method_id"`
	Payer             paymentPayer  `json:"payer"`
}

type paymentPayer struct {
	Email          string               `json:"email"`
	FirstName      string               `json:"first_name"`
	LastName       string               `json:"last_name"`
	Identification payerIdentification  `json:"identification"`
}

type payerIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type paymentResponse struct {
	ID                 int64  `json:"id"`
	Status             string `json:"status"`
	Message            string `json:"message"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

func (c *Client) CreatePayment(ctx context.Context, amount float64, description string, payer Payer) (*Payment, error) {
	cpf, err := SanitizeCPF(payer.CPF)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(payer.Email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid payer email")
	}

	names := strings.Fields(payer.Name)
	firstName := "Usuario"
	lastName := "App"
	if len(names) > 0 {
		firstName = names[0]
	}
	if len(names) > 1 {
		lastName = strings.Join(names[1:], " ")
	}

	if len(description) > 60 {
		description = description[:60]
	}

	reqBody := createPaymentRequest{
		TransactionAmount: amount,
		Description:       description,
		PaymentMethodID:   "pix",
		Payer: paymentPayer{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Identification: payerIdentification{
				Type:   "CPF",
				Number: cpf,
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var data paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if strings.Contains(data.Message, "identification") {
			return nil, ErrInvalidCPF
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("payment gateway rejected access token")
		}
		return nil, fmt.Errorf("payment gateway error: %s", data.Message)
	}

	return &Payment{
		ID:           data.ID,
		QRCode:       data.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: data.PointOfInteraction.TransactionData.QRCodeBase64,
		Status:       data.Status,
	}, nil
}

// GetStatus reports the remote payment status. A transport failure reads as
// "pending" so pollers simply retry on the next tick; it never reads as
// approved.
func (c *Client) GetStatus(ctx context.Context, paymentID int64) (string, error) {
	url := fmt.Sprintf("%s/v1/payments/%d", c.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusPending, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusPending, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusPending, nil
	}

	var data paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return StatusPending, fmt.Errorf("failed to decode status response: %w", err)
	}

	return data.Status, nil
}

var _ Gateway = (*Client)(nil)
