package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/usecase"
)

type NegotiationHandler struct {
	negotiationUseCase usecase.NegotiationUseCase
}

func NewNegotiationHandler(negotiationUseCase usecase.NegotiationUseCase) *NegotiationHandler {
	return &NegotiationHandler{
		negotiationUseCase: negotiationUseCase,
	}
}

type CreateProposalRequest struct {
	ListingID  string  `json:"listing_id" binding:"required"`
	Message    string  `json:"message"`
	OfferValue float64 `json:"offer_value"`
	OfferItems string  `json:"offer_items"`
	PaymentID  int64   `json:"payment_id"`
}

type SendMessageRequest struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	MediaURL string `json:"media_url"`
}

type ProposalResponse struct {
	Proposal *entity.Proposal `json:"proposal"`
	Contact  string           `json:"contact,omitempty"`
}

// CreateProposal godoc
// @Summary      Open a negotiation on a listing
// @Description  Free-plan users must reference an approved negotiation-fee payment; premium users skip the fee
// @Tags         negotiation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateProposalRequest true "Proposal data"
// @Success      201  {object}  entity.Proposal
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /proposals [post]
func (h *NegotiationHandler) CreateProposal(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.negotiationUseCase.CreateProposal(userID, usecase.CreateProposalInput{
		ListingID:  req.ListingID,
		Message:    req.Message,
		OfferValue: req.OfferValue,
		OfferItems: req.OfferItems,
		PaymentID:  req.PaymentID,
	})
	if err != nil {
		switch err.Error() {
		case "negotiation fee required":
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case "account is blocked", "cannot bid on your own listing":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "listing not found", "user not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "listing is not active":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// SentProposals godoc
// @Summary      List proposals the user has made
// @Tags         negotiation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /proposals/sent [get]
func (h *NegotiationHandler) SentProposals(c *gin.Context) {
	userID := c.GetString("user_id")

	proposals, err := h.negotiationUseCase.SentProposals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals, "count": len(proposals)})
}

// ReceivedProposals godoc
// @Summary      List proposals received on the user's listings
// @Tags         negotiation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /proposals/received [get]
func (h *NegotiationHandler) ReceivedProposals(c *gin.Context) {
	userID := c.GetString("user_id")

	proposals, err := h.negotiationUseCase.ReceivedProposals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals, "count": len(proposals)})
}

// GetProposal godoc
// @Summary      Get a proposal
// @Description  Returns the proposal and, once the deal is closed, the counterparty's contact
// @Tags         negotiation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Proposal ID"
// @Success      200  {object}  ProposalResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /proposals/{id} [get]
func (h *NegotiationHandler) GetProposal(c *gin.Context) {
	userID := c.GetString("user_id")

	proposal, contact, err := h.negotiationUseCase.GetProposal(c.Param("id"), userID)
	if err != nil {
		if err.Error() == "not a participant" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProposalResponse{Proposal: proposal, Contact: contact})
}

// CloseDeal godoc
// @Summary      Accept a proposal and close the deal
// @Description  Marks the proposal WON, the listing SOLD and every sibling proposal LOST in one transaction
// @Tags         negotiation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Proposal ID"
// @Success      200  {object}  entity.Proposal
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /proposals/{id}/close [post]
func (h *NegotiationHandler) CloseDeal(c *gin.Context) {
	userID := c.GetString("user_id")

	proposal, err := h.negotiationUseCase.CloseDeal(c.Param("id"), userID)
	if err != nil {
		switch err.Error() {
		case "not the listing owner":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "proposal not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "proposal already closed", "listing is no longer active":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  The message goes through the contact-sharing filter before being stored
// @Tags         negotiation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Proposal ID"
// @Param        request body SendMessageRequest true "Message"
// @Success      201  {object}  entity.ChatMessage
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /proposals/{id}/messages [post]
func (h *NegotiationHandler) SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.negotiationUseCase.SendMessage(c.Param("id"), userID, req.Text, entity.MessageType(req.Type), req.MediaURL)
	if err != nil {
		switch {
		case strings.HasPrefix(err.Error(), "message blocked"):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case err.Error() == "chat is closed", err.Error() == "not a participant", err.Error() == "account is blocked":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case err.Error() == "proposal not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages godoc
// @Summary      Get the chat history of a proposal
// @Tags         negotiation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Proposal ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /proposals/{id}/messages [get]
func (h *NegotiationHandler) GetMessages(c *gin.Context) {
	userID := c.GetString("user_id")

	messages, err := h.negotiationUseCase.GetMessages(c.Param("id"), userID)
	if err != nil {
		if err.Error() == "not a participant" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}
