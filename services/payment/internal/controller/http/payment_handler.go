package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elnathantransportes-ai/troca/services/payment/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/usecase"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type StartPaymentRequest struct {
	Purpose  string `json:"purpose" binding:"required"`
	TargetID string `json:"target_id"`
}

// StartPayment godoc
// @Summary      Start a PIX checkout
// @Description  Creates one payment intent per user at a time; highlight purposes require the target listing id
// @Tags         payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartPaymentRequest true "Checkout data"
// @Success      201  {object}  entity.FlowSnapshot
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /payments [post]
func (h *PaymentHandler) StartPayment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.paymentUseCase.StartPayment(c.Request.Context(), userID, entity.Purpose(req.Purpose), req.TargetID)
	if err != nil {
		switch err.Error() {
		case "a payment is already in progress":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "flow": snap})
		case "unknown payment purpose", "user not found":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, snap)
}

// FlowStatus godoc
// @Summary      Current checkout state
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.FlowSnapshot
// @Router       /payments/status [get]
func (h *PaymentHandler) FlowStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, h.paymentUseCase.FlowStatus(userID))
}

// Recheck godoc
// @Summary      Ask the gateway for the payment status now
// @Description  Checks the pending intent once, outside the poll cadence; never creates a new intent
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.FlowSnapshot
// @Failure      402  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/recheck [post]
func (h *PaymentHandler) Recheck(c *gin.Context) {
	userID := c.GetString("user_id")

	snap, err := h.paymentUseCase.Recheck(c.Request.Context(), userID)
	if err != nil {
		switch err.Error() {
		case "payment not yet confirmed":
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error(), "flow": snap})
		case "no payment awaiting confirmation":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Cancel godoc
// @Summary      Abandon the current checkout
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.FlowSnapshot
// @Router       /payments/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, h.paymentUseCase.Cancel(c.Request.Context(), userID))
}

// History godoc
// @Summary      List the caller's payments
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Payment
// @Failure      500  {object}  map[string]string
// @Router       /payments/history [get]
func (h *PaymentHandler) History(c *gin.Context) {
	userID := c.GetString("user_id")

	payments, err := h.paymentUseCase.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payments)
}
