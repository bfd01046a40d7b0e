package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elnathantransportes-ai/troca/services/admin/internal/usecase"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ConfirmRequest struct {
	Confirm string `json:"confirm" binding:"required"`
}

type BlockUserRequest struct {
	Reason string `json:"reason"`
}

type ReviewDocumentRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

type ConfirmResetRequest struct {
	Token string `json:"token" binding:"required"`
}

// ModerationQueue godoc
// @Summary      Listings awaiting review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.PendingListing
// @Failure      500  {object}  map[string]string
// @Router       /admin/moderation [get]
func (h *AdminHandler) ModerationQueue(c *gin.Context) {
	listings, err := h.adminUseCase.ModerationQueue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ApproveListing godoc
// @Summary      Approve a pending listing
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/listings/{id}/approve [post]
func (h *AdminHandler) ApproveListing(c *gin.Context) {
	adminID := c.GetString("user_id")

	if err := h.adminUseCase.ApproveListing(adminID, c.Param("id")); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectListing godoc
// @Summary      Reject a pending listing with a reason
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body RejectListingRequest true "Rejection reason"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/listings/{id}/reject [post]
func (h *AdminHandler) RejectListing(c *gin.Context) {
	adminID := c.GetString("user_id")

	var req RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminUseCase.RejectListing(adminID, c.Param("id"), req.Reason); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// DeleteListing godoc
// @Summary      Force-delete a listing and its media
// @Description  The request body must echo the listing id in "confirm"
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body ConfirmRequest true "Confirmation echo"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/listings/{id} [delete]
func (h *AdminHandler) DeleteListing(c *gin.Context) {
	adminID := c.GetString("user_id")
	listingID := c.Param("id")

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != listingID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation must echo the listing id"})
		return
	}

	if err := h.adminUseCase.ForceDeleteListing(adminID, listingID); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListUsers godoc
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.ManagedUser
// @Failure      500  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUseCase.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// BlockUser godoc
// @Summary      Block an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body BlockUserRequest false "Block reason"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c *gin.Context) {
	adminID := c.GetString("user_id")

	var req BlockUserRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.adminUseCase.BlockUser(adminID, c.Param("id"), req.Reason); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "blocked"})
}

// UnblockUser godoc
// @Summary      Unblock an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	adminID := c.GetString("user_id")

	if err := h.adminUseCase.UnblockUser(adminID, c.Param("id")); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}

// ReviewDocument godoc
// @Summary      Approve or reject an identity document
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body ReviewDocumentRequest true "Review decision"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/document [post]
func (h *AdminHandler) ReviewDocument(c *gin.Context) {
	adminID := c.GetString("user_id")

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminUseCase.ReviewDocument(adminID, c.Param("id"), req.Approve, req.Reason); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reviewed"})
}

// DeleteUser godoc
// @Summary      Delete an account and its listings
// @Description  The request body must echo the user id in "confirm"; proposals and chat history are preserved
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body ConfirmRequest true "Confirmation echo"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID := c.GetString("user_id")
	userID := c.Param("id")

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation must echo the user id"})
		return
	}

	if err := h.adminUseCase.DeleteUser(adminID, userID); err != nil {
		h.respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RecentLogs godoc
// @Summary      Recent admin actions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max entries" default(50)
// @Success      200  {array}   entity.AdminLog
// @Failure      500  {object}  map[string]string
// @Router       /admin/logs [get]
func (h *AdminHandler) RecentLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.adminUseCase.RecentLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RequestReset godoc
// @Summary      Issue a system reset token
// @Description  First step of the double confirmation; the token expires in two minutes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/reset [post]
func (h *AdminHandler) RequestReset(c *gin.Context) {
	adminID := c.GetString("user_id")

	token, err := h.adminUseCase.RequestReset(adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ConfirmReset godoc
// @Summary      Execute the system reset
// @Description  Second step; requires the token issued to the same admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ConfirmResetRequest true "Reset token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/reset/confirm [post]
func (h *AdminHandler) ConfirmReset(c *gin.Context) {
	adminID := c.GetString("user_id")

	var req ConfirmResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminUseCase.ConfirmReset(adminID, req.Token); err != nil {
		if err.Error() == "invalid or expired reset token" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *AdminHandler) respondActionError(c *gin.Context, err error) {
	switch err.Error() {
	case "listing not found", "user not found":
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "rejection reason is required":
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case "cannot block your own account", "cannot delete your own account":
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
