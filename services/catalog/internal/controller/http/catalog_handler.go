package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/usecase"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

type UpdateListingRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	TradeInterest *string  `json:"trade_interest"`
	Value         *float64 `json:"value"`
	Category      *string  `json:"category"`
}

type ImproveCopyRequest struct {
	Title         string `json:"title" binding:"required"`
	TradeInterest string `json:"trade_interest"`
	Draft         string `json:"draft" binding:"required"`
}

// CreateListing godoc
// @Summary      Publish a new listing
// @Description  Upload a listing with its presentation video; the listing goes through AI moderation before entering the feed
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        video formData file false "Presentation video"
// @Param        title formData string true "Title"
// @Success      201  {object}  entity.Listing
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /listings [post]
func (h *CatalogHandler) CreateListing(c *gin.Context) {
	userID := c.GetString("user_id")

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	value, _ := strconv.ParseFloat(c.PostForm("value"), 64)
	input := usecase.CreateListingInput{
		Title:         title,
		Description:   c.PostForm("description"),
		TradeInterest: c.PostForm("trade_interest"),
		Value:         value,
		Category:      c.PostForm("category"),
		Condition:     entity.Condition(c.DefaultPostForm("condition", string(entity.ConditionUsed))),
		Type:          entity.ListingType(c.DefaultPostForm("type", string(entity.TypeTrade))),
	}

	var videoKey, contentType string
	var video io.Reader
	if file, err := c.FormFile("video"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process video"})
			return
		}
		defer src.Close()
		video = src
		videoKey = fmt.Sprintf("listings/%s/%s_%s", userID, uuid.New().String(), file.Filename)
		contentType = file.Header.Get("Content-Type")
	}

	listing, err := h.catalogUseCase.CreateListing(c.Request.Context(), userID, input, video, videoKey, contentType)
	if err != nil {
		if err.Error() == "account is blocked" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetFeed godoc
// @Summary      Get the ranked feed
// @Description  Ranked, filtered feed page for the current viewer; page N returns the whole prefix up to N*5 items
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page index (1-based)"
// @Param        q query string false "Search term"
// @Param        city query string false "Viewer city for locality boost"
// @Success      200  {object}  entity.FeedPage
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *CatalogHandler) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	feed, err := h.catalogUseCase.GetFeed(c.Request.Context(), userID, c.Query("city"), c.Query("q"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// SetFilters godoc
// @Summary      Pin feed filters
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body entity.FeedFilters true "Filters"
// @Success      200  {object}  map[string]string
// @Router       /feed/filters [put]
func (h *CatalogHandler) SetFilters(c *gin.Context) {
	userID := c.GetString("user_id")

	var filters entity.FeedFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogUseCase.SetFilters(c.Request.Context(), userID, filters); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Filters saved"})
}

// GetFilters godoc
// @Summary      Get pinned feed filters
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.FeedFilters
// @Router       /feed/filters [get]
func (h *CatalogHandler) GetFilters(c *gin.Context) {
	userID := c.GetString("user_id")

	filters, err := h.catalogUseCase.GetFilters(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load filters"})
		return
	}

	c.JSON(http.StatusOK, filters)
}

// ClearFilters godoc
// @Summary      Clear pinned feed filters
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /feed/filters [delete]
func (h *CatalogHandler) ClearFilters(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.catalogUseCase.ClearFilters(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear filters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Filters cleared"})
}

// GetListing godoc
// @Summary      Get a listing
// @Description  Fetch a single listing and count the view
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  entity.Listing
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *CatalogHandler) GetListing(c *gin.Context) {
	listing, err := h.catalogUseCase.GetListing(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// MyListings godoc
// @Summary      List the current user's listings
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /listings/mine [get]
func (h *CatalogHandler) MyListings(c *gin.Context) {
	userID := c.GetString("user_id")

	listings, err := h.catalogUseCase.MyListings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings)})
}

// LikeListing godoc
// @Summary      Like a listing
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  map[string]string
// @Router       /listings/{id}/like [post]
func (h *CatalogHandler) LikeListing(c *gin.Context) {
	if err := h.catalogUseCase.LikeListing(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}

// UpdateListing godoc
// @Summary      Update a listing
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body UpdateListingRequest true "Fields to update"
// @Success      200  {object}  entity.Listing
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [put]
func (h *CatalogHandler) UpdateListing(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.catalogUseCase.UpdateListing(userID, c.Param("id"), usecase.UpdateListingInput{
		Title:         req.Title,
		Description:   req.Description,
		TradeInterest: req.TradeInterest,
		Value:         req.Value,
		Category:      req.Category,
	})
	if err != nil {
		switch err.Error() {
		case "listing not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "not the listing owner", "listing already sold":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing godoc
// @Summary      Delete a listing
// @Description  Remove a listing and its media; negotiation history is preserved
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [delete]
func (h *CatalogHandler) DeleteListing(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.catalogUseCase.DeleteListing(userID, c.Param("id")); err != nil {
		switch err.Error() {
		case "listing not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "not the listing owner":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

// ImproveCopy godoc
// @Summary      Improve listing text with AI
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ImproveCopyRequest true "Current draft"
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /listings/improve [post]
func (h *CatalogHandler) ImproveCopy(c *gin.Context) {
	var req ImproveCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, description, err := h.catalogUseCase.ImproveCopy(c.Request.Context(), req.Title, req.TradeInterest, req.Draft)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"title": title, "description": description})
}
