package persistent

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
)

type ModerationRepository interface {
	PendingListings() ([]*entity.PendingListing, error)
	GetListing(id string) (*entity.PendingListing, error)
	SetListingStatus(id, status, reason string) error
	DeleteListing(id string) error
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

type listingRow struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Title       string
	Description string
	Category    string
	VideoURL    string
	Status      string
	CreatedAt   time.Time
}

func (row listingRow) toEntity() *entity.PendingListing {
	return &entity.PendingListing{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		OwnerName:   row.OwnerName,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		VideoURL:    row.VideoURL,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
	}
}

var listingColumns = []string{
	"id", "owner_id", "owner_name", "title", "description",
	"category", "video_url", "status", "created_at",
}

// PendingListings returns the moderation queue, oldest submissions first so
// no listing starves behind newer ones.
func (r *moderationRepository) PendingListings() ([]*entity.PendingListing, error) {
	var rows []listingRow
	err := r.db.Table("listings").
		Select(listingColumns).
		Where("status IN ?", []string{"PENDING", "PENDING_AI"}).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load moderation queue: %w", err)
	}

	listings := make([]*entity.PendingListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toEntity())
	}
	return listings, nil
}

func (r *moderationRepository) GetListing(id string) (*entity.PendingListing, error) {
	var row listingRow
	err := r.db.Table("listings").
		Select(listingColumns).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *moderationRepository) SetListingStatus(id, status, reason string) error {
	updates := map[string]interface{}{"status": status}
	if reason != "" {
		updates["moderation_reason"] = reason
	}

	result := r.db.Table("listings").Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update listing status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteListing removes the listing row only. Proposals and chat history
// referencing it stay intact for audit.
func (r *moderationRepository) DeleteListing(id string) error {
	result := r.db.Exec("DELETE FROM listings WHERE id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
