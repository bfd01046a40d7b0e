package persistent

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/model"
)

type ListingRepository interface {
	Create(listing *entity.Listing) error
	GetByID(id string) (*entity.Listing, error)
	GetActive() ([]*entity.Listing, error)
	GetByOwner(ownerID string) ([]*entity.Listing, error)
	Update(listing *entity.Listing) error
	UpdateStatus(id string, status entity.ListingStatus, reason string) error
	IncrementViews(id string) error
	IncrementLikes(id string, delta int) error
	Delete(id string) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *entity.Listing) error {
	listingModel := ToListingModel(listing)
	if listingModel.ID == "" {
		listingModel.ID = uuid.New().String()
	}
	if err := r.db.Create(listingModel).Error; err != nil {
		return err
	}
	*listing = *ToListingEntity(listingModel)
	return nil
}

func (r *listingRepository) GetByID(id string) (*entity.Listing, error) {
	var listingModel model.ListingModel
	if err := r.db.Where("id = ?", id).First(&listingModel).Error; err != nil {
		return nil, err
	}
	return ToListingEntity(&listingModel), nil
}

func (r *listingRepository) GetActive() ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	if err := r.db.Where("status = ?", string(entity.StatusActive)).
		Order("created_at DESC").Find(&listingModels).Error; err != nil {
		return nil, err
	}

	listings := make([]*entity.Listing, len(listingModels))
	for i := range listingModels {
		listings[i] = ToListingEntity(&listingModels[i])
	}
	return listings, nil
}

func (r *listingRepository) GetByOwner(ownerID string) ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&listingModels).Error; err != nil {
		return nil, err
	}

	listings := make([]*entity.Listing, len(listingModels))
	for i := range listingModels {
		listings[i] = ToListingEntity(&listingModels[i])
	}
	return listings, nil
}

func (r *listingRepository) Update(listing *entity.Listing) error {
	listingModel := ToListingModel(listing)
	return r.db.Save(listingModel).Error
}

func (r *listingRepository) UpdateStatus(id string, status entity.ListingStatus, reason string) error {
	updates := map[string]interface{}{"status": string(status)}
	if reason != "" {
		updates["moderation_reason"] = reason
	}
	return r.db.Model(&model.ListingModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *listingRepository) IncrementViews(id string) error {
	return r.db.Model(&model.ListingModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *listingRepository) IncrementLikes(id string, delta int) error {
	return r.db.Model(&model.ListingModel{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func (r *listingRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ListingModel{}).Error
}
