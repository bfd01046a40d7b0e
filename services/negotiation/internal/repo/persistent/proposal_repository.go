package persistent

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/model"
)

type ProposalRepository interface {
	Create(proposal *entity.Proposal) error
	GetByID(id string) (*entity.Proposal, error)
	GetByBidder(bidderID string) ([]*entity.Proposal, error)
	GetByOwner(ownerID string) ([]*entity.Proposal, error)
	GetByListing(listingID string) ([]*entity.Proposal, error)
	TouchLastMessage(id string, at time.Time) error
	CloseDeal(proposalID, ownerID string) (*entity.Proposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(proposal *entity.Proposal) error {
	proposalModel := ToProposalModel(proposal)
	if proposalModel.ID == "" {
		proposalModel.ID = uuid.New().String()
	}
	if err := r.db.Create(proposalModel).Error; err != nil {
		return err
	}
	*proposal = *ToProposalEntity(proposalModel)
	return nil
}

func (r *proposalRepository) GetByID(id string) (*entity.Proposal, error) {
	var proposalModel model.ProposalModel
	if err := r.db.Where("id = ?", id).First(&proposalModel).Error; err != nil {
		return nil, err
	}
	return ToProposalEntity(&proposalModel), nil
}

func (r *proposalRepository) GetByBidder(bidderID string) ([]*entity.Proposal, error) {
	return r.list("bidder_id = ?", bidderID)
}

func (r *proposalRepository) GetByOwner(ownerID string) ([]*entity.Proposal, error) {
	return r.list("owner_id = ?", ownerID)
}

func (r *proposalRepository) GetByListing(listingID string) ([]*entity.Proposal, error) {
	return r.list("listing_id = ?", listingID)
}

func (r *proposalRepository) list(query string, arg interface{}) ([]*entity.Proposal, error) {
	var proposalModels []model.ProposalModel
	if err := r.db.Where(query, arg).Order("created_at DESC").Find(&proposalModels).Error; err != nil {
		return nil, err
	}

	proposals := make([]*entity.Proposal, len(proposalModels))
	for i := range proposalModels {
		proposals[i] = ToProposalEntity(&proposalModels[i])
	}
	return proposals, nil
}

func (r *proposalRepository) TouchLastMessage(id string, at time.Time) error {
	return r.db.Model(&model.ProposalModel{}).Where("id = ?", id).
		Update("last_message_at", at).Error
}

// CloseDeal accepts a proposal in a single transaction: the listing flips to
// SOLD only while still ACTIVE, the accepted proposal becomes WON with the
// contact unlocked, every sibling OPEN proposal becomes LOST, and both
// parties get a completed trade counted. Any failed step rolls the whole
// thing back.
func (r *proposalRepository) CloseDeal(proposalID, ownerID string) (*entity.Proposal, error) {
	var won model.ProposalModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", proposalID).First(&won).Error; err != nil {
			return fmt.Errorf("proposal not found")
		}
		if won.OwnerID != ownerID {
			return fmt.Errorf("not the listing owner")
		}
		if won.Status != string(entity.ProposalOpen) {
			return fmt.Errorf("proposal already closed")
		}

		res := tx.Table("listings").
			Where("id = ? AND status = ?", won.ListingID, "ACTIVE").
			Update("status", "SOLD")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("listing is no longer active")
		}

		if err := tx.Model(&model.ProposalModel{}).Where("id = ?", won.ID).
			Updates(map[string]interface{}{
				"status":           string(entity.ProposalWon),
				"contact_unlocked": true,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.ProposalModel{}).
			Where("listing_id = ? AND id != ? AND status = ?",
				won.ListingID, won.ID, string(entity.ProposalOpen)).
			Update("status", string(entity.ProposalLost)).Error; err != nil {
			return err
		}

		if err := tx.Table("users").
			Where("id IN ?", []string{won.OwnerID, won.BidderID}).
			UpdateColumn("trades_completed", gorm.Expr("trades_completed + 1")).Error; err != nil {
			return err
		}

		won.Status = string(entity.ProposalWon)
		won.ContactUnlocked = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToProposalEntity(&won), nil
}
