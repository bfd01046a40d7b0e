package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elnathantransportes-ai/troca/pkg/genai"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/queue"
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/repo/persistent"
)

type CreateListingInput struct {
	Title         string
	Description   string
	TradeInterest string
	Value         float64
	Category      string
	Condition     entity.Condition
	Type          entity.ListingType
}

type UpdateListingInput struct {
	Title         *string
	Description   *string
	TradeInterest *string
	Value         *float64
	Category      *string
}

type CatalogUseCase interface {
	CreateListing(ctx context.Context, ownerID string, input CreateListingInput, video io.Reader, videoKey, contentType string) (*entity.Listing, error)
	GetFeed(ctx context.Context, viewerID, viewerCity, term string, pageIndex int) (entity.FeedPage, error)
	SetFilters(ctx context.Context, userID string, filters entity.FeedFilters) error
	GetFilters(ctx context.Context, userID string) (entity.FeedFilters, error)
	ClearFilters(ctx context.Context, userID string) error
	GetListing(id string) (*entity.Listing, error)
	MyListings(ownerID string) ([]*entity.Listing, error)
	LikeListing(id string) error
	UpdateListing(ownerID, id string, input UpdateListingInput) (*entity.Listing, error)
	DeleteListing(ownerID, id string) error
	ImproveCopy(ctx context.Context, title, tradeInterest, draft string) (string, string, error)
}

type catalogUseCase struct {
	listingRepo persistent.ListingRepository
	userReader  persistent.UserReader
	prefsRepo   persistent.PrefsRepository
	feedCache   persistent.FeedCache
	s3Client    *s3.Client
	moderator   genai.Moderator
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewCatalogUseCase(
	listingRepo persistent.ListingRepository,
	userReader persistent.UserReader,
	prefsRepo persistent.PrefsRepository,
	feedCache persistent.FeedCache,
	s3Client *s3.Client,
	moderator genai.Moderator,
	queueClient *queue.Client,
	logger *logger.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		listingRepo: listingRepo,
		userReader:  userReader,
		prefsRepo:   prefsRepo,
		feedCache:   feedCache,
		s3Client:    s3Client,
		moderator:   moderator,
		queueClient: queueClient,
		logger:      logger,
	}
}

// CreateListing uploads the video, persists the listing and runs AI
// moderation inline. Moderation failures approve the listing; a listing is
// only rejected when the model explicitly says so.
func (uc *catalogUseCase) CreateListing(ctx context.Context, ownerID string, input CreateListingInput, video io.Reader, videoKey, contentType string) (*entity.Listing, error) {
	owner, err := uc.userReader.GetOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if owner.Blocked {
		return nil, fmt.Errorf("account is blocked")
	}

	if contentType == "" {
		contentType = "video/mp4"
	}
	videoURL := ""
	if video != nil {
		videoURL, err = uc.s3Client.UploadFile(videoKey, video, contentType)
		if err != nil {
			uc.logger.Error("Failed to upload listing video: %v", err)
			return nil, fmt.Errorf("failed to upload video")
		}
	}

	listing := &entity.Listing{
		OwnerID:       owner.ID,
		OwnerName:     owner.Name,
		OwnerAvatar:   owner.AvatarURL,
		OwnerRegion:   owner.Region(),
		Title:         input.Title,
		Description:   input.Description,
		TradeInterest: input.TradeInterest,
		Value:         input.Value,
		Category:      input.Category,
		Condition:     input.Condition,
		Type:          input.Type,
		VideoURL:      videoURL,
		Status:        entity.StatusPending,
	}

	if err := uc.listingRepo.Create(listing); err != nil {
		uc.logger.Error("Failed to create listing: %v", err)
		return nil, fmt.Errorf("failed to create listing")
	}

	if err := uc.listingRepo.UpdateStatus(listing.ID, entity.StatusPendingAI, ""); err != nil {
		uc.logger.Error("Failed to mark listing for moderation: %v", err)
	}
	listing.Status = entity.StatusPendingAI

	verdict := uc.moderator.ClassifyListing(ctx, listing.Title, listing.Description, nil)
	if verdict.Approved {
		listing.Status = entity.StatusActive
		listing.ModerationReason = ""
	} else {
		listing.Status = entity.StatusRejected
		listing.ModerationReason = verdict.Reason
	}
	if err := uc.listingRepo.UpdateStatus(listing.ID, listing.Status, listing.ModerationReason); err != nil {
		uc.logger.Error("Failed to store moderation verdict: %v", err)
		return nil, fmt.Errorf("failed to create listing")
	}

	uc.publishChange("listing", listing.ID, "created")
	return listing, nil
}

func (uc *catalogUseCase) GetFeed(ctx context.Context, viewerID, viewerCity, term string, pageIndex int) (entity.FeedPage, error) {
	filters, err := uc.prefsRepo.Get(ctx, viewerID)
	if err != nil {
		uc.logger.Warn("Failed to load filter prefs for %s: %v", viewerID, err)
		filters = entity.FeedFilters{}
	}

	candidates, err := uc.feedCache.GetCandidates(ctx)
	if err != nil {
		uc.logger.Warn("Feed cache read failed: %v", err)
	}
	if candidates == nil {
		candidates, err = uc.listingRepo.GetActive()
		if err != nil {
			uc.logger.Error("Failed to load active listings: %v", err)
			return entity.FeedPage{}, fmt.Errorf("failed to load feed")
		}
		if err := uc.feedCache.SetCandidates(ctx, candidates); err != nil {
			uc.logger.Warn("Feed cache write failed: %v", err)
		}
	}

	return AssembleFeed(candidates, term, filters, viewerCity, pageIndex, time.Now()), nil
}

func (uc *catalogUseCase) SetFilters(ctx context.Context, userID string, filters entity.FeedFilters) error {
	if err := uc.prefsRepo.Save(ctx, userID, filters); err != nil {
		uc.logger.Error("Failed to save filter prefs: %v", err)
		return fmt.Errorf("failed to save filters")
	}
	return nil
}

func (uc *catalogUseCase) GetFilters(ctx context.Context, userID string) (entity.FeedFilters, error) {
	return uc.prefsRepo.Get(ctx, userID)
}

func (uc *catalogUseCase) ClearFilters(ctx context.Context, userID string) error {
	return uc.prefsRepo.Clear(ctx, userID)
}

func (uc *catalogUseCase) GetListing(id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := uc.listingRepo.IncrementViews(id); err != nil {
		uc.logger.Warn("Failed to count view on %s: %v", id, err)
	}
	return listing, nil
}

func (uc *catalogUseCase) MyListings(ownerID string) ([]*entity.Listing, error) {
	return uc.listingRepo.GetByOwner(ownerID)
}

func (uc *catalogUseCase) LikeListing(id string) error {
	if err := uc.listingRepo.IncrementLikes(id, 1); err != nil {
		uc.logger.Error("Failed to like listing %s: %v", id, err)
		return fmt.Errorf("failed to like listing")
	}
	uc.publishChange("listing", id, "updated")
	return nil
}

func (uc *catalogUseCase) UpdateListing(ownerID, id string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("listing not found")
	}
	if listing.OwnerID != ownerID {
		return nil, fmt.Errorf("not the listing owner")
	}
	if listing.Status == entity.StatusSold {
		return nil, fmt.Errorf("listing already sold")
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.TradeInterest != nil {
		listing.TradeInterest = *input.TradeInterest
	}
	if input.Value != nil {
		listing.Value = *input.Value
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}

	if err := uc.listingRepo.Update(listing); err != nil {
		uc.logger.Error("Failed to update listing: %v", err)
		return nil, fmt.Errorf("failed to update listing")
	}

	uc.publishChange("listing", id, "updated")
	return listing, nil
}

// DeleteListing removes the listing and its media. Proposals and chat
// history referencing it are left untouched.
func (uc *catalogUseCase) DeleteListing(ownerID, id string) error {
	listing, err := uc.listingRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("listing not found")
	}
	if listing.OwnerID != ownerID {
		return fmt.Errorf("not the listing owner")
	}

	if err := uc.listingRepo.Delete(id); err != nil {
		uc.logger.Error("Failed to delete listing: %v", err)
		return fmt.Errorf("failed to delete listing")
	}

	if listing.VideoURL != "" {
		if err := uc.s3Client.DeleteFileByURL(listing.VideoURL); err != nil {
			uc.logger.Warn("Failed to delete listing video: %v", err)
		}
	}

	uc.publishChange("listing", id, "deleted")
	return nil
}

func (uc *catalogUseCase) ImproveCopy(ctx context.Context, title, tradeInterest, draft string) (string, string, error) {
	newTitle, newDescription, err := uc.moderator.ImproveListingCopy(ctx, title, tradeInterest, draft)
	if err != nil {
		uc.logger.Warn("Copy improvement failed: %v", err)
		return "", "", fmt.Errorf("failed to improve listing text")
	}
	return newTitle, newDescription, nil
}

func (uc *catalogUseCase) publishChange(entityName, id, action string) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		if err := uc.queueClient.PublishChange(queue.ChangeEvent{
			Entity:   entityName,
			EntityID: id,
			Action:   action,
		}); err != nil {
			uc.logger.Warn("Failed to publish %s.%s event: %v", entityName, action, err)
		}
	}()
}
