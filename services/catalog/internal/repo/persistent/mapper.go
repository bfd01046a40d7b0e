package persistent

import (
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/model"
)

func ToListingEntity(m *model.ListingModel) *entity.Listing {
	if m == nil {
		return nil
	}

	return &entity.Listing{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		OwnerName:        m.OwnerName,
		OwnerAvatar:      m.OwnerAvatar,
		OwnerRegion:      m.OwnerRegion,
		Title:            m.Title,
		Description:      m.Description,
		TradeInterest:    m.TradeInterest,
		Value:            m.Value,
		Category:         m.Category,
		Condition:        entity.Condition(m.Condition),
		Type:             entity.ListingType(m.Type),
		VideoURL:         m.VideoURL,
		ImageURL:         m.ImageURL,
		Status:           entity.ListingStatus(m.Status),
		ModerationReason: m.ModerationReason,
		IsHighlight:      m.IsHighlight,
		HighlightExpires: m.HighlightExpires,
		Likes:            m.Likes,
		Rating:           m.Rating,
		Views:            m.Views,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToListingModel(e *entity.Listing) *model.ListingModel {
	if e == nil {
		return nil
	}

	return &model.ListingModel{
		ID:               e.ID,
		OwnerID:          e.OwnerID,
		OwnerName:        e.OwnerName,
		OwnerAvatar:      e.OwnerAvatar,
		OwnerRegion:      e.OwnerRegion,
		Title:            e.Title,
		Description:      e.Description,
		TradeInterest:    e.TradeInterest,
		Value:            e.Value,
		Category:         e.Category,
		Condition:        string(e.Condition),
		Type:             string(e.Type),
		VideoURL:         e.VideoURL,
		ImageURL:         e.ImageURL,
		Status:           string(e.Status),
		ModerationReason: e.ModerationReason,
		IsHighlight:      e.IsHighlight,
		HighlightExpires: e.HighlightExpires,
		Likes:            e.Likes,
		Rating:           e.Rating,
		Views:            e.Views,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
