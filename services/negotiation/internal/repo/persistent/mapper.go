package persistent

import (
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/model"
)

func ToProposalEntity(m *model.ProposalModel) *entity.Proposal {
	if m == nil {
		return nil
	}

	return &entity.Proposal{
		ID:              m.ID,
		ListingID:       m.ListingID,
		ListingTitle:    m.ListingTitle,
		OwnerID:         m.OwnerID,
		BidderID:        m.BidderID,
		BidderName:      m.BidderName,
		Message:         m.Message,
		OfferValue:      m.OfferValue,
		OfferItems:      m.OfferItems,
		Status:          entity.ProposalStatus(m.Status),
		ContactUnlocked: m.ContactUnlocked,
		PaymentID:       m.PaymentID,
		CreatedAt:       m.CreatedAt,
		LastMessageAt:   m.LastMessageAt,
	}
}

func ToProposalModel(e *entity.Proposal) *model.ProposalModel {
	if e == nil {
		return nil
	}

	return &model.ProposalModel{
		ID:              e.ID,
		ListingID:       e.ListingID,
		ListingTitle:    e.ListingTitle,
		OwnerID:         e.OwnerID,
		BidderID:        e.BidderID,
		BidderName:      e.BidderName,
		Message:         e.Message,
		OfferValue:      e.OfferValue,
		OfferItems:      e.OfferItems,
		Status:          string(e.Status),
		ContactUnlocked: e.ContactUnlocked,
		PaymentID:       e.PaymentID,
		CreatedAt:       e.CreatedAt,
		LastMessageAt:   e.LastMessageAt,
	}
}

func ToChatMessageEntity(m *model.ChatMessageModel) *entity.ChatMessage {
	if m == nil {
		return nil
	}

	return &entity.ChatMessage{
		ID:         m.ID,
		ProposalID: m.ProposalID,
		SenderID:   m.SenderID,
		Text:       m.Text,
		Type:       entity.MessageType(m.Type),
		MediaURL:   m.MediaURL,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func ToChatMessageModel(e *entity.ChatMessage) *model.ChatMessageModel {
	if e == nil {
		return nil
	}

	return &model.ChatMessageModel{
		ID:         e.ID,
		ProposalID: e.ProposalID,
		SenderID:   e.SenderID,
		Text:       e.Text,
		Type:       string(e.Type),
		MediaURL:   e.MediaURL,
		Read:       e.Read,
		CreatedAt:  e.CreatedAt,
	}
}
