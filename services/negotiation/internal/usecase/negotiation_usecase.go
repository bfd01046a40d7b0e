package usecase

import (
	"fmt"
	"time"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/queue"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/safety"
)

const premiumPlan = "PREMIUM"

type CreateProposalInput struct {
	ListingID  string
	Message    string
	OfferValue float64
	OfferItems string
	PaymentID  int64
}

type NegotiationUseCase interface {
	CreateProposal(bidderID string, input CreateProposalInput) (*entity.Proposal, error)
	SentProposals(userID string) ([]*entity.Proposal, error)
	ReceivedProposals(userID string) ([]*entity.Proposal, error)
	GetProposal(proposalID, userID string) (*entity.Proposal, string, error)
	CloseDeal(proposalID, ownerID string) (*entity.Proposal, error)
	SendMessage(proposalID, senderID, text string, msgType entity.MessageType, mediaURL string) (*entity.ChatMessage, error)
	GetMessages(proposalID, userID string) ([]*entity.ChatMessage, error)
}

type negotiationUseCase struct {
	proposalRepo  persistent.ProposalRepository
	messageRepo   persistent.MessageRepository
	userReader    persistent.UserReader
	listingReader persistent.ListingReader
	paymentGate   persistent.PaymentGate
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewNegotiationUseCase(
	proposalRepo persistent.ProposalRepository,
	messageRepo persistent.MessageRepository,
	userReader persistent.UserReader,
	listingReader persistent.ListingReader,
	paymentGate persistent.PaymentGate,
	queueClient *queue.Client,
	logger *logger.Logger,
) NegotiationUseCase {
	return &negotiationUseCase{
		proposalRepo:  proposalRepo,
		messageRepo:   messageRepo,
		userReader:    userReader,
		listingReader: listingReader,
		paymentGate:   paymentGate,
		queueClient:   queueClient,
		logger:        logger,
	}
}

// CreateProposal opens a negotiation on an active listing. Free-plan bidders
// must bring an approved negotiation-fee payment, which is consumed here;
// premium bidders skip the gate entirely.
func (uc *negotiationUseCase) CreateProposal(bidderID string, input CreateProposalInput) (*entity.Proposal, error) {
	bidder, err := uc.userReader.GetUserLite(bidderID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if bidder.Blocked {
		return nil, fmt.Errorf("account is blocked")
	}

	listing, err := uc.listingReader.GetListingLite(input.ListingID)
	if err != nil {
		return nil, fmt.Errorf("listing not found")
	}
	if listing.Status != "ACTIVE" {
		return nil, fmt.Errorf("listing is not active")
	}
	if listing.OwnerID == bidderID {
		return nil, fmt.Errorf("cannot bid on your own listing")
	}

	if bidder.Plan != premiumPlan {
		if input.PaymentID == 0 {
			return nil, fmt.Errorf("negotiation fee required")
		}
		if err := uc.paymentGate.ConsumeApproved(input.PaymentID, bidderID, "NEGOTIATION_FEE"); err != nil {
			return nil, fmt.Errorf("negotiation fee required")
		}
	}

	proposal := &entity.Proposal{
		ListingID:    listing.ID,
		ListingTitle: listing.Title,
		OwnerID:      listing.OwnerID,
		BidderID:     bidder.ID,
		BidderName:   bidder.Name,
		Message:      input.Message,
		OfferValue:   input.OfferValue,
		OfferItems:   input.OfferItems,
		Status:       entity.ProposalOpen,
		PaymentID:    input.PaymentID,
	}

	if err := uc.proposalRepo.Create(proposal); err != nil {
		uc.logger.Error("Failed to create proposal: %v", err)
		return nil, fmt.Errorf("failed to create proposal")
	}

	uc.publishChange("proposal", proposal.ID, "created")
	return proposal, nil
}

func (uc *negotiationUseCase) SentProposals(userID string) ([]*entity.Proposal, error) {
	return uc.proposalRepo.GetByBidder(userID)
}

func (uc *negotiationUseCase) ReceivedProposals(userID string) ([]*entity.Proposal, error) {
	return uc.proposalRepo.GetByOwner(userID)
}

// GetProposal returns the proposal plus the counterparty's contact, which is
// empty until the deal closes and the contact unlocks.
func (uc *negotiationUseCase) GetProposal(proposalID, userID string) (*entity.Proposal, string, error) {
	proposal, err := uc.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, "", fmt.Errorf("proposal not found")
	}
	if userID != proposal.OwnerID && userID != proposal.BidderID {
		return nil, "", fmt.Errorf("not a participant")
	}

	contact := ""
	if proposal.ContactUnlocked && proposal.Status == entity.ProposalWon {
		counterpartyID := proposal.OwnerID
		if userID == proposal.OwnerID {
			counterpartyID = proposal.BidderID
		}
		if counterparty, err := uc.userReader.GetUserLite(counterpartyID); err == nil {
			contact = counterparty.Whatsapp
		} else {
			uc.logger.Warn("Failed to load counterparty contact: %v", err)
		}
	}

	return proposal, contact, nil
}

func (uc *negotiationUseCase) CloseDeal(proposalID, ownerID string) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.CloseDeal(proposalID, ownerID)
	if err != nil {
		return nil, err
	}

	uc.publishChange("proposal", proposal.ID, "updated")
	uc.publishChange("listing", proposal.ListingID, "updated")
	return proposal, nil
}

// SendMessage persists a chat message after the safety filter passes. The
// filter is a hard gate: rejected text is never transmitted or stored.
func (uc *negotiationUseCase) SendMessage(proposalID, senderID, text string, msgType entity.MessageType, mediaURL string) (*entity.ChatMessage, error) {
	sender, err := uc.userReader.GetUserLite(senderID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if sender.Blocked {
		return nil, fmt.Errorf("account is blocked")
	}

	proposal, err := uc.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, fmt.Errorf("proposal not found")
	}
	if senderID != proposal.OwnerID && senderID != proposal.BidderID {
		return nil, fmt.Errorf("not a participant")
	}
	if !proposal.CanChat(senderID) {
		return nil, fmt.Errorf("chat is closed")
	}

	if msgType == "" {
		msgType = entity.MessageText
	}
	if msgType == entity.MessageText {
		if verdict := safety.Validate(text); !verdict.Allowed {
			return nil, fmt.Errorf("message blocked: %s", verdict.Reason)
		}
	}

	message := &entity.ChatMessage{
		ProposalID: proposalID,
		SenderID:   senderID,
		Text:       text,
		Type:       msgType,
		MediaURL:   mediaURL,
	}

	if err := uc.messageRepo.Create(message); err != nil {
		uc.logger.Error("Failed to store message: %v", err)
		return nil, fmt.Errorf("failed to send message")
	}

	if err := uc.proposalRepo.TouchLastMessage(proposalID, time.Now()); err != nil {
		uc.logger.Warn("Failed to touch proposal %s: %v", proposalID, err)
	}

	uc.publishChange("message", message.ID, "created")
	return message, nil
}

func (uc *negotiationUseCase) GetMessages(proposalID, userID string) ([]*entity.ChatMessage, error) {
	proposal, err := uc.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, fmt.Errorf("proposal not found")
	}
	if userID != proposal.OwnerID && userID != proposal.BidderID {
		return nil, fmt.Errorf("not a participant")
	}

	messages, err := uc.messageRepo.GetByProposal(proposalID)
	if err != nil {
		uc.logger.Error("Failed to load messages: %v", err)
		return nil, fmt.Errorf("failed to load messages")
	}

	if err := uc.messageRepo.MarkRead(proposalID, userID); err != nil {
		uc.logger.Warn("Failed to mark messages read: %v", err)
	}
	return messages, nil
}

func (uc *negotiationUseCase) publishChange(entityName, id, action string) {
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
