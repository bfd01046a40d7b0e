package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/repo/persistent"
)

type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Create(p *entity.Proposal) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepo) GetByBidder(bidderID string) ([]*entity.Proposal, error) {
	args := m.Called(bidderID)
	return args.Get(0).([]*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepo) GetByOwner(ownerID string) ([]*entity.Proposal, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepo) GetByListing(listingID string) ([]*entity.Proposal, error) {
	args := m.Called(listingID)
	return args.Get(0).([]*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepo) TouchLastMessage(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockProposalRepo) CloseDeal(proposalID, ownerID string) (*entity.Proposal, error) {
	args := m.Called(proposalID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Proposal), args.Error(1)
}

var _ persistent.ProposalRepository = (*MockProposalRepo)(nil)

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(msg *entity.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockMessageRepo) GetByProposal(proposalID string) ([]*entity.ChatMessage, error) {
	args := m.Called(proposalID)
	return args.Get(0).([]*entity.ChatMessage), args.Error(1)
}

func (m *MockMessageRepo) MarkRead(proposalID, readerID string) error {
	args := m.Called(proposalID, readerID)
	return args.Error(0)
}

var _ persistent.MessageRepository = (*MockMessageRepo)(nil)

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserLite(id string) (*persistent.UserLite, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistent.UserLite), args.Error(1)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetListingLite(id string) (*persistent.ListingLite, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistent.ListingLite), args.Error(1)
}

type MockPaymentGate struct {
	mock.Mock
}

func (m *MockPaymentGate) ConsumeApproved(gatewayID int64, userID, purpose string) error {
	args := m.Called(gatewayID, userID, purpose)
	return args.Error(0)
}

func newTestUseCase(proposals *MockProposalRepo, messages *MockMessageRepo, users *MockUserReader, listings *MockListingReader, gate *MockPaymentGate) NegotiationUseCase {
	return NewNegotiationUseCase(proposals, messages, users, listings, gate, nil, logger.New())
}

func activeListing() *persistent.ListingLite {
	return &persistent.ListingLite{ID: "listing-1", OwnerID: "owner", Title: "Bicicleta", Status: "ACTIVE"}
}

func TestCreateProposal_PremiumSkipsPaymentGate(t *testing.T) {
	proposals := new(MockProposalRepo)
	users := new(MockUserReader)
	listings := new(MockListingReader)
	gate := new(MockPaymentGate)
	uc := newTestUseCase(proposals, new(MockMessageRepo), users, listings, gate)

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder", Name: "Bia", Plan: "PREMIUM"}, nil)
	listings.On("GetListingLite", "listing-1").Return(activeListing(), nil)
	proposals.On("Create", mock.Anything).Return(nil)

	proposal, err := uc.CreateProposal("bidder", CreateProposalInput{ListingID: "listing-1", Message: "troco por skate"})

	assert.NoError(t, err)
	assert.Equal(t, entity.ProposalOpen, proposal.Status)
	gate.AssertNotCalled(t, "ConsumeApproved", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProposal_FreeRequiresConsumedFee(t *testing.T) {
	proposals := new(MockProposalRepo)
	users := new(MockUserReader)
	listings := new(MockListingReader)
	gate := new(MockPaymentGate)
	uc := newTestUseCase(proposals, new(MockMessageRepo), users, listings, gate)

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder", Name: "Bia", Plan: "FREE"}, nil)
	listings.On("GetListingLite", "listing-1").Return(activeListing(), nil)

	// No payment reference at all.
	_, err := uc.CreateProposal("bidder", CreateProposalInput{ListingID: "listing-1"})
	assert.EqualError(t, err, "negotiation fee required")

	// A reference that the gate rejects (unpaid, already consumed, wrong purpose).
	gate.On("ConsumeApproved", int64(42), "bidder", "NEGOTIATION_FEE").Return(gorm.ErrRecordNotFound)
	_, err = uc.CreateProposal("bidder", CreateProposalInput{ListingID: "listing-1", PaymentID: 42})
	assert.EqualError(t, err, "negotiation fee required")

	proposals.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProposal_FreeWithApprovedFee(t *testing.T) {
	proposals := new(MockProposalRepo)
	users := new(MockUserReader)
	listings := new(MockListingReader)
	gate := new(MockPaymentGate)
	uc := newTestUseCase(proposals, new(MockMessageRepo), users, listings, gate)

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder", Name: "Bia", Plan: "FREE"}, nil)
	listings.On("GetListingLite", "listing-1").Return(activeListing(), nil)
	gate.On("ConsumeApproved", int64(42), "bidder", "NEGOTIATION_FEE").Return(nil)
	proposals.On("Create", mock.Anything).Return(nil)

	proposal, err := uc.CreateProposal("bidder", CreateProposalInput{ListingID: "listing-1", PaymentID: 42})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), proposal.PaymentID)
	gate.AssertExpectations(t)
}

func TestCreateProposal_BlockedBidderRejected(t *testing.T) {
	proposals := new(MockProposalRepo)
	users := new(MockUserReader)
	uc := newTestUseCase(proposals, new(MockMessageRepo), users, new(MockListingReader), new(MockPaymentGate))

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder", Blocked: true}, nil)

	_, err := uc.CreateProposal("bidder", CreateProposalInput{ListingID: "listing-1"})
	assert.EqualError(t, err, "account is blocked")
	proposals.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProposal_OwnListingRejected(t *testing.T) {
	users := new(MockUserReader)
	listings := new(MockListingReader)
	uc := newTestUseCase(new(MockProposalRepo), new(MockMessageRepo), users, listings, new(MockPaymentGate))

	users.On("GetUserLite", "owner").Return(&persistent.UserLite{ID: "owner", Plan: "PREMIUM"}, nil)
	listings.On("GetListingLite", "listing-1").Return(activeListing(), nil)

	_, err := uc.CreateProposal("owner", CreateProposalInput{ListingID: "listing-1"})
	assert.EqualError(t, err, "cannot bid on your own listing")
}

func TestSendMessage_FilterBlocksContactSharing(t *testing.T) {
	proposals := new(MockProposalRepo)
	messages := new(MockMessageRepo)
	users := new(MockUserReader)
	uc := newTestUseCase(proposals, messages, users, new(MockListingReader), new(MockPaymentGate))

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder"}, nil)
	proposals.On("GetByID", "prop-1").Return(&entity.Proposal{
		ID: "prop-1", OwnerID: "owner", BidderID: "bidder", Status: entity.ProposalOpen,
	}, nil)

	_, err := uc.SendMessage("prop-1", "bidder", "me liga no 11 98888-7777", entity.MessageText, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "message blocked")
	messages.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSendMessage_LoserCannotChat(t *testing.T) {
	proposals := new(MockProposalRepo)
	messages := new(MockMessageRepo)
	users := new(MockUserReader)
	uc := newTestUseCase(proposals, messages, users, new(MockListingReader), new(MockPaymentGate))

	users.On("GetUserLite", "bidder").Return(&persistent.UserLite{ID: "bidder"}, nil)
	proposals.On("GetByID", "prop-1").Return(&entity.Proposal{
		ID: "prop-1", OwnerID: "owner", BidderID: "bidder", Status: entity.ProposalLost,
	}, nil)

	_, err := uc.SendMessage("prop-1", "bidder", "aceita troca por bike?", entity.MessageText, "")
	assert.EqualError(t, err, "chat is closed")
}

func TestGetProposal_ContactOnlyAfterWin(t *testing.T) {
	proposals := new(MockProposalRepo)
	users := new(MockUserReader)
	uc := newTestUseCase(proposals, new(MockMessageRepo), users, new(MockListingReader), new(MockPaymentGate))

	open := &entity.Proposal{ID: "prop-1", OwnerID: "owner", BidderID: "bidder", Status: entity.ProposalOpen}
	proposals.On("GetByID", "prop-1").Return(open, nil).Once()

	_, contact, err := uc.GetProposal("prop-1", "bidder")
	assert.NoError(t, err)
	assert.Empty(t, contact)

	won := &entity.Proposal{ID: "prop-1", OwnerID: "owner", BidderID: "bidder", Status: entity.ProposalWon, ContactUnlocked: true}
	proposals.On("GetByID", "prop-1").Return(won, nil).Once()
	users.On("GetUserLite", "owner").Return(&persistent.UserLite{ID: "owner", Whatsapp: "41999990000"}, nil)

	_, contact, err = uc.GetProposal("prop-1", "bidder")
	assert.NoError(t, err)
	assert.Equal(t, "41999990000", contact)
}
