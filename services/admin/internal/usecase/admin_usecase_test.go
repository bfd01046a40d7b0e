package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/repo/persistent"
)

type MockModerationRepository struct {
	mock.Mock
}

var _ persistent.ModerationRepository = (*MockModerationRepository)(nil)

func (m *MockModerationRepository) PendingListings() ([]*entity.PendingListing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PendingListing), args.Error(1)
}

func (m *MockModerationRepository) GetListing(id string) (*entity.PendingListing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PendingListing), args.Error(1)
}

func (m *MockModerationRepository) SetListingStatus(id, status, reason string) error {
	args := m.Called(id, status, reason)
	return args.Error(0)
}

func (m *MockModerationRepository) DeleteListing(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

var _ persistent.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) GetUser(id string) (*entity.ManagedUser, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *MockAccountRepository) ListUsers() ([]*entity.ManagedUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ManagedUser), args.Error(1)
}

func (m *MockAccountRepository) SetAccountStatus(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockAccountRepository) SetDocumentStatus(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteUserCascade(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountRepository) WipeAll() error {
	args := m.Called()
	return args.Error(0)
}

type MockAdminLogRepository struct {
	mock.Mock
}

var _ persistent.AdminLogRepository = (*MockAdminLogRepository)(nil)

func (m *MockAdminLogRepository) Create(log *entity.AdminLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *MockAdminLogRepository) Recent(limit int) ([]*entity.AdminLog, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AdminLog), args.Error(1)
}

func newTestAdmin(moderation *MockModerationRepository, accounts *MockAccountRepository, logs *MockAdminLogRepository) AdminUseCase {
	return NewAdminUseCase(moderation, accounts, logs, nil, nil, logger.New())
}

func TestApproveListing_SetsActiveAndAudits(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	moderation.On("SetListingStatus", "listing-1", "ACTIVE", "").Return(nil)
	logs.On("Create", mock.MatchedBy(func(l *entity.AdminLog) bool {
		return l.Action == "APPROVE_LISTING" && l.TargetID == "listing-1" && l.AdminID == "admin-1"
	})).Return(nil)

	err := uc.ApproveListing("admin-1", "listing-1")

	assert.NoError(t, err)
	moderation.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestRejectListing_RequiresReason(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	err := uc.RejectListing("admin-1", "listing-1", "")

	assert.EqualError(t, err, "rejection reason is required")
	moderation.AssertNotCalled(t, "SetListingStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectListing_UnknownListing(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	moderation.On("SetListingStatus", "ghost", "REJECTED", "conteudo proibido").
		Return(gorm.ErrRecordNotFound)

	err := uc.RejectListing("admin-1", "ghost", "conteudo proibido")

	assert.EqualError(t, err, "listing not found")
}

func TestForceDeleteListing_KeepsGoingWhenMediaIsGone(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	moderation.On("GetListing", "listing-1").
		Return(&entity.PendingListing{ID: "listing-1", VideoURL: ""}, nil)
	moderation.On("DeleteListing", "listing-1").Return(nil)
	logs.On("Create", mock.MatchedBy(func(l *entity.AdminLog) bool {
		return l.Action == "DELETE_LISTING"
	})).Return(nil)

	err := uc.ForceDeleteListing("admin-1", "listing-1")

	assert.NoError(t, err)
	moderation.AssertExpectations(t)
}

func TestBlockUser_CannotBlockSelf(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	err := uc.BlockUser("admin-1", "admin-1", "spam")

	assert.EqualError(t, err, "cannot block your own account")
	accounts.AssertNotCalled(t, "SetAccountStatus", mock.Anything, mock.Anything)
}

func TestReviewDocument_RejectionNeedsReason(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	err := uc.ReviewDocument("admin-1", "user-1", false, "")

	assert.EqualError(t, err, "rejection reason is required")
	accounts.AssertNotCalled(t, "SetDocumentStatus", mock.Anything, mock.Anything)
}

func TestReviewDocument_Approve(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	accounts.On("SetDocumentStatus", "user-1", "VERIFIED").Return(nil)
	logs.On("Create", mock.MatchedBy(func(l *entity.AdminLog) bool {
		return l.Action == "VERIFY_DOCUMENT"
	})).Return(nil)

	err := uc.ReviewDocument("admin-1", "user-1", true, "")

	assert.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	uc := newTestAdmin(moderation, accounts, logs)

	err := uc.DeleteUser("admin-1", "admin-1")

	assert.EqualError(t, err, "cannot delete your own account")
	accounts.AssertNotCalled(t, "DeleteUserCascade", mock.Anything)
}

func TestConfirmReset_RequiresMatchingToken(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	logs.On("Create", mock.Anything).Return(nil)
	uc := newTestAdmin(moderation, accounts, logs)

	token, err := uc.RequestReset("admin-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = uc.ConfirmReset("admin-1", "wrong-token")
	assert.EqualError(t, err, "invalid or expired reset token")
	accounts.AssertNotCalled(t, "WipeAll")
}

func TestConfirmReset_TokenBoundToRequestingAdmin(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	logs.On("Create", mock.Anything).Return(nil)
	uc := newTestAdmin(moderation, accounts, logs)

	token, err := uc.RequestReset("admin-1")
	require.NoError(t, err)

	err = uc.ConfirmReset("admin-2", token)
	assert.EqualError(t, err, "invalid or expired reset token")
	accounts.AssertNotCalled(t, "WipeAll")
}

func TestConfirmReset_TokenIsSingleUse(t *testing.T) {
	moderation := new(MockModerationRepository)
	accounts := new(MockAccountRepository)
	logs := new(MockAdminLogRepository)
	logs.On("Create", mock.Anything).Return(nil)
	accounts.On("WipeAll").Return(nil).Once()
	uc := newTestAdmin(moderation, accounts, logs)

	token, err := uc.RequestReset("admin-1")
	require.NoError(t, err)

	assert.NoError(t, uc.ConfirmReset("admin-1", token))

	err = uc.ConfirmReset("admin-1", token)
	assert.EqualError(t, err, "invalid or expired reset token")
	accounts.AssertNumberOfCalls(t, "WipeAll", 1)
}
