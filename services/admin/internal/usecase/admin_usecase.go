package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/queue"
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/repo/persistent"
)

const resetTokenTTL = 2 * time.Minute

type AdminUseCase interface {
	ModerationQueue() ([]*entity.PendingListing, error)
	ApproveListing(adminID, listingID string) error
	RejectListing(adminID, listingID, reason string) error
	ForceDeleteListing(adminID, listingID string) error
	ListUsers() ([]*entity.ManagedUser, error)
	BlockUser(adminID, userID, reason string) error
	UnblockUser(adminID, userID string) error
	ReviewDocument(adminID, userID string, approve bool, reason string) error
	DeleteUser(adminID, userID string) error
	RecentLogs(limit int) ([]*entity.AdminLog, error)
	RequestReset(adminID string) (string, error)
	ConfirmReset(adminID, token string) error
}

type adminUseCase struct {
	moderationRepo persistent.ModerationRepository
	accountRepo    persistent.AccountRepository
	logRepo        persistent.AdminLogRepository
	s3Client       *s3.Client
	queueClient    *queue.Client
	logger         *logger.Logger

	mu         sync.Mutex
	resetToken string
	resetAdmin string
	resetUntil time.Time
}

func NewAdminUseCase(
	moderationRepo persistent.ModerationRepository,
	accountRepo persistent.AccountRepository,
	logRepo persistent.AdminLogRepository,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) AdminUseCase {
	return &adminUseCase{
		moderationRepo: moderationRepo,
		accountRepo:    accountRepo,
		logRepo:        logRepo,
		s3Client:       s3Client,
		queueClient:    queueClient,
		logger:         logger,
	}
}

func (uc *adminUseCase) ModerationQueue() ([]*entity.PendingListing, error) {
	listings, err := uc.moderationRepo.PendingListings()
	if err != nil {
		uc.logger.Error("admin: load moderation queue: %v", err)
		return nil, fmt.Errorf("failed to load moderation queue")
	}
	return listings, nil
}

func (uc *adminUseCase) ApproveListing(adminID, listingID string) error {
	if err := uc.setListingStatus(listingID, "ACTIVE", ""); err != nil {
		return err
	}
	uc.audit(adminID, "APPROVE_LISTING", "listing", listingID, "")
	uc.publishChange("listing", listingID, "updated")
	return nil
}

func (uc *adminUseCase) RejectListing(adminID, listingID, reason string) error {
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}
	if err := uc.setListingStatus(listingID, "REJECTED", reason); err != nil {
		return err
	}
	uc.audit(adminID, "REJECT_LISTING", "listing", listingID, reason)
	uc.publishChange("listing", listingID, "updated")
	return nil
}

func (uc *adminUseCase) setListingStatus(listingID, status, reason string) error {
	err := uc.moderationRepo.SetListingStatus(listingID, status, reason)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("listing not found")
	}
	if err != nil {
		uc.logger.Error("admin: set listing %s to %s: %v", listingID, status, err)
		return fmt.Errorf("failed to update listing")
	}
	return nil
}

// ForceDeleteListing removes the listing and its stored video. Chat history
// on its proposals is kept.
func (uc *adminUseCase) ForceDeleteListing(adminID, listingID string) error {
	listing, err := uc.moderationRepo.GetListing(listingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("listing not found")
	}
	if err != nil {
		uc.logger.Error("admin: load listing %s: %v", listingID, err)
		return fmt.Errorf("failed to delete listing")
	}

	if err := uc.moderationRepo.DeleteListing(listingID); err != nil {
		uc.logger.Error("admin: delete listing %s: %v", listingID, err)
		return fmt.Errorf("failed to delete listing")
	}

	if listing.VideoURL != "" && uc.s3Client != nil {
		if err := uc.s3Client.DeleteFileByURL(listing.VideoURL); err != nil {
			uc.logger.Warn("admin: delete video for %s: %v", listingID, err)
		}
	}

	uc.audit(adminID, "DELETE_LISTING", "listing", listingID, "")
	uc.publishChange("listing", listingID, "deleted")
	return nil
}

func (uc *adminUseCase) ListUsers() ([]*entity.ManagedUser, error) {
	users, err := uc.accountRepo.ListUsers()
	if err != nil {
		uc.logger.Error("admin: list users: %v", err)
		return nil, fmt.Errorf("failed to list users")
	}
	return users, nil
}

func (uc *adminUseCase) BlockUser(adminID, userID, reason string) error {
	if adminID == userID {
		return fmt.Errorf("cannot block your own account")
	}
	if err := uc.setAccountStatus(userID, "BLOCKED"); err != nil {
		return err
	}
	uc.audit(adminID, "BLOCK_USER", "user", userID, reason)
	return nil
}

func (uc *adminUseCase) UnblockUser(adminID, userID string) error {
	if err := uc.setAccountStatus(userID, "ACTIVE"); err != nil {
		return err
	}
	uc.audit(adminID, "UNBLOCK_USER", "user", userID, "")
	return nil
}

func (uc *adminUseCase) setAccountStatus(userID, status string) error {
	err := uc.accountRepo.SetAccountStatus(userID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user not found")
	}
	if err != nil {
		uc.logger.Error("admin: set user %s to %s: %v", userID, status, err)
		return fmt.Errorf("failed to update user")
	}
	return nil
}

func (uc *adminUseCase) ReviewDocument(adminID, userID string, approve bool, reason string) error {
	status := "VERIFIED"
	action := "VERIFY_DOCUMENT"
	if !approve {
		if reason == "" {
			return fmt.Errorf("rejection reason is required")
		}
		status = "REJECTED"
		action = "REJECT_DOCUMENT"
	}

	err := uc.accountRepo.SetDocumentStatus(userID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user not found")
	}
	if err != nil {
		uc.logger.Error("admin: review document for %s: %v", userID, err)
		return fmt.Errorf("failed to update document status")
	}

	uc.audit(adminID, action, "user", userID, reason)
	return nil
}

func (uc *adminUseCase) DeleteUser(adminID, userID string) error {
	if adminID == userID {
		return fmt.Errorf("cannot delete your own account")
	}

	err := uc.accountRepo.DeleteUserCascade(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user not found")
	}
	if err != nil {
		uc.logger.Error("admin: delete user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user")
	}

	uc.audit(adminID, "DELETE_USER", "user", userID, "")
	uc.publishChange("listing", userID, "deleted")
	return nil
}

func (uc *adminUseCase) RecentLogs(limit int) ([]*entity.AdminLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	logs, err := uc.logRepo.Recent(limit)
	if err != nil {
		uc.logger.Error("admin: load logs: %v", err)
		return nil, fmt.Errorf("failed to load admin logs")
	}
	return logs, nil
}

// RequestReset issues a short-lived token the same admin must echo back to
// ConfirmReset. One pending token at a time; requesting again replaces it.
func (uc *adminUseCase) RequestReset(adminID string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to issue reset token")
	}
	token := hex.EncodeToString(buf)

	uc.mu.Lock()
	uc.resetToken = token
	uc.resetAdmin = adminID
	uc.resetUntil = time.Now().Add(resetTokenTTL)
	uc.mu.Unlock()

	uc.audit(adminID, "REQUEST_RESET", "system", "", "")
	return token, nil
}

func (uc *adminUseCase) ConfirmReset(adminID, token string) error {
	uc.mu.Lock()
	valid := uc.resetToken != "" &&
		uc.resetToken == token &&
		uc.resetAdmin == adminID &&
		time.Now().Before(uc.resetUntil)
	uc.resetToken = ""
	uc.mu.Unlock()

	if !valid {
		return fmt.Errorf("invalid or expired reset token")
	}

	if err := uc.accountRepo.WipeAll(); err != nil {
		uc.logger.Error("admin: system reset: %v", err)
		return fmt.Errorf("failed to reset system")
	}

	uc.logger.Warn("admin: system reset executed by %s", adminID)
	uc.audit(adminID, "SYSTEM_RESET", "system", "", "")
	uc.publishChange("listing", "", "deleted")
	return nil
}

// audit never blocks the action it records.
func (uc *adminUseCase) audit(adminID, action, targetType, targetID, reason string) {
	err := uc.logRepo.Create(&entity.AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
	})
	if err != nil {
		uc.logger.Error("admin: write audit log for %s: %v", action, err)
	}
}

func (uc *adminUseCase) publishChange(entityName, id, action string) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		if err := uc.queueClient.PublishChange(queue.ChangeEvent{
			Entity:    entityName,
			EntityID:  id,
			Action:    action,
			Timestamp: time.Now(),
		}); err != nil {
			uc.logger.Warn("admin: publish %s.%s: %v", entityName, action, err)
		}
	}()
}
