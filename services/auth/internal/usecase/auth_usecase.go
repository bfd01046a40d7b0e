package usecase

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/elnathantransportes-ai/troca/pkg/genai"
	"github.com/elnathantransportes-ai/troca/pkg/jwt"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/pix"
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/repo/persistent"
)

const recoveryCodeTTL = 15 * time.Minute

type ProfileUpdate struct {
	Name         string
	Whatsapp     string
	City         string
	State        string
	SeenTutorial *bool
}

type AuthUseCase interface {
	Register(name, email, password, cpf, city, state string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
	UploadDocument(ctx context.Context, userID string, imageData []byte, fileKey string) (*entity.User, error)
	RequestPasswordReset(email string) error
	ResetPassword(email, code, newPassword string) error
	ActivatePremium(userID string, paymentID int64) (*entity.User, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	paymentRepo persistent.PaymentRepository
	jwtService  *jwt.Service
	s3Client    *s3.Client
	moderator   genai.Moderator
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	paymentRepo persistent.PaymentRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	moderator genai.Moderator,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		jwtService:  jwtService,
		s3Client:    s3Client,
		moderator:   moderator,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(name, email, password, cpf, city, state string) (*entity.User, string, error) {
	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("user with this email already exists")
	}

	if cpf != "" {
		sanitized, err := pix.SanitizeCPF(cpf)
		if err != nil {
			return nil, "", fmt.Errorf("invalid CPF")
		}
		cpf = sanitized
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Name:           name,
		Email:          email,
		Password:       string(hashedPassword),
		CPF:            cpf,
		City:           city,
		State:          state,
		Role:           entity.RoleUser,
		Plan:           entity.PlanFree,
		AccountStatus:  entity.AccountActive,
		DocumentStatus: entity.DocumentNotSent,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if user.IsBlocked() {
		return nil, "", fmt.Errorf("account is blocked")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Whatsapp != "" {
		user.Whatsapp = update.Whatsapp
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.SeenTutorial != nil {
		user.SeenTutorial = *update.SeenTutorial
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

// UploadDocument stores an identification document and queues it for review.
// The AI legibility check runs first so obviously unreadable uploads are
// rejected immediately instead of wasting a reviewer's time.
func (uc *authUseCase) UploadDocument(ctx context.Context, userID string, imageData []byte, fileKey string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	quality := uc.moderator.VerifyDocument(ctx, imageData)
	if !quality.Valid {
		user.DocumentStatus = entity.DocumentRejected
		if err := uc.userRepo.Update(user); err != nil {
			uc.logger.Error("Failed to update user: %v", err)
		}
		return nil, fmt.Errorf("document rejected: %s", quality.Reason)
	}

	if _, err := uc.s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg"); err != nil {
		uc.logger.Error("Failed to upload document: %v", err)
		return nil, fmt.Errorf("failed to upload document")
	}

	user.DocumentStatus = entity.DocumentPending
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) RequestPasswordReset(email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email is registered.
		return nil
	}

	code, err := generateRecoveryCode()
	if err != nil {
		uc.logger.Error("Failed to generate recovery code: %v", err)
		return fmt.Errorf("failed to start password recovery")
	}

	expires := time.Now().Add(recoveryCodeTTL)
	if err := uc.userRepo.SetRecoveryCode(user.ID, code, expires); err != nil {
		uc.logger.Error("Failed to store recovery code: %v", err)
		return fmt.Errorf("failed to start password recovery")
	}

	// Delivery is out of band (WhatsApp bot). The code lands in the log for
	// local development.
	uc.logger.Info("Recovery code for %s issued, expires at %s", email, expires.Format(time.RFC3339))
	return nil
}

func (uc *authUseCase) ResetPassword(email, code, newPassword string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("invalid recovery code")
	}

	stored, expires, err := uc.userRepo.GetRecoveryCode(user.ID)
	if err != nil || stored == "" || stored != code {
		return fmt.Errorf("invalid recovery code")
	}
	if expires == nil || time.Now().After(*expires) {
		return fmt.Errorf("recovery code expired")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to reset password")
	}

	if err := uc.userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		uc.logger.Error("Failed to update password: %v", err)
		return fmt.Errorf("failed to reset password")
	}

	if err := uc.userRepo.ClearRecoveryCode(user.ID); err != nil {
		uc.logger.Warn("Failed to clear recovery code for %s: %v", user.ID, err)
	}
	return nil
}

// ActivatePremium upgrades the user after verifying an approved, unconsumed
// subscription payment. The payment is consumed so it cannot be replayed.
func (uc *authUseCase) ActivatePremium(userID string, paymentID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	payment, err := uc.paymentRepo.GetApproved(paymentID, userID)
	if err != nil {
		return nil, fmt.Errorf("payment not confirmed")
	}
	if payment.Purpose != "PREMIUM_SUB" {
		return nil, fmt.Errorf("payment not confirmed")
	}

	if err := uc.paymentRepo.MarkConsumed(paymentID); err != nil {
		uc.logger.Error("Failed to consume payment %d: %v", paymentID, err)
		return nil, fmt.Errorf("failed to activate premium")
	}

	now := time.Now()
	user.Plan = entity.PlanPremium
	user.PlanStartedAt = &now
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to activate premium")
	}

	user.Password = ""
	return user, nil
}

func generateRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
