package persistent

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/auth/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/model"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(userID, hashedPassword string) error
	SetRecoveryCode(userID, code string, expires time.Time) error
	GetRecoveryCode(userID string) (string, *time.Time, error)
	ClearRecoveryCode(userID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Model(&model.UserModel{}).Where("id = ?", userModel.ID).
		Omit("password", "created_at").Updates(userModel).Error
}

func (r *userRepository) UpdatePassword(userID, hashedPassword string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *userRepository) SetRecoveryCode(userID, code string, expires time.Time) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"recovery_code": code, "recovery_expires": expires}).Error
}

func (r *userRepository) GetRecoveryCode(userID string) (string, *time.Time, error) {
	var userModel model.UserModel
	if err := r.db.Select("recovery_code", "recovery_expires").Where("id = ?", userID).First(&userModel).Error; err != nil {
		return "", nil, err
	}
	return userModel.RecoveryCode, userModel.RecoveryExpires, nil
}

func (r *userRepository) ClearRecoveryCode(userID string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"recovery_code": "", "recovery_expires": nil}).Error
}
