package persistent

import (
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/auth/internal/model"
)

// PaymentRepository gives the auth service read access to approved payments
// so premium activation can verify the subscription fee was actually paid.
type PaymentRepository interface {
	GetApproved(gatewayID int64, userID string) (*model.PaymentModel, error)
	MarkConsumed(gatewayID int64) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetApproved(gatewayID int64, userID string) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := r.db.Where("gateway_id = ? AND user_id = ? AND status = ? AND consumed = ?",
		gatewayID, userID, "approved", false).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) MarkConsumed(gatewayID int64) error {
	return r.db.Model(&model.PaymentModel{}).Where("gateway_id = ?", gatewayID).
		Update("consumed", true).Error
}
