package persistent

import (
	"time"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/payment/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/model"
)

type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByGatewayID(gatewayID int64) (*entity.Payment, error)
	GetByUser(userID string) ([]*entity.Payment, error)
	UpdateStatus(gatewayID int64, status entity.PaymentStatus) error
	MarkConsumed(gatewayID int64) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *entity.Payment) error {
	paymentModel := toModel(payment)
	if err := r.db.Create(paymentModel).Error; err != nil {
		return err
	}
	*payment = *toEntity(paymentModel)
	return nil
}

func (r *paymentRepository) GetByGatewayID(gatewayID int64) (*entity.Payment, error) {
	var paymentModel model.PaymentModel
	if err := r.db.Where("gateway_id = ?", gatewayID).First(&paymentModel).Error; err != nil {
		return nil, err
	}
	return toEntity(&paymentModel), nil
}

func (r *paymentRepository) GetByUser(userID string) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*entity.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = toEntity(&paymentModels[i])
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatus(gatewayID int64, status entity.PaymentStatus) error {
	return r.db.Model(&model.PaymentModel{}).Where("gateway_id = ?", gatewayID).
		Update("status", string(status)).Error
}

func (r *paymentRepository) MarkConsumed(gatewayID int64) error {
	return r.db.Model(&model.PaymentModel{}).Where("gateway_id = ?", gatewayID).
		Update("consumed", true).Error
}

func toEntity(m *model.PaymentModel) *entity.Payment {
	if m == nil {
		return nil
	}
	return &entity.Payment{
		ID:        m.ID,
		GatewayID: m.GatewayID,
		UserID:    m.UserID,
		Purpose:   entity.Purpose(m.Purpose),
		Amount:    m.Amount,
		Status:    entity.PaymentStatus(m.Status),
		TargetID:  m.TargetID,
		Consumed:  m.Consumed,
		CreatedAt: m.CreatedAt,
	}
}

func toModel(e *entity.Payment) *model.PaymentModel {
	if e == nil {
		return nil
	}
	return &model.PaymentModel{
		ID:        e.ID,
		GatewayID: e.GatewayID,
		UserID:    e.UserID,
		Purpose:   string(e.Purpose),
		Amount:    e.Amount,
		Status:    string(e.Status),
		TargetID:  e.TargetID,
		Consumed:  e.Consumed,
		CreatedAt: e.CreatedAt,
	}
}

// EffectApplier runs the side effect a purpose pays for once the gateway
// confirms. Highlights are applied directly; fee and subscription payments
// are consumed later by the service that gates on them.
type EffectApplier interface {
	ApplyHighlight(listingID string, until time.Time) error
}

type effectApplier struct {
	db *gorm.DB
}

func NewEffectApplier(db *gorm.DB) EffectApplier {
	return &effectApplier{db: db}
}

func (a *effectApplier) ApplyHighlight(listingID string, until time.Time) error {
	return a.db.Table("listings").Where("id = ?", listingID).
		Updates(map[string]interface{}{
			"is_highlight":      true,
			"highlight_expires": until,
		}).Error
}
