package persistent

import (
	"gorm.io/gorm"
)

// UserLite is the subset of a user row the negotiation rules need.
type UserLite struct {
	ID       string
	Name     string
	Whatsapp string
	Plan     string
	Blocked  bool
}

type UserReader interface {
	GetUserLite(id string) (*UserLite, error)
}

// ListingLite mirrors the columns negotiation reads from the catalog table.
type ListingLite struct {
	ID      string
	OwnerID string
	Title   string
	Status  string
}

type ListingReader interface {
	GetListingLite(id string) (*ListingLite, error)
}

// PaymentGate verifies and consumes negotiation-fee payments. Each approved
// payment backs exactly one proposal.
type PaymentGate interface {
	ConsumeApproved(gatewayID int64, userID, purpose string) error
}

type dbReaders struct {
	db *gorm.DB
}

func NewUserReader(db *gorm.DB) UserReader       { return &dbReaders{db: db} }
func NewListingReader(db *gorm.DB) ListingReader { return &dbReaders{db: db} }
func NewPaymentGate(db *gorm.DB) PaymentGate     { return &dbReaders{db: db} }

func (r *dbReaders) GetUserLite(id string) (*UserLite, error) {
	var row struct {
		ID            string
		Name          string
		Whatsapp      string
		Plan          string
		AccountStatus string
	}
	err := r.db.Table("users").
		Select("id", "name", "whatsapp", "plan", "account_status").
		Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}

	return &UserLite{
		ID:       row.ID,
		Name:     row.Name,
		Whatsapp: row.Whatsapp,
		Plan:     row.Plan,
		Blocked:  row.AccountStatus == "BLOCKED",
	}, nil
}

func (r *dbReaders) GetListingLite(id string) (*ListingLite, error) {
	var row ListingLite
	err := r.db.Table("listings").
		Select("id", "owner_id", "title", "status").
		Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ConsumeApproved flips the consumed flag on an approved payment of the given
// purpose; the guarded UPDATE makes concurrent double-spends lose the race.
func (r *dbReaders) ConsumeApproved(gatewayID int64, userID, purpose string) error {
	res := r.db.Table("payments").
		Where("gateway_id = ? AND user_id = ? AND purpose = ? AND status = ? AND consumed = ?",
			gatewayID, userID, purpose, "approved", false).
		Update("consumed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
