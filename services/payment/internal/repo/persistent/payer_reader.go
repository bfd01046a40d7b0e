package persistent

import (
	"gorm.io/gorm"
)

type Payer struct {
	ID    string
	Email string
	Name  string
	CPF   string
}

type PayerReader interface {
	GetPayer(userID string) (*Payer, error)
}

type payerReader struct {
	db *gorm.DB
}

func NewPayerReader(db *gorm.DB) PayerReader {
	return &payerReader{db: db}
}

func (r *payerReader) GetPayer(userID string) (*Payer, error) {
	var row struct {
		ID    string
		Email string
		Name  string
		CPF   string
	}
	err := r.db.Table("users").
		Select("id", "email", "name", "cpf").
		Where("id = ?", userID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &Payer{ID: row.ID, Email: row.Email, Name: row.Name, CPF: row.CPF}, nil
}
