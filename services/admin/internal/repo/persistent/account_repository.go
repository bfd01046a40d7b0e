package persistent

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/services/admin/internal/entity"
)

type AccountRepository interface {
	GetUser(id string) (*entity.ManagedUser, error)
	ListUsers() ([]*entity.ManagedUser, error)
	SetAccountStatus(id, status string) error
	SetDocumentStatus(id, status string) error
	DeleteUserCascade(id string) error
	WipeAll() error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

type userRow struct {
	ID              string
	Name            string
	Email           string
	Role            string
	Plan            string
	AccountStatus   string
	DocumentStatus  string
	DocumentURL     string
	TradesCompleted int
	CreatedAt       time.Time
}

func (row userRow) toEntity() *entity.ManagedUser {
	return &entity.ManagedUser{
		ID:              row.ID,
		Name:            row.Name,
		Email:           row.Email,
		Role:            row.Role,
		Plan:            row.Plan,
		AccountStatus:   row.AccountStatus,
		DocumentStatus:  row.DocumentStatus,
		DocumentURL:     row.DocumentURL,
		TradesCompleted: row.TradesCompleted,
		CreatedAt:       row.CreatedAt,
	}
}

var userColumns = []string{
	"id", "name", "email", "role", "plan", "account_status",
	"document_status", "document_url", "trades_completed", "created_at",
}

func (r *accountRepository) GetUser(id string) (*entity.ManagedUser, error) {
	var row userRow
	err := r.db.Table("users").
		Select(userColumns).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *accountRepository) ListUsers() ([]*entity.ManagedUser, error) {
	var rows []userRow
	err := r.db.Table("users").
		Select(userColumns).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*entity.ManagedUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *accountRepository) SetAccountStatus(id, status string) error {
	return r.setColumn(id, "account_status", status)
}

func (r *accountRepository) SetDocumentStatus(id, status string) error {
	return r.setColumn(id, "document_status", status)
}

func (r *accountRepository) setColumn(id, column, value string) error {
	result := r.db.Table("users").Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUserCascade removes the user and every listing they own in one
// transaction. Proposals and chat messages survive so counterparties keep
// their negotiation history.
func (r *accountRepository) DeleteUserCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM listings WHERE owner_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user listings: %w", err)
		}

		result := tx.Exec("DELETE FROM users WHERE id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// WipeAll empties every marketplace table except operator accounts. Callers
// gate this behind the double-confirmation flow.
func (r *accountRepository) WipeAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tables := []string{"chat_messages", "proposals", "payments", "listings", "admin_logs"}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to wipe %s: %w", table, err)
			}
		}

		if err := tx.Exec("DELETE FROM users WHERE role = ?", "USER").Error; err != nil {
			return fmt.Errorf("failed to wipe users: %w", err)
		}
		return nil
	})
}
