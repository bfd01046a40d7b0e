package persistent

import (
	"gorm.io/gorm"
)

// Owner is the slice of a user row the catalog denormalizes onto listings.
type Owner struct {
	ID        string
	Name      string
	AvatarURL string
	City      string
	State     string
	Blocked   bool
}

func (o *Owner) Region() string {
	if o.City == "" && o.State == "" {
		return ""
	}
	return o.City + " - " + o.State
}

type UserReader interface {
	GetOwner(id string) (*Owner, error)
}

type userReader struct {
	db *gorm.DB
}

func NewUserReader(db *gorm.DB) UserReader {
	return &userReader{db: db}
}

func (r *userReader) GetOwner(id string) (*Owner, error) {
	var row struct {
		ID            string
		Name          string
		AvatarURL     string
		City          string
		State         string
		AccountStatus string
	}
	err := r.db.Table("users").
		Select("id", "name", "avatar_url", "city", "state", "account_status").
		Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}

	return &Owner{
		ID:        row.ID,
		Name:      row.Name,
		AvatarURL: row.AvatarURL,
		City:      row.City,
		State:     row.State,
		Blocked:   row.AccountStatus == "BLOCKED",
	}, nil
}
