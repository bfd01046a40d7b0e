package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Listing{}, &Proposal{}, &ChatMessage{}, &Payment{}, &AdminLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUser_BeforeCreate_AssignsID(t *testing.T) {
	db := setupTestDB(t)

	user := &User{Name: "Maria", Email: "maria@example.com", Password: "hash"}
	err := db.Create(user).Error

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, PlanFree, user.Plan)
	assert.Equal(t, AccountActive, user.AccountStatus)
}

func TestUser_Region(t *testing.T) {
	user := &User{City: "Campinas", State: "SP"}
	assert.Equal(t, "Campinas - SP", user.Region())
}

func TestListing_Defaults(t *testing.T) {
	db := setupTestDB(t)

	listing := &Listing{OwnerID: "owner-1", Title: "BIKE ARO 29", Value: 800, Type: ListingTrade}
	err := db.Create(listing).Error

	assert.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, ListingPending, listing.Status)
	assert.False(t, listing.IsHighlight)
}

func TestProposal_Defaults(t *testing.T) {
	db := setupTestDB(t)

	proposal := &Proposal{ListingID: "ad-1", OwnerID: "owner-1", BidderID: "bidder-1"}
	err := db.Create(proposal).Error

	assert.NoError(t, err)
	assert.Equal(t, ProposalOpen, proposal.Status)
	assert.False(t, proposal.ContactUnlocked)
}
