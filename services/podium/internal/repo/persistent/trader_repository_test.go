package persistent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type userRow struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	AvatarURL       string
	City            string
	State           string
	AccountStatus   string
	Reputation      int
	TradesCompleted int
}

func (userRow) TableName() string { return "users" }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&userRow{}))
	db.Exec("DELETE FROM users")

	return db
}

func TestTopTraders_OrdersByDerivedScore(t *testing.T) {
	db := setupTestDB(t)

	// 40 + 8*5 = 80 beats 50 + 2*5 = 60: trades outweigh raw reputation.
	require.NoError(t, db.Create(&userRow{ID: "trader", Name: "Maria", AccountStatus: "ACTIVE", Reputation: 40, TradesCompleted: 8}).Error)
	require.NoError(t, db.Create(&userRow{ID: "talker", Name: "Joao", AccountStatus: "ACTIVE", Reputation: 50, TradesCompleted: 2}).Error)
	require.NoError(t, db.Create(&userRow{ID: "newbie", Name: "Ana", AccountStatus: "ACTIVE", Reputation: 1, TradesCompleted: 0}).Error)

	traders, err := NewTraderRepository(db).TopTraders(10)

	require.NoError(t, err)
	require.Len(t, traders, 3)
	assert.Equal(t, "trader", traders[0].UserID)
	assert.Equal(t, 80, traders[0].Score)
	assert.Equal(t, "talker", traders[1].UserID)
	assert.Equal(t, 60, traders[1].Score)
	assert.Equal(t, "newbie", traders[2].UserID)
}

func TestTopTraders_ExcludesBlockedAndHonorsLimit(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&userRow{ID: "banned", Name: "Troll", AccountStatus: "BLOCKED", Reputation: 999, TradesCompleted: 99}).Error)
	require.NoError(t, db.Create(&userRow{ID: "a", Name: "A", AccountStatus: "ACTIVE", Reputation: 30}).Error)
	require.NoError(t, db.Create(&userRow{ID: "b", Name: "B", AccountStatus: "ACTIVE", Reputation: 20}).Error)
	require.NoError(t, db.Create(&userRow{ID: "c", Name: "C", AccountStatus: "ACTIVE", Reputation: 10}).Error)

	traders, err := NewTraderRepository(db).TopTraders(2)

	require.NoError(t, err)
	require.Len(t, traders, 2)
	assert.Equal(t, "a", traders[0].UserID)
	assert.Equal(t, "b", traders[1].UserID)
}

func TestTopTraders_TiesBreakOnUserID(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&userRow{ID: "z-user", Name: "Z", AccountStatus: "ACTIVE", Reputation: 10}).Error)
	require.NoError(t, db.Create(&userRow{ID: "a-user", Name: "A", AccountStatus: "ACTIVE", Reputation: 10}).Error)

	traders, err := NewTraderRepository(db).TopTraders(10)

	require.NoError(t, err)
	require.Len(t, traders, 2)
	assert.Equal(t, "a-user", traders[0].UserID)
}
