package service

import (
	"testing"

	"ojt-tracker/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.DailyLog{}, &model.WeeklyJournal{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) int {
	t.Helper()
	u := model.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&model.Profile{ID: u.ID, FullName: "Test User"}).Error)
	return u.ID
}

func seedLog(t *testing.T, db *gorm.DB, userID int, date string, hours float64, notes string) {
	t.Helper()
	require.NoError(t, db.Create(&model.DailyLog{
		UserID: userID, Date: date, HoursWorked: hours, Notes: notes,
	}).Error)
}
