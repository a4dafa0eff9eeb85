package services

import (
	"strconv"
	"testing"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB mở một sqlite in-memory riêng cho mỗi test, schema được
// migrate đầy đủ. TranslateError bật giống kết nối thật để test được
// nhánh gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Booking{},
		&models.Post{},
		&models.Media{},
		&models.Comment{},
		&models.Follow{},
		&models.Like{},
	))
	return db
}

func testLogger() logger.Logger {
	return logger.NewDefaultLogger(logger.ErrorLevel)
}

func seedUser(t *testing.T, db *gorm.DB, role constants.Role) models.User {
	t.Helper()

	hashed, err := HashPassword("motmatkhau")
	require.NoError(t, err)

	user := models.User{
		Name:        "Người dùng test",
		Email:       uniqueEmail(t, db),
		Password:    hashed,
		Pseudo:      uniquePseudo(t, db),
		ProfileType: constants.ProfileTypePublic,
		Role:        role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func uniqueEmail(t *testing.T, db *gorm.DB) string {
	var count int64
	db.Model(&models.User{}).Count(&count)
	return "user" + strconv.FormatInt(count, 10) + "@example.com"
}

func uniquePseudo(t *testing.T, db *gorm.DB) string {
	var count int64
	db.Model(&models.User{}).Count(&count)
	return "pseudo" + strconv.FormatInt(count, 10)
}

func actorFor(user models.User) policy.Actor {
	return policy.Actor{ID: user.ID, Role: user.Role}
}

func seedHotel(t *testing.T, db *gorm.DB, name string, price float64) models.Hotel {
	t.Helper()

	hotel := models.Hotel{
		Name:           name,
		Location:       "Đà Nẵng",
		Description:    "Khách sạn test",
		PricePerNight:  price,
		TotalRooms:     10,
		AvailableRooms: 5,
		IsAvailable:    true,
	}
	require.NoError(t, db.Create(&hotel).Error)
	return hotel
}
