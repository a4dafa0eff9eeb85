package config

import (
	"fmt"
	"log"
	"os"

	"github.com/chabbasaad/4CITE-sub001/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func buildDSN() string {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		sslMode,
	)
}

func ConnectDB() {
	var err error
	// TranslateError để lỗi unique constraint nhận dạng được bằng
	// gorm.ErrDuplicatedKey thay vì parse message driver
	DB, err = gorm.Open(postgres.Open(buildDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Không kết nối được database: %v", err)
	}

	log.Println("Kết nối database thành công")
}

// Migrate tạo/cập nhật schema cho toàn bộ model.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Booking{},
		&models.Post{},
		&models.Media{},
		&models.Comment{},
		&models.Follow{},
		&models.Like{},
	)
	if err != nil {
		log.Fatalf("Lỗi migrate schema: %v", err)
	}
}
