package services

import (
	"fmt"
	"testing"
	"time"

	"bedbook/constants"
	"bedbook/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB mở một database sqlite in-memory riêng cho từng test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Room{},
		&models.Bed{},
		&models.BlockedPeriod{},
		&models.Reservation{},
		&models.BookedBed{},
		&models.ReservationMessage{},
	))
	return db
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(constants.DateLayout, s)
	require.NoError(t, err)
	return parsed
}

// seedProperty tạo một property đang hoạt động với một phòng hai giường
// (giá 30 và 40 mỗi đêm) và trả về property đã preload topology
func seedProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()

	host := models.User{Name: "Chủ nhà", Email: "host@example.com", Role: constants.RoleHost}
	require.NoError(t, db.Create(&host).Error)
	guest := models.User{Name: "Khách", Email: "guest@example.com", Role: constants.RoleGuest}
	require.NoError(t, db.Create(&guest).Error)

	property := models.Property{
		HostID:        host.ID,
		Name:          "Nhà trọ Sài Gòn",
		Province:      "Hồ Chí Minh",
		District:      "Quận 1",
		PricePerNight: 100,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&property).Error)

	room := models.Room{PropertyID: property.ID, RoomName: "Phòng dorm", Position: 0}
	require.NoError(t, db.Create(&room).Error)

	bedA := models.Bed{RoomID: room.RoomID, Position: 0, Label: "Giường A", PricePerNight: 30, IsAvailable: true}
	bedB := models.Bed{RoomID: room.RoomID, Position: 1, Label: "Giường B", PricePerNight: 40, IsAvailable: true}
	require.NoError(t, db.Create(&bedA).Error)
	require.NoError(t, db.Create(&bedB).Error)

	var loaded models.Property
	require.NoError(t, db.Preload("Rooms.Beds").Preload("BlockedPeriods").First(&loaded, property.ID).Error)
	return &loaded
}

func guestID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	var guest models.User
	require.NoError(t, db.Where("role = ?", constants.RoleGuest).First(&guest).Error)
	return guest.ID
}
