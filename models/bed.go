package models

import "time"

type Bed struct {
	BedID    uint   `json:"id" gorm:"primaryKey"`
	RoomID   uint   `json:"roomId" gorm:"index"`
	Position int    `json:"position"`
	Label    string `json:"label"`
	// PricePerNight là giá mỗi đêm của giường, đơn vị nhỏ nhất của tiền tệ
	PricePerNight int `json:"pricePerNight"`
	// IsAvailable là cờ khóa cứng do chủ nhà đặt. Giường đang có reservation
	// trong một khoảng ngày KHÔNG tắt cờ này; xác nhận reservation thì có (xem
	// ReservationFacade.Confirm).
	IsAvailable bool      `json:"isAvailable" gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
