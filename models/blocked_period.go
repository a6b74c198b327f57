package models

import "time"

// BlockedPeriod là khoảng chặn do chủ nhà khai báo, độc lập với reservation.
// FromDate và ToDate tính theo ngày, bao gồm cả hai đầu (inclusive).
type BlockedPeriod struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	PropertyID uint `json:"propertyId" gorm:"index"`
	// BlockType: 0 entire, 1 room, 2 bed. RoomID/BedID bắt buộc tương ứng.
	BlockType int       `json:"blockType"`
	RoomID    *uint     `json:"roomId"`
	BedID     *uint     `json:"bedId"`
	FromDate  time.Time `json:"fromDate" gorm:"index"`
	ToDate    time.Time `json:"toDate" gorm:"index"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
