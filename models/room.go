package models

import "time"

type Room struct {
	RoomID     uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"propertyId" gorm:"index"`
	RoomName   string    `json:"roomName"`
	// Position là thứ tự hiển thị, không dùng làm định danh. Mọi tham chiếu
	// (BookedBed, BlockedPeriod) đi qua RoomID/BedID bền vững.
	Position  int       `json:"position"`
	IsPrivate bool      `json:"isPrivate"`
	Beds      []Bed     `json:"beds" gorm:"foreignKey:RoomID"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
