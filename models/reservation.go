package models

import (
	"time"
)

// Reservation status constants
const (
	ReservationStatusPending   = 0
	ReservationStatusConfirmed = 1
	ReservationStatusCancelled = 2
	ReservationStatusRejected  = 3
)

type Reservation struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	PropertyID uint     `json:"propertyId" gorm:"index"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID"`
	GuestID    uint     `json:"guestId" gorm:"index"`
	Guest      User     `json:"guest" gorm:"foreignKey:GuestID"`
	HostID     uint     `json:"hostId" gorm:"index"`
	// CheckOutDate là ngày trả phòng: khoảng chiếm giữ là [CheckInDate, CheckOutDate)
	CheckInDate  time.Time `json:"checkInDate" gorm:"index"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"index"`
	Status       int       `json:"status" gorm:"index"`
	TotalPrice   float64   `json:"totalPrice"`
	// BookedBeds rỗng nghĩa là đặt nguyên căn, không phải "chưa chọn giường"
	BookedBeds    []BookedBed          `json:"bookedBeds" gorm:"foreignKey:ReservationID"`
	Messages      []ReservationMessage `json:"messages" gorm:"foreignKey:ReservationID"`
	UnreadByGuest bool                 `json:"unreadByGuest" gorm:"default:false"`
	UnreadByHost  bool                 `json:"unreadByHost" gorm:"default:false"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BookedBed là một giường cụ thể trong reservation, tham chiếu RoomID/BedID
// bền vững; BedLabel là snapshot tại thời điểm đặt để hiển thị.
type BookedBed struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ReservationID uint   `json:"reservationId" gorm:"index"`
	RoomID        uint   `json:"roomId"`
	BedID         uint   `json:"bedId" gorm:"index"`
	BedLabel      string `json:"bedLabel"`
}

// IsWholeProperty reservation chiếm nguyên căn khi không tham chiếu giường nào
func (r *Reservation) IsWholeProperty() bool {
	return len(r.BookedBeds) == 0
}

// ReferencesBed kiểm tra reservation có giữ giường bedID không (nguyên căn giữ
// mọi giường)
func (r *Reservation) ReferencesBed(bedID uint) bool {
	if r.IsWholeProperty() {
		return true
	}
	for _, bb := range r.BookedBeds {
		if bb.BedID == bedID {
			return true
		}
	}
	return false
}

// Nights số đêm của reservation
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
