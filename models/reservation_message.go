package models

import "time"

// ReservationMessage là tin nhắn giữa khách và chủ nhà trong một reservation,
// chỉ thêm không sửa (append-only).
type ReservationMessage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservationId" gorm:"index"`
	SenderID      uint      `json:"senderId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
