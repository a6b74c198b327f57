package dto

import "time"

// CreateReservationRequest là DTO cho request đặt chỗ. BedIds rỗng là đặt
// nguyên căn. Giá không nhận từ client, server tự tính từ giá giường.
type CreateReservationRequest struct {
	PropertyID   uint   `json:"propertyId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	BedIDs       []uint `json:"bedIds"`
}

// BookedBedResponse là DTO cho một giường trong reservation
type BookedBedResponse struct {
	RoomID   uint   `json:"roomId"`
	BedID    uint   `json:"bedId"`
	BedLabel string `json:"bedLabel"`
}

// ReservationResponse là DTO chi tiết reservation cho các bên liên quan
type ReservationResponse struct {
	ID            uint                `json:"id"`
	PropertyID    uint                `json:"propertyId"`
	PropertyName  string              `json:"propertyName"`
	GuestID       uint                `json:"guestId"`
	HostID        uint                `json:"hostId"`
	CheckInDate   string              `json:"checkInDate"`
	CheckOutDate  string              `json:"checkOutDate"`
	Status        int                 `json:"status"`
	TotalPrice    float64             `json:"totalPrice"`
	BookedBeds    []BookedBedResponse `json:"bookedBeds"`
	Messages      []MessageResponse   `json:"messages,omitempty"`
	UnreadByGuest bool                `json:"unreadByGuest"`
	UnreadByHost  bool                `json:"unreadByHost"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ReservationPublicResponse là DTO công khai cho list theo property: chỉ
// khoảng ngày và trạng thái, không lộ thông tin khách
type ReservationPublicResponse struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Status       int    `json:"status"`
}

// PostMessageRequest là DTO cho request gửi tin nhắn trong reservation
type PostMessageRequest struct {
	ReservationID uint   `json:"reservationId" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

// MessageResponse là DTO cho một tin nhắn
type MessageResponse struct {
	ID        uint      `json:"id"`
	SenderID  uint      `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
