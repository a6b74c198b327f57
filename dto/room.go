package dto

import "time"

// CreateRoomRequest là DTO cho request tạo phòng
type CreateRoomRequest struct {
	PropertyID uint   `json:"propertyId" binding:"required"`
	RoomName   string `json:"roomName" binding:"required"`
	IsPrivate  bool   `json:"isPrivate"`
}

// UpdateRoomRequest là DTO cho request cập nhật phòng
type UpdateRoomRequest struct {
	RoomID    uint   `json:"roomId" binding:"required"`
	RoomName  string `json:"roomName"`
	IsPrivate *bool  `json:"isPrivate"`
	Position  *int   `json:"position"`
}

// RoomResponse là DTO cho response phòng kèm giường
type RoomResponse struct {
	RoomID    uint          `json:"id"`
	RoomName  string        `json:"roomName"`
	Position  int           `json:"position"`
	IsPrivate bool          `json:"isPrivate"`
	Beds      []BedResponse `json:"beds"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateBedRequest là DTO cho request tạo giường
type CreateBedRequest struct {
	RoomID        uint   `json:"roomId" binding:"required"`
	Label         string `json:"label" binding:"required"`
	PricePerNight int    `json:"pricePerNight" binding:"required"`
}

// UpdateBedRequest là DTO cho request cập nhật giường; IsAvailable là cờ khóa
// cứng của chủ nhà
type UpdateBedRequest struct {
	BedID         uint   `json:"bedId" binding:"required"`
	Label         string `json:"label"`
	PricePerNight *int   `json:"pricePerNight"`
	IsAvailable   *bool  `json:"isAvailable"`
	Position      *int   `json:"position"`
}

// BedResponse là DTO cho response giường
type BedResponse struct {
	BedID         uint   `json:"id"`
	RoomID        uint   `json:"roomId"`
	Position      int    `json:"position"`
	Label         string `json:"label"`
	PricePerNight int    `json:"pricePerNight"`
	IsAvailable   bool   `json:"isAvailable"`
}
