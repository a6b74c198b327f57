package dto

import (
	"encoding/json"
	"time"

	"bedbook/models"
)

// CreatePropertyRequest là DTO cho request tạo property
type CreatePropertyRequest struct {
	Name             string          `json:"name" binding:"required"`
	Address          string          `json:"address"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	PricePerNight    int             `json:"pricePerNight"`
}

// UpdatePropertyRequest là DTO cho request cập nhật property
type UpdatePropertyRequest struct {
	ID               uint            `json:"id" binding:"required"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	PricePerNight    int             `json:"pricePerNight"`
}

// PropertyResponse là DTO cho response tóm tắt property
type PropertyResponse struct {
	ID               uint      `json:"id"`
	HostID           uint      `json:"hostId"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Province         string    `json:"province"`
	District         string    `json:"district"`
	ShortDescription string    `json:"shortDescription"`
	Avatar           string    `json:"avatar"`
	PricePerNight    int       `json:"pricePerNight"`
	IsActive         bool      `json:"isActive"`
	NumRooms         int       `json:"numRooms"`
	NumBeds          int       `json:"numBeds"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PropertyDetailResponse là DTO cho response chi tiết property kèm topology
type PropertyDetailResponse struct {
	PropertyResponse
	Description string          `json:"description"`
	Img         json.RawMessage `json:"img"`
	Rooms       []RoomResponse  `json:"rooms"`
}

// ScoredProperty là property kèm điểm phù hợp khi tìm kiếm gần đúng
type ScoredProperty struct {
	Property models.Property `json:"property"`
	Score    int             `json:"score"`
}
