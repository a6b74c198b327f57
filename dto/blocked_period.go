package dto

// CreateBlockedPeriodRequest là DTO cho request tạo khoảng chặn; FromDate và
// ToDate là chuỗi ISO, bao gồm cả hai đầu
type CreateBlockedPeriodRequest struct {
	PropertyID uint   `json:"propertyId" binding:"required"`
	BlockType  int    `json:"blockType"`
	RoomID     *uint  `json:"roomId"`
	BedID      *uint  `json:"bedId"`
	FromDate   string `json:"fromDate" binding:"required"`
	ToDate     string `json:"toDate" binding:"required"`
	Reason     string `json:"reason"`
}

// BlockedPeriodResponse là DTO cho response khoảng chặn
type BlockedPeriodResponse struct {
	ID         uint   `json:"id"`
	PropertyID uint   `json:"propertyId"`
	BlockType  int    `json:"blockType"`
	RoomID     *uint  `json:"roomId"`
	BedID      *uint  `json:"bedId"`
	FromDate   string `json:"fromDate"`
	ToDate     string `json:"toDate"`
	Reason     string `json:"reason"`
}
