package controllers

import (
	"errors"
	"log"

	"bedbook/config"
	"bedbook/constants"
	"bedbook/dto"
	"bedbook/models"
	"bedbook/response"
	"bedbook/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func toBlockedPeriodResponse(b models.BlockedPeriod) dto.BlockedPeriodResponse {
	return dto.BlockedPeriodResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		BlockType:  b.BlockType,
		RoomID:     b.RoomID,
		BedID:      b.BedID,
		FromDate:   b.FromDate.Format(constants.DateLayout),
		ToDate:     b.ToDate.Format(constants.DateLayout),
		Reason:     b.Reason,
	}
}

// CreateBlockedPeriod tạo khoảng chặn mới. Khoảng chặn không hủy reservation
// đã có, chỉ che availability từ lúc tạo trở đi.
func CreateBlockedPeriod(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.CreateBlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	property, ok := loadOwnedProperty(c, req.PropertyID, hostID)
	if !ok {
		return
	}

	fromDate, err := validator.ParseISODate(req.FromDate)
	if err != nil {
		response.BadRequest(c, "fromDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}
	toDate, err := validator.ParseISODate(req.ToDate)
	if err != nil {
		response.BadRequest(c, "toDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}

	block := models.BlockedPeriod{
		PropertyID: property.ID,
		BlockType:  req.BlockType,
		RoomID:     req.RoomID,
		BedID:      req.BedID,
		FromDate:   fromDate,
		ToDate:     toDate,
		Reason:     req.Reason,
	}

	if err := validator.ValidateBlockedPeriod(&block); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Tham chiếu room/bed phải thuộc topology hiện tại của property
	if block.BlockType == constants.BlockTypeBed && block.BedID != nil {
		if _, _, err := property.FindBed(*block.BedID); err != nil {
			response.BadRequest(c, "Giường không thuộc property này")
			return
		}
	}
	if block.BlockType == constants.BlockTypeRoom && block.RoomID != nil {
		found := false
		for _, r := range property.Rooms {
			if r.RoomID == *block.RoomID {
				found = true
				break
			}
		}
		if !found {
			response.BadRequest(c, "Phòng không thuộc property này")
			return
		}
	}

	if err := config.DB.Create(&block).Error; err != nil {
		log.Printf("Lỗi khi tạo khoảng chặn: %v", err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, toBlockedPeriodResponse(block))
}

// GetBlockedPeriods lấy danh sách khoảng chặn của property, chỉ chủ nhà xem
func GetBlockedPeriods(c *gin.Context) {
	hostID, _ := currentUser(c)

	propertyID := c.Query("propertyId")
	if propertyID == "" {
		response.BadRequest(c, "propertyId là bắt buộc")
		return
	}

	var property models.Property
	if err := config.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	if property.HostID != hostID {
		response.Forbidden(c)
		return
	}

	var blocks []models.BlockedPeriod
	if err := config.DB.Where("property_id = ?", property.ID).
		Order("from_date ASC").
		Find(&blocks).Error; err != nil {
		response.ServerError(c)
		return
	}

	results := make([]dto.BlockedPeriodResponse, 0, len(blocks))
	for _, b := range blocks {
		results = append(results, toBlockedPeriodResponse(b))
	}
	response.Success(c, results)
}

// DeleteBlockedPeriod xóa khoảng chặn
func DeleteBlockedPeriod(c *gin.Context) {
	hostID, _ := currentUser(c)

	var block models.BlockedPeriod
	if err := config.DB.First(&block, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var property models.Property
	if err := config.DB.First(&property, block.PropertyID).Error; err != nil {
		response.ServerError(c)
		return
	}
	if property.HostID != hostID {
		response.Forbidden(c)
		return
	}

	if err := config.DB.Delete(&block).Error; err != nil {
		log.Printf("Lỗi khi xóa khoảng chặn %d: %v", block.ID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(block.PropertyID)
	response.Success(c, nil)
}
