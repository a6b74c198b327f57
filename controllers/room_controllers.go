package controllers

import (
	"errors"
	"log"
	"time"

	"bedbook/config"
	"bedbook/dto"
	"bedbook/models"
	"bedbook/response"
	"bedbook/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadOwnedProperty lấy property và kiểm tra quyền sở hữu của chủ nhà
func loadOwnedProperty(c *gin.Context, propertyID, hostID uint) (*models.Property, bool) {
	var property models.Property
	if err := config.DB.Preload("Rooms.Beds").First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return nil, false
		}
		response.ServerError(c)
		return nil, false
	}
	if property.HostID != hostID {
		response.Forbidden(c)
		return nil, false
	}
	return &property, true
}

// bedHasFutureReservations kiểm tra giường còn reservation đang giữ (pending
// hoặc confirmed) chưa trả phòng không. Đặt nguyên căn giữ mọi giường nên cũng
// tính.
func bedHasFutureReservations(propertyID uint, bedID *uint) (bool, error) {
	today := time.Now().Truncate(24 * time.Hour)

	var reservations []models.Reservation
	if err := config.DB.Preload("BookedBeds").
		Where("property_id = ? AND status IN ? AND check_out_date > ?",
			propertyID,
			[]int{models.ReservationStatusPending, models.ReservationStatusConfirmed},
			today).
		Find(&reservations).Error; err != nil {
		return false, err
	}

	for i := range reservations {
		if bedID == nil {
			return true, nil
		}
		if reservations[i].ReferencesBed(*bedID) {
			return true, nil
		}
	}
	return false, nil
}

// CreateRoom tạo phòng mới trong property. Thêm phòng đầu tiên sẽ mở property
// nhận đặt chỗ.
func CreateRoom(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	property, ok := loadOwnedProperty(c, req.PropertyID, hostID)
	if !ok {
		return
	}

	room := models.Room{
		PropertyID: property.ID,
		RoomName:   req.RoomName,
		Position:   len(property.Rooms),
		IsPrivate:  req.IsPrivate,
	}

	if err := validator.ValidateRoom(&room); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		if !property.IsActive {
			return tx.Model(property).Update("is_active", true).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Lỗi khi tạo phòng: %v", err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, toRoomResponse(room))
}

// UpdateRoom cập nhật phòng; Position chỉ là thứ tự hiển thị nên đổi tùy ý,
// không ảnh hưởng reservation đang tham chiếu RoomID
func UpdateRoom(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var room models.Room
	if err := config.DB.Preload("Beds").First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if _, ok := loadOwnedProperty(c, room.PropertyID, hostID); !ok {
		return
	}

	if req.RoomName != "" {
		room.RoomName = req.RoomName
	}
	if req.IsPrivate != nil {
		room.IsPrivate = *req.IsPrivate
	}
	if req.Position != nil {
		room.Position = *req.Position
	}

	if err := config.DB.Save(&room).Error; err != nil {
		log.Printf("Lỗi khi cập nhật phòng %d: %v", room.RoomID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(room.PropertyID)
	response.Success(c, toRoomResponse(room))
}

// DeleteRoom xóa phòng. Không xóa được khi phòng còn giường có reservation
// đang giữ; xóa phòng cuối cùng sẽ đóng property.
func DeleteRoom(c *gin.Context) {
	hostID, _ := currentUser(c)

	var room models.Room
	if err := config.DB.Preload("Beds").First(&room, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	property, ok := loadOwnedProperty(c, room.PropertyID, hostID)
	if !ok {
		return
	}

	for i := range room.Beds {
		held, err := bedHasFutureReservations(property.ID, &room.Beds[i].BedID)
		if err != nil {
			response.ServerError(c)
			return
		}
		if held {
			response.Conflict(c, "Phòng còn giường đang có reservation, không thể xóa")
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.RoomID).Delete(&models.Bed{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&room).Error; err != nil {
			return err
		}
		if len(property.Rooms) <= 1 {
			return tx.Model(property).Update("is_active", false).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Lỗi khi xóa phòng %d: %v", room.RoomID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, nil)
}

// CreateBed tạo giường mới trong phòng
func CreateBed(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.CreateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var room models.Room
	if err := config.DB.Preload("Beds").First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if _, ok := loadOwnedProperty(c, room.PropertyID, hostID); !ok {
		return
	}

	bed := models.Bed{
		RoomID:        room.RoomID,
		Position:      len(room.Beds),
		Label:         req.Label,
		PricePerNight: req.PricePerNight,
		IsAvailable:   true,
	}

	if err := validator.ValidateBed(&bed); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := config.DB.Create(&bed).Error; err != nil {
		log.Printf("Lỗi khi tạo giường: %v", err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(room.PropertyID)
	response.Success(c, dto.BedResponse{
		BedID:         bed.BedID,
		RoomID:        bed.RoomID,
		Position:      bed.Position,
		Label:         bed.Label,
		PricePerNight: bed.PricePerNight,
		IsAvailable:   bed.IsAvailable,
	})
}

// UpdateBed cập nhật giường. IsAvailable là cờ khóa cứng: tắt thì giường biến
// mất khỏi kết quả availability cho tới khi bật lại.
func UpdateBed(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.UpdateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var bed models.Bed
	if err := config.DB.First(&bed, req.BedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var room models.Room
	if err := config.DB.First(&room, bed.RoomID).Error; err != nil {
		response.ServerError(c)
		return
	}

	if _, ok := loadOwnedProperty(c, room.PropertyID, hostID); !ok {
		return
	}

	if req.Label != "" {
		bed.Label = req.Label
	}
	if req.PricePerNight != nil {
		bed.PricePerNight = *req.PricePerNight
	}
	if req.IsAvailable != nil {
		bed.IsAvailable = *req.IsAvailable
	}
	if req.Position != nil {
		bed.Position = *req.Position
	}

	if err := config.DB.Save(&bed).Error; err != nil {
		log.Printf("Lỗi khi cập nhật giường %d: %v", bed.BedID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(room.PropertyID)
	response.Success(c, dto.BedResponse{
		BedID:         bed.BedID,
		RoomID:        bed.RoomID,
		Position:      bed.Position,
		Label:         bed.Label,
		PricePerNight: bed.PricePerNight,
		IsAvailable:   bed.IsAvailable,
	})
}

// DeleteBed xóa giường khi không còn reservation đang giữ nó
func DeleteBed(c *gin.Context) {
	hostID, _ := currentUser(c)

	var bed models.Bed
	if err := config.DB.First(&bed, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var room models.Room
	if err := config.DB.First(&room, bed.RoomID).Error; err != nil {
		response.ServerError(c)
		return
	}

	if _, ok := loadOwnedProperty(c, room.PropertyID, hostID); !ok {
		return
	}

	held, err := bedHasFutureReservations(room.PropertyID, &bed.BedID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if held {
		response.Conflict(c, "Giường đang có reservation, không thể xóa")
		return
	}

	if err := config.DB.Delete(&bed).Error; err != nil {
		log.Printf("Lỗi khi xóa giường %d: %v", bed.BedID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(room.PropertyID)
	response.Success(c, nil)
}
