package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bedbook/config"
	"bedbook/models"
	"bedbook/response"
	"bedbook/services"
	"bedbook/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadPropertySnapshot lấy property kèm topology, reservation và khoảng chặn
// để tính availability/lịch
func loadPropertySnapshot(propertyID string) (*models.Property, []models.Reservation, error) {
	var property models.Property
	if err := config.DB.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Rooms.Beds", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("BlockedPeriods").First(&property, propertyID).Error; err != nil {
		return nil, nil, err
	}

	var reservations []models.Reservation
	if err := config.DB.Preload("BookedBeds").
		Where("property_id = ? AND status IN ?", property.ID,
			[]int{models.ReservationStatusPending, models.ReservationStatusConfirmed}).
		Find(&reservations).Error; err != nil {
		return nil, nil, err
	}

	return &property, reservations, nil
}

// isPropertyOwner kiểm tra request có mang token của chủ property không.
// Endpoint công khai nên token là tùy chọn; không có token hoặc token không
// hợp lệ thì xem như người ngoài.
func isPropertyOwner(c *gin.Context, property *models.Property) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, _, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		return false
	}
	return userID == property.HostID
}

// GetAvailability tính trạng thái từng giường theo từng ngày trong khoảng
// [fromDate, toDate). Chủ nhà thấy ngày bị chặn là chặn; người khác thấy như
// đã đặt.
func GetAvailability(c *gin.Context) {
	propertyID := c.Query("id")
	fromStr := c.Query("fromDate")
	toStr := c.Query("toDate")
	if propertyID == "" || fromStr == "" || toStr == "" {
		response.BadRequest(c, "id, fromDate và toDate là bắt buộc")
		return
	}

	from, err := validator.ParseISODate(fromStr)
	if err != nil {
		response.BadRequest(c, "fromDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}
	to, err := validator.ParseISODate(toStr)
	if err != nil {
		response.BadRequest(c, "toDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}
	if err := validator.ValidateDateRange(from, to); err != nil {
		response.BadRequest(c, "fromDate phải trước toDate")
		return
	}

	property, reservations, err := loadPropertySnapshot(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		log.Printf("Lỗi khi lấy dữ liệu availability: %v", err)
		response.ServerError(c)
		return
	}

	forOwner := isPropertyOwner(c, property)

	// Chỉ cache góc nhìn công khai; chủ nhà thấy trạng thái chặn riêng
	cacheKey := fmt.Sprintf("availability:%s:%s:%s", propertyID, fromStr, toStr)
	if !forOwner {
		rdb, err := config.ConnectRedis()
		if err == nil {
			var cached services.AvailabilityResult
			if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && cached.PropertyID != 0 {
				response.Success(c, &cached)
				return
			}
		}
	}

	result := services.ComputeAvailability(property, reservations, property.BlockedPeriods, from, to, forOwner)

	if !forOwner {
		if rdb, err := config.ConnectRedis(); err == nil {
			if err := services.SetToRedis(config.Ctx, rdb, cacheKey, result, 10*time.Minute); err != nil {
				log.Printf("Lỗi khi lưu availability vào Redis: %v", err)
			}
		}
	}

	response.Success(c, result)
}

// GetCalendar trả về lịch số đếm giường theo ngày cho nhiều tháng; kết quả
// được cache theo property và cửa sổ thời gian
func GetCalendar(c *gin.Context) {
	propertyID := c.Query("id")
	if propertyID == "" {
		response.BadRequest(c, "id là bắt buộc")
		return
	}

	from := time.Now().Truncate(24 * time.Hour)
	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := validator.ParseISODate(fromStr)
		if err != nil {
			response.BadRequest(c, "fromDate không hợp lệ, định dạng yyyy-mm-dd")
			return
		}
		from = parsed
	}

	months := 3
	if monthsStr := c.Query("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil || parsed <= 0 || parsed > 12 {
			response.BadRequest(c, "months phải trong khoảng 1..12")
			return
		}
		months = parsed
	}

	cacheKey := fmt.Sprintf("calendar:%s:%s:%d", propertyID, from.Format("2006-01-02"), months)

	rdb, err := config.ConnectRedis()
	if err == nil {
		var cached []services.DaySummary
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && len(cached) > 0 {
			response.Success(c, cached)
			return
		}
	}

	property, reservations, err := loadPropertySnapshot(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		log.Printf("Lỗi khi lấy dữ liệu lịch: %v", err)
		response.ServerError(c)
		return
	}

	summaries := services.AggregateCalendar(property, reservations, property.BlockedPeriods, from, months)

	if rdb != nil {
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, summaries, 30*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu lịch vào Redis: %v", err)
		}
	}

	response.Success(c, summaries)
}

// CalendarCacheRebuilder dựng trước cache lịch 3 tháng cho mọi property đang
// hoạt động; cron gọi hằng ngày để cửa sổ lịch trượt theo ngày
type CalendarCacheRebuilder struct{}

func (CalendarCacheRebuilder) RebuildCalendarCache() error {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	if err := services.DeleteKeysByPattern(config.Ctx, rdb, "calendar:*"); err != nil {
		log.Printf("Lỗi khi xóa cache lịch cũ: %v", err)
	}

	var ids []uint
	if err := config.DB.Model(&models.Property{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	from := time.Now().Truncate(24 * time.Hour)
	for _, id := range ids {
		property, reservations, err := loadPropertySnapshot(strconv.FormatUint(uint64(id), 10))
		if err != nil {
			log.Printf("Lỗi khi dựng cache lịch cho property %d: %v", id, err)
			continue
		}
		summaries := services.AggregateCalendar(property, reservations, property.BlockedPeriods, from, 3)
		cacheKey := fmt.Sprintf("calendar:%d:%s:%d", id, from.Format("2006-01-02"), 3)
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, summaries, 24*time.Hour); err != nil {
			log.Printf("Lỗi khi lưu cache lịch cho property %d: %v", id, err)
		}
	}
	return nil
}
