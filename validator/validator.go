package validator

import (
	"bedbook/constants"
	"bedbook/errors"
	"bedbook/models"
	"time"
)

// ParseISODate parse chuỗi ngày ISO "2006-01-02"
func ParseISODate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse(constants.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày không hợp lệ, dùng định dạng yyyy-mm-dd", err)
	}
	return parsed, nil
}

// ValidateDateRange kiểm tra khoảng ngày đặt: ít nhất một đêm
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if !checkIn.Before(checkOut) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}
	return nil
}

// ValidateProperty validate thông tin property khi tạo/cập nhật
func ValidateProperty(property *models.Property) error {
	if property.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên property không được để trống", nil)
	}
	if property.HostID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Property phải có chủ nhà", nil)
	}
	if property.PricePerNight < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá mỗi đêm không được âm", nil)
	}
	return nil
}

// ValidateRoom validate thông tin phòng
func ValidateRoom(room *models.Room) error {
	if room.PropertyID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Phòng phải thuộc một property", nil)
	}
	if room.RoomName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên phòng không được để trống", nil)
	}
	return nil
}

// ValidateBed validate thông tin giường
func ValidateBed(bed *models.Bed) error {
	if bed.RoomID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Giường phải thuộc một phòng", nil)
	}
	if bed.Label == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Nhãn giường không được để trống", nil)
	}
	if bed.PricePerNight < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá mỗi đêm không được âm", nil)
	}
	return nil
}

// ValidateBlockedPeriod validate khoảng chặn khi chủ nhà tạo mới. Engine
// availability vẫn bỏ qua dữ liệu lịch sử không nhất quán thay vì báo lỗi;
// validation này chỉ chặn dữ liệu xấu mới đi vào.
func ValidateBlockedPeriod(block *models.BlockedPeriod) error {
	if block.PropertyID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Khoảng chặn phải thuộc một property", nil)
	}
	if block.ToDate.Before(block.FromDate) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày kết thúc chặn phải không trước ngày bắt đầu", nil)
	}
	switch block.BlockType {
	case constants.BlockTypeEntire:
		// không yêu cầu roomId/bedId
	case constants.BlockTypeRoom:
		if block.RoomID == nil {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Chặn theo phòng phải có roomId", nil)
		}
	case constants.BlockTypeBed:
		if block.RoomID == nil || block.BedID == nil {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Chặn theo giường phải có roomId và bedId", nil)
		}
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "blockType không hợp lệ", nil)
	}
	return nil
}
