package services

import (
	"sync"
	"time"

	"bedbook/builders"
	"bedbook/errors"
	"bedbook/models"
	"bedbook/validator"

	"gorm.io/gorm"
)

// propertyLocks giữ một mutex cho mỗi property. Kiểm tra xung đột và ghi
// reservation là hai bước đọc-rồi-ghi; không tuần tự hóa thì hai request cùng
// lúc cho cùng giường/khoảng ngày đều qua được kiểm tra và đều insert. Mutex
// theo property đóng lỗ hổng này; transaction bên trong giữ cho insert và dữ
// liệu kiểm tra nhất quán với nhau.
var propertyLocks sync.Map

func lockProperty(propertyID uint) *sync.Mutex {
	mu, _ := propertyLocks.LoadOrStore(propertyID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ReserveInput là yêu cầu đặt chỗ đã qua parse; BedIDs rỗng là đặt nguyên căn
type ReserveInput struct {
	PropertyID   uint
	GuestID      uint
	CheckInDate  time.Time
	CheckOutDate time.Time
	BedIDs       []uint
}

// TryReserve xét duyệt yêu cầu đặt chỗ và tạo reservation pending nếu không
// xung đột. Giá luôn tính lại từ giá giường/property trong DB, không tin giá
// do client gửi lên.
func TryReserve(db *gorm.DB, in ReserveInput) (*models.Reservation, error) {
	if err := validator.ValidateDateRange(in.CheckInDate, in.CheckOutDate); err != nil {
		return nil, err
	}

	mu := lockProperty(in.PropertyID)
	mu.Lock()
	defer mu.Unlock()

	var reservation *models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Preload("Rooms.Beds").Preload("BlockedPeriods").First(&property, in.PropertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewAppError(errors.ErrCodePropertyNotFound, "Không tìm thấy property", err)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "Không đọc được property", err)
		}

		// Property chỉ bookable khi có ít nhất một phòng
		if !property.IsActive || len(property.Rooms) == 0 {
			return errors.NewAppError(errors.ErrCodeValidation, "Property chưa mở nhận đặt chỗ", nil)
		}

		// Chỉ những reservation còn giữ chỗ và giao khoảng ngày mới liên quan
		var overlapping []models.Reservation
		if err := tx.Preload("BookedBeds").
			Where("property_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
				in.PropertyID,
				[]int{models.ReservationStatusPending, models.ReservationStatusConfirmed},
				in.CheckOutDate, in.CheckInDate).
			Find(&overlapping).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không đọc được danh sách reservation", err)
		}

		bookedBeds, total, err := admit(&property, overlapping, in)
		if err != nil {
			return err
		}

		reservation = builders.NewReservationBuilder().
			WithProperty(property.ID, property.HostID).
			WithGuest(in.GuestID).
			WithDates(in.CheckInDate, in.CheckOutDate).
			WithBeds(bookedBeds).
			WithTotalPrice(total).
			Build()

		if err := tx.Create(reservation).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không tạo được reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// admit kiểm tra điều kiện nhận đặt chỗ và tính giá server-side. Trả về danh
// sách giường đặt (rỗng nếu nguyên căn) và tổng giá.
func admit(property *models.Property, overlapping []models.Reservation, in ReserveInput) ([]models.BookedBed, float64, error) {
	nights := int(in.CheckOutDate.Sub(in.CheckInDate).Hours() / 24)

	// Đặt nguyên căn: không reservation giữ chỗ nào được giao khoảng ngày
	if len(in.BedIDs) == 0 {
		if len(holdingReservations(overlapping)) > 0 {
			return nil, 0, errors.NewAppError(errors.ErrCodeConflict, "Property đã có đặt chỗ trong khoảng thời gian này", nil)
		}
		// Đặt nguyên căn chiếm mọi giường nên vướng bất kỳ khoảng chặn nào
		for _, room := range property.Rooms {
			for _, bed := range room.Beds {
				for _, b := range property.BlockedPeriods {
					if !blockCovers(b, room.RoomID, bed.BedID) {
						continue
					}
					bs, be := blockSpan(b)
					if RangesOverlap(bs, be, in.CheckInDate, in.CheckOutDate) {
						return nil, 0, errors.NewAppError(errors.ErrCodeConflict, "Property bị chặn trong khoảng thời gian này", nil)
					}
				}
			}
		}
		return []models.BookedBed{}, float64(property.PricePerNight * nights), nil
	}

	// Đặt theo giường: từng giường phải tồn tại trong topology hiện tại và
	// trống trên toàn bộ khoảng ngày
	bookedBeds := make([]models.BookedBed, 0, len(in.BedIDs))
	total := 0.0
	for _, bedID := range in.BedIDs {
		room, bed, err := property.FindBed(bedID)
		if err != nil {
			return nil, 0, errors.NewAppError(errors.ErrCodeBedNotFound, "Giường không tồn tại trong property", err)
		}
		if !IsBedFreeForRange(*bed, overlapping, property.BlockedPeriods, in.CheckInDate, in.CheckOutDate) {
			return nil, 0, errors.NewAppError(errors.ErrCodeConflict, "Giường "+bed.Label+" không khả dụng trong khoảng thời gian này", nil)
		}
		bookedBeds = append(bookedBeds, models.BookedBed{
			RoomID:   room.RoomID,
			BedID:    bed.BedID,
			BedLabel: bed.Label,
		})
		total += float64(bed.PricePerNight * nights)
	}
	return bookedBeds, total, nil
}
