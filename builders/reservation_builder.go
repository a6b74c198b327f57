package builders

import (
	"time"

	"bedbook/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder; trạng thái
// khởi tạo luôn là pending
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			Status: models.ReservationStatusPending,
		},
	}
}

// WithProperty thêm property và chủ nhà
func (b *ReservationBuilder) WithProperty(propertyID, hostID uint) *ReservationBuilder {
	b.reservation.PropertyID = propertyID
	b.reservation.HostID = hostID
	return b
}

// WithGuest thêm thông tin khách
func (b *ReservationBuilder) WithGuest(guestID uint) *ReservationBuilder {
	b.reservation.GuestID = guestID
	return b
}

// WithDates thêm khoảng ngày [checkIn, checkOut)
func (b *ReservationBuilder) WithDates(checkIn, checkOut time.Time) *ReservationBuilder {
	b.reservation.CheckInDate = checkIn
	b.reservation.CheckOutDate = checkOut
	return b
}

// WithBeds thêm danh sách giường đặt; rỗng nghĩa là nguyên căn
func (b *ReservationBuilder) WithBeds(beds []models.BookedBed) *ReservationBuilder {
	b.reservation.BookedBeds = beds
	return b
}

// WithTotalPrice thêm tổng giá đã tính phía server
func (b *ReservationBuilder) WithTotalPrice(totalPrice float64) *ReservationBuilder {
	b.reservation.TotalPrice = totalPrice
	return b
}

// Build trả về reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
