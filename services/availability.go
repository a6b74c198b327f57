package services

import (
	"time"

	"bedbook/constants"
	"bedbook/models"
)

// BedDayState là trạng thái của một giường trong một ngày
type BedDayState struct {
	Date   string `json:"date"`
	Status int    `json:"status"`
}

// BedAvailability là kết quả tính availability cho một giường trên cả khoảng ngày
type BedAvailability struct {
	RoomID   uint          `json:"roomId"`
	BedID    uint          `json:"bedId"`
	RoomName string        `json:"roomName"`
	Label    string        `json:"label"`
	Free     bool          `json:"free"`
	Days     []BedDayState `json:"days"`
}

// AvailabilityResult là kết quả của ComputeAvailability cho một property
type AvailabilityResult struct {
	PropertyID        uint              `json:"propertyId"`
	FromDate          string            `json:"fromDate"`
	ToDate            string            `json:"toDate"`
	WholePropertyHeld bool              `json:"wholePropertyHeld"`
	Beds              []BedAvailability `json:"beds"`
}

// RangesOverlap kiểm tra hai khoảng nửa mở [s1,e1) và [s2,e2) có giao nhau
// không. Ngày trả phòng của khoảng này trùng ngày nhận phòng của khoảng kia
// thì không tính là xung đột (cho phép trả-nhận cùng ngày).
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// blockSpan đổi khoảng chặn inclusive [FromDate, ToDate] sang nửa mở
func blockSpan(b models.BlockedPeriod) (time.Time, time.Time) {
	return b.FromDate, b.ToDate.AddDate(0, 0, 1)
}

// blockCovers kiểm tra khoảng chặn có áp vào giường (roomID, bedID) không.
// Khoảng chặn có blockType và roomId/bedId không nhất quán bị bỏ qua thay vì
// báo lỗi, để dữ liệu lịch sử xấu không đánh sập tính toán availability.
func blockCovers(b models.BlockedPeriod, roomID, bedID uint) bool {
	switch b.BlockType {
	case constants.BlockTypeEntire:
		return true
	case constants.BlockTypeRoom:
		return b.RoomID != nil && *b.RoomID == roomID
	case constants.BlockTypeBed:
		return b.RoomID != nil && b.BedID != nil && *b.RoomID == roomID && *b.BedID == bedID
	default:
		return false
	}
}

// holdingReservations lọc các reservation còn giữ chỗ (pending hoặc confirmed)
func holdingReservations(reservations []models.Reservation) []models.Reservation {
	holding := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status == models.ReservationStatusPending || r.Status == models.ReservationStatusConfirmed {
			holding = append(holding, r)
		}
	}
	return holding
}

// wholePropertyHeld kiểm tra có reservation nguyên căn nào đang giữ chỗ và
// giao với khoảng ngày không. Nguyên căn thắng: mọi giường đều không khả dụng.
func wholePropertyHeld(holding []models.Reservation, from, to time.Time) bool {
	for _, r := range holding {
		if r.IsWholeProperty() && RangesOverlap(r.CheckInDate, r.CheckOutDate, from, to) {
			return true
		}
	}
	return false
}

// IsBedFreeForRange kiểm tra một giường có trống trên toàn bộ khoảng [from,to)
// không: cờ khóa cứng bật, không reservation giữ chỗ nào tham chiếu giường
// giao khoảng, và không khoảng chặn nào trong phạm vi giao khoảng.
func IsBedFreeForRange(bed models.Bed, reservations []models.Reservation, blocks []models.BlockedPeriod, from, to time.Time) bool {
	if !bed.IsAvailable {
		return false
	}
	holding := holdingReservations(reservations)
	if wholePropertyHeld(holding, from, to) {
		return false
	}
	for _, r := range holding {
		if r.ReferencesBed(bed.BedID) && RangesOverlap(r.CheckInDate, r.CheckOutDate, from, to) {
			return false
		}
	}
	for _, b := range blocks {
		if !blockCovers(b, bed.RoomID, bed.BedID) {
			continue
		}
		bs, be := blockSpan(b)
		if RangesOverlap(bs, be, from, to) {
			return false
		}
	}
	return true
}

// ComputeAvailability tính trạng thái từng giường theo từng ngày trong khoảng
// [from, to). Hàm thuần: không side effect, cùng input cho cùng output.
//
// Độ ưu tiên khi báo trạng thái một ngày: chặn bởi chủ nhà > đã đặt (confirmed)
// > đang chờ duyệt (pending) > trống. Trạng thái chặn chỉ hiển thị cho chủ nhà;
// người xem khác thấy giường bị chặn như đã đặt.
//
// Property không có phòng nào trả về kết quả rỗng (toàn bộ không khả dụng).
func ComputeAvailability(property *models.Property, reservations []models.Reservation, blocks []models.BlockedPeriod, from, to time.Time, forOwner bool) *AvailabilityResult {
	result := &AvailabilityResult{
		PropertyID: property.ID,
		FromDate:   from.Format(constants.DateLayout),
		ToDate:     to.Format(constants.DateLayout),
		Beds:       []BedAvailability{},
	}

	if len(property.Rooms) == 0 {
		return result
	}

	holding := holdingReservations(reservations)
	result.WholePropertyHeld = wholePropertyHeld(holding, from, to)

	for _, room := range property.Rooms {
		for _, bed := range room.Beds {
			ba := BedAvailability{
				RoomID:   room.RoomID,
				BedID:    bed.BedID,
				RoomName: room.RoomName,
				Label:    bed.Label,
				Free:     !result.WholePropertyHeld && IsBedFreeForRange(bed, reservations, blocks, from, to),
			}
			for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
				status := bedStatusForDay(bed, room.RoomID, holding, blocks, day)
				if !forOwner && status == constants.DayStatusBlocked {
					status = constants.DayStatusBooked
				}
				ba.Days = append(ba.Days, BedDayState{
					Date:   day.Format(constants.DateLayout),
					Status: status,
				})
			}
			result.Beds = append(result.Beds, ba)
		}
	}

	return result
}

// bedStatusForDay tính trạng thái mạnh nhất của một giường trong một ngày
func bedStatusForDay(bed models.Bed, roomID uint, holding []models.Reservation, blocks []models.BlockedPeriod, day time.Time) int {
	status := constants.DayStatusAvailable
	dayEnd := day.AddDate(0, 0, 1)

	if !bed.IsAvailable {
		status = constants.DayStatusBlocked
	}

	for _, b := range blocks {
		if status >= constants.DayStatusBlocked {
			break
		}
		if !blockCovers(b, roomID, bed.BedID) {
			continue
		}
		bs, be := blockSpan(b)
		if RangesOverlap(bs, be, day, dayEnd) {
			status = constants.DayStatusBlocked
		}
	}

	for _, r := range holding {
		// reservation nguyên căn giữ mọi giường
		if !r.ReferencesBed(bed.BedID) {
			continue
		}
		if !RangesOverlap(r.CheckInDate, r.CheckOutDate, day, dayEnd) {
			continue
		}
		if r.Status == models.ReservationStatusConfirmed && status < constants.DayStatusBooked {
			status = constants.DayStatusBooked
		}
		if r.Status == models.ReservationStatusPending && status < constants.DayStatusPending {
			status = constants.DayStatusPending
		}
	}

	return status
}
