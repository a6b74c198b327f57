package services

import (
	"time"

	"bedbook/constants"
	"bedbook/models"
)

// DaySummary là số đếm giường theo ngày cho lịch nhiều tháng
type DaySummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
	Pending   int    `json:"pending"`
	Blocked   int    `json:"blocked"`
}

// AggregateCalendar gấp reservation và khoảng chặn thành số đếm giường theo
// ngày cho months tháng kể từ from. Đây là projection chỉ đọc cho hiển thị,
// không bao giờ dùng làm nguồn sự thật khi xét xung đột đặt chỗ.
//
// Duyệt tuyến tính theo từng span thay vì gọi ComputeAvailability cho từng ô
// lịch; mỗi giường mỗi ngày chỉ đếm vào một cột theo độ ưu tiên chặn > đã đặt
// > chờ duyệt. Giường bị chủ nhà khóa cứng đếm là chặn cho mọi ngày trong
// cửa sổ.
func AggregateCalendar(property *models.Property, reservations []models.Reservation, blocks []models.BlockedPeriod, from time.Time, months int) []DaySummary {
	if months <= 0 {
		months = 1
	}
	windowStart := from
	windowEnd := from.AddDate(0, months, 0)
	totalBeds := property.TotalBeds()

	// dayBeds giữ trạng thái mạnh nhất của từng giường theo ngày
	dayBeds := make(map[string]map[uint]int)
	mark := func(day time.Time, bedID uint, status int) {
		key := day.Format(constants.DateLayout)
		beds, ok := dayBeds[key]
		if !ok {
			beds = make(map[uint]int)
			dayBeds[key] = beds
		}
		if status > beds[bedID] {
			beds[bedID] = status
		}
	}
	markSpan := func(start, end time.Time, bedID uint, status int) {
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			mark(day, bedID, status)
		}
	}

	for _, room := range property.Rooms {
		for _, bed := range room.Beds {
			if !bed.IsAvailable {
				markSpan(windowStart, windowEnd, bed.BedID, constants.DayStatusBlocked)
			}
			for _, b := range blocks {
				if !blockCovers(b, room.RoomID, bed.BedID) {
					continue
				}
				bs, be := blockSpan(b)
				markSpan(bs, be, bed.BedID, constants.DayStatusBlocked)
			}
		}
	}

	for _, r := range holdingReservations(reservations) {
		status := constants.DayStatusPending
		if r.Status == models.ReservationStatusConfirmed {
			status = constants.DayStatusBooked
		}
		for _, room := range property.Rooms {
			for _, bed := range room.Beds {
				if !r.ReferencesBed(bed.BedID) {
					continue
				}
				markSpan(r.CheckInDate, r.CheckOutDate, bed.BedID, status)
			}
		}
	}

	summaries := make([]DaySummary, 0)
	for day := windowStart; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(constants.DateLayout)
		summary := DaySummary{Date: key, Total: totalBeds}
		for _, status := range dayBeds[key] {
			switch status {
			case constants.DayStatusBlocked:
				summary.Blocked++
			case constants.DayStatusBooked:
				summary.Booked++
			case constants.DayStatusPending:
				summary.Pending++
			}
		}
		summary.Available = totalBeds - summary.Booked - summary.Pending - summary.Blocked
		if summary.Available < 0 {
			summary.Available = 0
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
