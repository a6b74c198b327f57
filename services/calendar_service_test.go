package services

import (
	"testing"

	"bedbook/constants"
	"bedbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarProperty() *models.Property {
	return &models.Property{
		ID:     1,
		HostID: 2,
		Rooms: []models.Room{{
			RoomID:     1,
			PropertyID: 1,
			RoomName:   "Phòng dorm",
			Beds: []models.Bed{
				{BedID: 10, RoomID: 1, Label: "Giường A", IsAvailable: true},
				{BedID: 11, RoomID: 1, Label: "Giường B", IsAvailable: true},
				{BedID: 12, RoomID: 1, Label: "Giường C", IsAvailable: true},
			},
		}},
	}
}

func TestAggregateCalendarCounts(t *testing.T) {
	property := calendarProperty()
	from := mustDay("2024-06-01")

	reservations := []models.Reservation{
		{
			Status:       models.ReservationStatusConfirmed,
			CheckInDate:  mustDay("2024-06-01"),
			CheckOutDate: mustDay("2024-06-03"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 10}},
		},
		{
			Status:       models.ReservationStatusPending,
			CheckInDate:  mustDay("2024-06-02"),
			CheckOutDate: mustDay("2024-06-04"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 11}},
		},
		// rejected không được đếm
		{
			Status:       models.ReservationStatusRejected,
			CheckInDate:  mustDay("2024-06-01"),
			CheckOutDate: mustDay("2024-06-30"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 12}},
		},
	}

	summaries := AggregateCalendar(property, reservations, nil, from, 1)
	require.Len(t, summaries, 30)

	byDate := make(map[string]DaySummary, len(summaries))
	for _, s := range summaries {
		byDate[s.Date] = s
	}

	first := byDate["2024-06-01"]
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 1, first.Booked)
	assert.Equal(t, 0, first.Pending)
	assert.Equal(t, 2, first.Available)

	second := byDate["2024-06-02"]
	assert.Equal(t, 1, second.Booked)
	assert.Equal(t, 1, second.Pending)
	assert.Equal(t, 1, second.Available)

	// Ngày trả phòng không bị chiếm
	third := byDate["2024-06-03"]
	assert.Equal(t, 0, third.Booked)
	assert.Equal(t, 1, third.Pending)

	fourth := byDate["2024-06-04"]
	assert.Equal(t, 3, fourth.Available)

	for _, s := range summaries {
		assert.GreaterOrEqual(t, s.Available, 0)
		assert.Equal(t, s.Total, s.Available+s.Booked+s.Pending+s.Blocked, "ngày %s", s.Date)
	}
}

func TestAggregateCalendarBlockedPrecedence(t *testing.T) {
	property := calendarProperty()
	from := mustDay("2024-06-01")
	roomID, bedID := uint(1), uint(10)

	reservations := []models.Reservation{{
		Status:       models.ReservationStatusConfirmed,
		CheckInDate:  mustDay("2024-06-01"),
		CheckOutDate: mustDay("2024-06-03"),
		BookedBeds:   []models.BookedBed{{RoomID: roomID, BedID: bedID}},
	}}
	blocks := []models.BlockedPeriod{{
		BlockType: constants.BlockTypeBed,
		RoomID:    &roomID,
		BedID:     &bedID,
		FromDate:  mustDay("2024-06-01"),
		ToDate:    mustDay("2024-06-02"),
	}}

	summaries := AggregateCalendar(property, reservations, blocks, from, 1)

	// Chặn thắng đã đặt: giường không đếm hai lần
	first := summaries[0]
	assert.Equal(t, 1, first.Blocked)
	assert.Equal(t, 0, first.Booked)
	assert.Equal(t, 2, first.Available)
}

func TestAggregateCalendarHardDisabledBed(t *testing.T) {
	property := calendarProperty()
	property.Rooms[0].Beds[2].IsAvailable = false
	from := mustDay("2024-06-01")

	summaries := AggregateCalendar(property, nil, nil, from, 2)

	// Giường khóa cứng đếm là chặn cho mọi ngày trong cửa sổ
	for _, s := range summaries {
		assert.Equal(t, 1, s.Blocked)
		assert.Equal(t, 2, s.Available)
	}
}

func TestAggregateCalendarWindowClamp(t *testing.T) {
	property := calendarProperty()
	from := mustDay("2024-06-01")

	// Reservation nguyên căn tràn ra ngoài cửa sổ hai phía
	reservations := []models.Reservation{{
		Status:       models.ReservationStatusConfirmed,
		CheckInDate:  mustDay("2024-05-20"),
		CheckOutDate: mustDay("2024-08-20"),
	}}

	summaries := AggregateCalendar(property, reservations, nil, from, 1)
	require.Len(t, summaries, 30)
	for _, s := range summaries {
		assert.Equal(t, 3, s.Booked)
		assert.Equal(t, 0, s.Available)
	}
}

func TestAggregateCalendarNoRooms(t *testing.T) {
	property := &models.Property{ID: 5}
	summaries := AggregateCalendar(property, nil, nil, mustDay("2024-06-01"), 1)
	require.Len(t, summaries, 30)
	for _, s := range summaries {
		assert.Equal(t, 0, s.Total)
		assert.Equal(t, 0, s.Available)
	}
}
