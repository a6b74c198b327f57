package services

import (
	"testing"
	"time"

	"bedbook/constants"
	"bedbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(s string) time.Time {
	parsed, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"giao một phần", "2024-06-01", "2024-06-05", "2024-06-03", "2024-06-07", true},
		{"khoảng này chứa khoảng kia", "2024-06-01", "2024-06-10", "2024-06-03", "2024-06-05", true},
		{"trùng hoàn toàn", "2024-06-01", "2024-06-03", "2024-06-01", "2024-06-03", true},
		{"tách rời", "2024-06-01", "2024-06-03", "2024-06-05", "2024-06-07", false},
		{"trả phòng trùng ngày nhận phòng", "2024-06-01", "2024-06-03", "2024-06-03", "2024-06-05", false},
		{"nhận phòng trùng ngày trả phòng", "2024-06-03", "2024-06-05", "2024-06-01", "2024-06-03", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(mustDay(tt.s1), mustDay(tt.e1), mustDay(tt.s2), mustDay(tt.e2))
			assert.Equal(t, tt.want, got)
			// đối xứng
			assert.Equal(t, tt.want, RangesOverlap(mustDay(tt.s2), mustDay(tt.e2), mustDay(tt.s1), mustDay(tt.e1)))
		})
	}
}

func TestBlockCovers(t *testing.T) {
	roomID := uint(1)
	bedID := uint(10)
	otherBed := uint(11)

	tests := []struct {
		name  string
		block models.BlockedPeriod
		want  bool
	}{
		{"chặn nguyên căn áp mọi giường", models.BlockedPeriod{BlockType: constants.BlockTypeEntire}, true},
		{"chặn theo phòng đúng phòng", models.BlockedPeriod{BlockType: constants.BlockTypeRoom, RoomID: &roomID}, true},
		{"chặn theo phòng thiếu roomId bị bỏ qua", models.BlockedPeriod{BlockType: constants.BlockTypeRoom}, false},
		{"chặn theo giường đúng giường", models.BlockedPeriod{BlockType: constants.BlockTypeBed, RoomID: &roomID, BedID: &bedID}, true},
		{"chặn theo giường khác giường", models.BlockedPeriod{BlockType: constants.BlockTypeBed, RoomID: &roomID, BedID: &otherBed}, false},
		{"chặn theo giường thiếu bedId bị bỏ qua", models.BlockedPeriod{BlockType: constants.BlockTypeBed, RoomID: &roomID}, false},
		{"blockType lạ bị bỏ qua", models.BlockedPeriod{BlockType: 99}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockCovers(tt.block, roomID, bedID))
		})
	}
}

func TestIsBedFreeForRange(t *testing.T) {
	bed := models.Bed{BedID: 10, RoomID: 1, Label: "Giường A", IsAvailable: true}
	from := mustDay("2024-06-01")
	to := mustDay("2024-06-03")

	t.Run("không reservation không chặn thì trống", func(t *testing.T) {
		assert.True(t, IsBedFreeForRange(bed, nil, nil, from, to))
	})

	t.Run("giường bị khóa cứng thì không trống", func(t *testing.T) {
		locked := bed
		locked.IsAvailable = false
		assert.False(t, IsBedFreeForRange(locked, nil, nil, from, to))
	})

	t.Run("reservation giao khoảng ngày chiếm giường", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusPending,
			CheckInDate:  mustDay("2024-06-02"),
			CheckOutDate: mustDay("2024-06-04"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 10}},
		}}
		assert.False(t, IsBedFreeForRange(bed, reservations, nil, from, to))
	})

	t.Run("reservation đã rejected không chiếm giường", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusRejected,
			CheckInDate:  mustDay("2024-06-01"),
			CheckOutDate: mustDay("2024-06-03"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 10}},
		}}
		assert.True(t, IsBedFreeForRange(bed, reservations, nil, from, to))
	})

	t.Run("reservation giường khác không ảnh hưởng", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusConfirmed,
			CheckInDate:  mustDay("2024-06-01"),
			CheckOutDate: mustDay("2024-06-03"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 11}},
		}}
		assert.True(t, IsBedFreeForRange(bed, reservations, nil, from, to))
	})

	t.Run("reservation nguyên căn chiếm mọi giường", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusConfirmed,
			CheckInDate:  mustDay("2024-06-02"),
			CheckOutDate: mustDay("2024-06-04"),
		}}
		assert.False(t, IsBedFreeForRange(bed, reservations, nil, from, to))
	})

	t.Run("reservation kề khoảng ngày không chiếm", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusConfirmed,
			CheckInDate:  mustDay("2024-06-03"),
			CheckOutDate: mustDay("2024-06-05"),
			BookedBeds:   []models.BookedBed{{RoomID: 1, BedID: 10}},
		}}
		assert.True(t, IsBedFreeForRange(bed, reservations, nil, from, to))
	})

	t.Run("khoảng chặn inclusive chạm ngày cuối vẫn chiếm", func(t *testing.T) {
		roomID, bedID := uint(1), uint(10)
		blocks := []models.BlockedPeriod{{
			BlockType: constants.BlockTypeBed,
			RoomID:    &roomID,
			BedID:     &bedID,
			FromDate:  mustDay("2024-06-02"),
			ToDate:    mustDay("2024-06-02"),
		}}
		assert.False(t, IsBedFreeForRange(bed, nil, blocks, from, to))
	})

	t.Run("khoảng chặn hỏng bị bỏ qua", func(t *testing.T) {
		blocks := []models.BlockedPeriod{{
			BlockType: constants.BlockTypeBed,
			FromDate:  mustDay("2024-06-01"),
			ToDate:    mustDay("2024-06-10"),
		}}
		assert.True(t, IsBedFreeForRange(bed, nil, blocks, from, to))
	})
}

func TestComputeAvailability(t *testing.T) {
	roomID := uint(1)
	bedA := uint(10)

	property := &models.Property{
		ID:     1,
		HostID: 2,
		Rooms: []models.Room{{
			RoomID:     roomID,
			PropertyID: 1,
			RoomName:   "Phòng dorm",
			Beds: []models.Bed{
				{BedID: bedA, RoomID: roomID, Label: "Giường A", IsAvailable: true},
				{BedID: 11, RoomID: roomID, Label: "Giường B", IsAvailable: true},
			},
		}},
	}

	from := mustDay("2024-06-01")
	to := mustDay("2024-06-04")

	t.Run("property không có phòng trả về rỗng", func(t *testing.T) {
		empty := &models.Property{ID: 2}
		result := ComputeAvailability(empty, nil, nil, from, to, true)
		assert.Empty(t, result.Beds)
		assert.False(t, result.WholePropertyHeld)
	})

	t.Run("trạng thái theo ngày theo độ ưu tiên", func(t *testing.T) {
		reservations := []models.Reservation{
			{
				Status:       models.ReservationStatusPending,
				CheckInDate:  mustDay("2024-06-01"),
				CheckOutDate: mustDay("2024-06-02"),
				BookedBeds:   []models.BookedBed{{RoomID: roomID, BedID: bedA}},
			},
			{
				Status:       models.ReservationStatusConfirmed,
				CheckInDate:  mustDay("2024-06-02"),
				CheckOutDate: mustDay("2024-06-03"),
				BookedBeds:   []models.BookedBed{{RoomID: roomID, BedID: bedA}},
			},
		}
		blocks := []models.BlockedPeriod{{
			BlockType: constants.BlockTypeBed,
			RoomID:    &roomID,
			BedID:     &bedA,
			FromDate:  mustDay("2024-06-03"),
			ToDate:    mustDay("2024-06-03"),
		}}

		result := ComputeAvailability(property, reservations, blocks, from, to, true)
		require.Len(t, result.Beds, 2)

		first := result.Beds[0]
		require.Equal(t, bedA, first.BedID)
		require.Len(t, first.Days, 3)
		assert.Equal(t, constants.DayStatusPending, first.Days[0].Status)
		assert.Equal(t, constants.DayStatusBooked, first.Days[1].Status)
		assert.Equal(t, constants.DayStatusBlocked, first.Days[2].Status)
		assert.False(t, first.Free)

		second := result.Beds[1]
		for _, d := range second.Days {
			assert.Equal(t, constants.DayStatusAvailable, d.Status)
		}
		assert.True(t, second.Free)
	})

	t.Run("người ngoài thấy ngày bị chặn như đã đặt", func(t *testing.T) {
		blocks := []models.BlockedPeriod{{
			BlockType: constants.BlockTypeBed,
			RoomID:    &roomID,
			BedID:     &bedA,
			FromDate:  mustDay("2024-06-01"),
			ToDate:    mustDay("2024-06-03"),
		}}

		owner := ComputeAvailability(property, nil, blocks, from, to, true)
		outsider := ComputeAvailability(property, nil, blocks, from, to, false)

		assert.Equal(t, constants.DayStatusBlocked, owner.Beds[0].Days[0].Status)
		assert.Equal(t, constants.DayStatusBooked, outsider.Beds[0].Days[0].Status)
	})

	t.Run("reservation nguyên căn phủ cả property", func(t *testing.T) {
		reservations := []models.Reservation{{
			Status:       models.ReservationStatusConfirmed,
			CheckInDate:  mustDay("2024-06-01"),
			CheckOutDate: mustDay("2024-06-04"),
		}}
		result := ComputeAvailability(property, reservations, nil, from, to, true)
		assert.True(t, result.WholePropertyHeld)
		for _, ba := range result.Beds {
			assert.False(t, ba.Free)
			for _, d := range ba.Days {
				assert.Equal(t, constants.DayStatusBooked, d.Status)
			}
		}
	})
}
