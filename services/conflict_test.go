package services

import (
	"sync"
	"testing"

	"bedbook/constants"
	"bedbook/errors"
	"bedbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryReservePerBed(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	bedA := property.Rooms[0].Beds[0]
	bedB := property.Rooms[0].Beds[1]

	// Giường A giá 30, hai đêm
	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Equal(t, 60.0, reservation.TotalPrice)
	require.Len(t, reservation.BookedBeds, 1)
	assert.Equal(t, bedA.BedID, reservation.BookedBeds[0].BedID)
	assert.Equal(t, "Giường A", reservation.BookedBeds[0].BedLabel)

	// Cùng giường giao khoảng ngày thì xung đột
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-02"),
		CheckOutDate: day(t, "2024-06-04"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))

	// Giường B còn trống, giá 40 hai đêm
	other, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{bedB.BedID},
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, other.TotalPrice)

	// Cùng giường A nhưng khoảng ngày kề nhau thì hợp lệ
	adjacent, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-03"),
		CheckOutDate: day(t, "2024-06-05"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, adjacent.Status)
}

func TestTryReserveWholeProperty(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	// Đặt nguyên căn khi property trống, giá property 100 hai đêm
	whole, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-07-01"),
		CheckOutDate: day(t, "2024-07-03"),
	})
	require.NoError(t, err)
	assert.True(t, whole.IsWholeProperty())
	assert.Equal(t, 200.0, whole.TotalPrice)

	// Đặt giường lẻ giao với reservation nguyên căn thì xung đột
	bedA := property.Rooms[0].Beds[0]
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-07-02"),
		CheckOutDate: day(t, "2024-07-04"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))

	// Đặt nguyên căn khi đã có reservation giường lẻ cũng xung đột
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-07-01"),
		CheckOutDate: day(t, "2024-07-05"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
}

func TestTryReserveBlockedPeriod(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	bedA := property.Rooms[0].Beds[0]
	bedB := property.Rooms[0].Beds[1]
	roomID := property.Rooms[0].RoomID

	block := models.BlockedPeriod{
		PropertyID: property.ID,
		BlockType:  constants.BlockTypeBed,
		RoomID:     &roomID,
		BedID:      &bedA.BedID,
		FromDate:   day(t, "2024-08-01"),
		ToDate:     day(t, "2024-08-05"),
		Reason:     "sửa chữa",
	}
	require.NoError(t, db.Create(&block).Error)

	// Giường bị chặn không đặt được
	_, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-08-03"),
		CheckOutDate: day(t, "2024-08-05"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))

	// Giường khác trong cùng phòng vẫn đặt được
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-08-03"),
		CheckOutDate: day(t, "2024-08-05"),
		BedIDs:       []uint{bedB.BedID},
	})
	require.NoError(t, err)

	// Đặt nguyên căn vướng khoảng chặn của bất kỳ giường nào
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-08-01"),
		CheckOutDate: day(t, "2024-08-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
}

func TestTryReserveValidation(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	// Khoảng ngày rỗng
	_, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-03"),
		CheckOutDate: day(t, "2024-06-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDateRange))

	// Property không tồn tại
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   9999,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePropertyNotFound))

	// Giường không thuộc property
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{9999},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeBedNotFound))

	// Property đã đóng
	require.NoError(t, db.Model(&models.Property{}).Where("id = ?", property.ID).Update("is_active", false).Error)
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

// Hai request cùng giường cùng khoảng ngày chạy song song: đúng một request
// được nhận, các request còn lại nhận lỗi xung đột
func TestTryReserveConcurrent(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)
	bedA := property.Rooms[0].Beds[0]

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := TryReserve(db, ReserveInput{
				PropertyID:   property.ID,
				GuestID:      guest,
				CheckInDate:  day(t, "2024-09-01"),
				CheckOutDate: day(t, "2024-09-03"),
				BedIDs:       []uint{bedA.BedID},
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range results {
		if err == nil {
			admitted++
		} else {
			assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
		}
	}
	assert.Equal(t, 1, admitted)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Where("property_id = ?", property.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
