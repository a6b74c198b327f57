package services

import (
	"testing"

	"bedbook/errors"
	"bedbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeConfirmLocksBeds(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)
	bedA := property.Rooms[0].Beds[0]

	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.NoError(t, err)

	facade := NewReservationFacade(db)

	// Người khác không xác nhận được
	_, err = facade.Confirm(reservation.ID, property.HostID+100)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	confirmed, err := facade.Confirm(reservation.ID, property.HostID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, confirmed.Status)

	// Xác nhận khóa cứng giường đã đặt
	var bed models.Bed
	require.NoError(t, db.First(&bed, bedA.BedID).Error)
	assert.False(t, bed.IsAvailable)

	// Xác nhận lần hai là lỗi trạng thái
	_, err = facade.Confirm(reservation.ID, property.HostID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeState))
}

func TestFacadeCancelRestoresBeds(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)
	bedA := property.Rooms[0].Beds[0]

	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.NoError(t, err)

	facade := NewReservationFacade(db)
	_, err = facade.Confirm(reservation.ID, property.HostID)
	require.NoError(t, err)

	// Người khác không hủy được
	_, err = facade.Cancel(reservation.ID, guest+100)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	cancelled, err := facade.Cancel(reservation.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, cancelled.Status)

	// Hủy reservation đã xác nhận mở khóa lại giường
	var bed models.Bed
	require.NoError(t, db.First(&bed, bedA.BedID).Error)
	assert.True(t, bed.IsAvailable)

	// Hủy lần hai là no-op, không lỗi
	again, err := facade.Cancel(reservation.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, again.Status)
}

func TestFacadeCancelPendingDoesNotTouchBeds(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)
	bedA := property.Rooms[0].Beds[0]

	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{bedA.BedID},
	})
	require.NoError(t, err)

	facade := NewReservationFacade(db)
	_, err = facade.Cancel(reservation.ID, guest)
	require.NoError(t, err)

	var bed models.Bed
	require.NoError(t, db.First(&bed, bedA.BedID).Error)
	assert.True(t, bed.IsAvailable)
}

func TestFacadeRejectTerminal(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{property.Rooms[0].Beds[0].BedID},
	})
	require.NoError(t, err)

	facade := NewReservationFacade(db)
	rejected, err := facade.Reject(reservation.ID, property.HostID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusRejected, rejected.Status)

	// Rejected là trạng thái kết thúc
	_, err = facade.Confirm(reservation.ID, property.HostID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeState))
	_, err = facade.Cancel(reservation.ID, guest)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeState))

	// Khoảng ngày giải phóng, đặt lại được
	_, err = TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{property.Rooms[0].Beds[0].BedID},
	})
	require.NoError(t, err)
}

func TestFacadeMessaging(t *testing.T) {
	db := newTestDB(t)
	property := seedProperty(t, db)
	guest := guestID(t, db)

	reservation, err := TryReserve(db, ReserveInput{
		PropertyID:   property.ID,
		GuestID:      guest,
		CheckInDate:  day(t, "2024-06-01"),
		CheckOutDate: day(t, "2024-06-03"),
		BedIDs:       []uint{property.Rooms[0].Beds[0].BedID},
	})
	require.NoError(t, err)

	facade := NewReservationFacade(db)

	// Người ngoài không nhắn được
	_, err = facade.PostMessage(reservation.ID, guest+100, "xin chào")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	// Tin nhắn rỗng bị chặn
	_, err = facade.PostMessage(reservation.ID, guest, "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))

	// Khách nhắn: cờ chưa đọc của chủ nhà bật
	message, err := facade.PostMessage(reservation.ID, guest, "Mấy giờ nhận phòng được ạ?")
	require.NoError(t, err)
	assert.Equal(t, guest, message.SenderID)

	loaded, err := facade.GetByID(reservation.ID)
	require.NoError(t, err)
	assert.True(t, loaded.UnreadByHost)
	assert.False(t, loaded.UnreadByGuest)

	hostUnread, err := facade.UnreadCount(property.HostID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hostUnread)

	// Chủ nhà trả lời: cờ đảo chiều
	_, err = facade.PostMessage(reservation.ID, property.HostID, "Từ 14h nhé")
	require.NoError(t, err)

	loaded, err = facade.GetByID(reservation.ID)
	require.NoError(t, err)
	assert.True(t, loaded.UnreadByGuest)
	assert.False(t, loaded.UnreadByHost)

	// Khách đọc xong tắt cờ
	require.NoError(t, facade.MarkRead(reservation.ID, guest))
	loaded, err = facade.GetByID(reservation.ID)
	require.NoError(t, err)
	assert.False(t, loaded.UnreadByGuest)

	guestUnread, err := facade.UnreadCount(guest)
	require.NoError(t, err)
	assert.EqualValues(t, 0, guestUnread)

	// Reservation đã hủy thì đóng kênh chat
	_, err = facade.Cancel(reservation.ID, guest)
	require.NoError(t, err)
	_, err = facade.PostMessage(reservation.ID, guest, "alo?")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeState))
}
