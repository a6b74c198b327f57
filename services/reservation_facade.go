package services

import (
	"bedbook/errors"
	"bedbook/models"
	"bedbook/services/logger"

	"gorm.io/gorm"
)

// ReservationFacade gom các thao tác vòng đời reservation: xác nhận, từ chối,
// hủy, nhắn tin. Side effect lên inventory (cờ IsAvailable của giường) chỉ
// xảy ra trong Confirm và Cancel, trong cùng transaction với đổi trạng thái.
type ReservationFacade struct {
	db  *gorm.DB
	log logger.Logger
}

// NewReservationFacade tạo instance mới của ReservationFacade
func NewReservationFacade(db *gorm.DB) *ReservationFacade {
	return &ReservationFacade{
		db:  db,
		log: logger.NewDefaultLogger(logger.InfoLevel),
	}
}

// GetByID lấy reservation đầy đủ theo ID
func (f *ReservationFacade) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := f.db.Preload("BookedBeds").Preload("Messages").Preload("Property").First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeReservationNotFound, "Không tìm thấy reservation", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được reservation", err)
	}
	return &reservation, nil
}

// Confirm chủ nhà xác nhận reservation pending. Với reservation theo giường,
// từng giường đặt bị khóa cứng (IsAvailable = false) cho tới khi khách hủy;
// reservation nguyên căn không đụng tới cờ giường.
func (f *ReservationFacade) Confirm(id, hostID uint) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := f.db.Transaction(func(tx *gorm.DB) error {
		r, err := f.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if r.HostID != hostID {
			return errors.NewAppError(errors.ErrCodeForbidden, "Chỉ chủ nhà mới được xác nhận reservation", nil)
		}
		if err := models.GetReservationState(r.Status).Confirm(r); err != nil {
			return errors.NewAppError(errors.ErrCodeState, err.Error(), err)
		}
		if err := f.setBookedBedsAvailability(tx, r, false); err != nil {
			return err
		}
		if err := tx.Save(r).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được reservation", err)
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	f.log.Info("reservation %d confirmed by host %d", id, hostID)
	return reservation, nil
}

// Reject chủ nhà từ chối reservation pending; không đụng tới inventory
func (f *ReservationFacade) Reject(id, hostID uint) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := f.db.Transaction(func(tx *gorm.DB) error {
		r, err := f.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if r.HostID != hostID {
			return errors.NewAppError(errors.ErrCodeForbidden, "Chỉ chủ nhà mới được từ chối reservation", nil)
		}
		if err := models.GetReservationState(r.Status).Reject(r); err != nil {
			return errors.NewAppError(errors.ErrCodeState, err.Error(), err)
		}
		if err := tx.Save(r).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được reservation", err)
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	f.log.Info("reservation %d rejected by host %d", id, hostID)
	return reservation, nil
}

// Cancel khách hủy reservation. Hủy từ pending hay confirmed đều về cùng
// trạng thái cancelled; hủy reservation đã confirmed theo giường thì mở khóa
// lại từng giường đặt. Hủy lần hai là no-op, không lỗi.
func (f *ReservationFacade) Cancel(id, guestID uint) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := f.db.Transaction(func(tx *gorm.DB) error {
		r, err := f.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if r.GuestID != guestID {
			return errors.NewAppError(errors.ErrCodeForbidden, "Chỉ khách đặt mới được hủy reservation", nil)
		}
		priorStatus := r.Status
		if err := models.GetReservationState(r.Status).Cancel(r); err != nil {
			return errors.NewAppError(errors.ErrCodeState, err.Error(), err)
		}
		if priorStatus == models.ReservationStatusCancelled {
			// request hủy trùng lặp
			reservation = r
			return nil
		}
		if priorStatus == models.ReservationStatusConfirmed {
			if err := f.setBookedBedsAvailability(tx, r, true); err != nil {
				return err
			}
		}
		if err := tx.Save(r).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được reservation", err)
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	f.log.Info("reservation %d cancelled by guest %d", id, guestID)
	return reservation, nil
}

// PostMessage thêm tin nhắn vào reservation, chỉ khi reservation chưa kết thúc
// (không rejected/cancelled). Cờ chưa đọc của bên nhận bật lên, của bên gửi
// tắt đi.
func (f *ReservationFacade) PostMessage(id, senderID uint, content string) (*models.ReservationMessage, error) {
	if content == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Nội dung tin nhắn không được để trống", nil)
	}
	var message *models.ReservationMessage
	err := f.db.Transaction(func(tx *gorm.DB) error {
		r, err := f.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if senderID != r.GuestID && senderID != r.HostID {
			return errors.NewAppError(errors.ErrCodeForbidden, "Chỉ khách hoặc chủ nhà mới được nhắn tin", nil)
		}
		if r.Status == models.ReservationStatusRejected || r.Status == models.ReservationStatusCancelled {
			return errors.NewAppError(errors.ErrCodeState, "Reservation đã kết thúc, không nhắn tin được nữa", nil)
		}

		message = &models.ReservationMessage{
			ReservationID: r.ID,
			SenderID:      senderID,
			Content:       content,
		}
		if err := tx.Create(message).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được tin nhắn", err)
		}

		if senderID == r.GuestID {
			r.UnreadByHost = true
			r.UnreadByGuest = false
		} else {
			r.UnreadByGuest = true
			r.UnreadByHost = false
		}
		if err := tx.Save(r).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// MarkRead tắt cờ chưa đọc của bên gọi (khách hoặc chủ nhà)
func (f *ReservationFacade) MarkRead(id, callerID uint) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		r, err := f.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		switch callerID {
		case r.GuestID:
			r.UnreadByGuest = false
		case r.HostID:
			r.UnreadByHost = false
		default:
			return errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền với reservation này", nil)
		}
		if err := tx.Save(r).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không lưu được reservation", err)
		}
		return nil
	})
}

// UnreadCount đếm số reservation có tin nhắn chưa đọc của user
func (f *ReservationFacade) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := f.db.Model(&models.Reservation{}).
		Where("(guest_id = ? AND unread_by_guest = ?) OR (host_id = ? AND unread_by_host = ?)",
			userID, true, userID, true).
		Count(&count).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không đếm được tin chưa đọc", err)
	}
	return count, nil
}

func (f *ReservationFacade) loadForUpdate(tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := tx.Preload("BookedBeds").First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeReservationNotFound, "Không tìm thấy reservation", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được reservation", err)
	}
	return &reservation, nil
}

// setBookedBedsAvailability đổi cờ khóa cứng của toàn bộ giường trong
// reservation. Reservation nguyên căn không có giường đặt nên không đổi gì.
func (f *ReservationFacade) setBookedBedsAvailability(tx *gorm.DB, r *models.Reservation, available bool) error {
	if len(r.BookedBeds) == 0 {
		return nil
	}
	bedIDs := make([]uint, 0, len(r.BookedBeds))
	for _, bb := range r.BookedBeds {
		bedIDs = append(bedIDs, bb.BedID)
	}
	if err := tx.Model(&models.Bed{}).Where("bed_id IN ?", bedIDs).Update("is_available", available).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái giường", err)
	}
	return nil
}
