package models

import "errors"

// ReservationState định nghĩa interface cho các trạng thái reservation
type ReservationState interface {
	Confirm(r *Reservation) error
	Reject(r *Reservation) error
	Cancel(r *Reservation) error
}

// PendingState trạng thái chờ chủ nhà duyệt
type PendingState struct{}

func (s *PendingState) Confirm(r *Reservation) error {
	r.Status = ReservationStatusConfirmed
	return nil
}

func (s *PendingState) Reject(r *Reservation) error {
	r.Status = ReservationStatusRejected
	return nil
}

func (s *PendingState) Cancel(r *Reservation) error {
	r.Status = ReservationStatusCancelled
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(r *Reservation) error {
	return errors.New("reservation already confirmed")
}

func (s *ConfirmedState) Reject(r *Reservation) error {
	return errors.New("cannot reject confirmed reservation")
}

func (s *ConfirmedState) Cancel(r *Reservation) error {
	r.Status = ReservationStatusCancelled
	return nil
}

// CancelledState trạng thái đã hủy (terminal)
type CancelledState struct{}

func (s *CancelledState) Confirm(r *Reservation) error {
	return errors.New("cannot confirm cancelled reservation")
}

func (s *CancelledState) Reject(r *Reservation) error {
	return errors.New("cannot reject cancelled reservation")
}

// Cancel hủy lần hai là no-op, các request trùng lặp không được báo lỗi
func (s *CancelledState) Cancel(r *Reservation) error {
	return nil
}

// RejectedState trạng thái đã từ chối (terminal)
type RejectedState struct{}

func (s *RejectedState) Confirm(r *Reservation) error {
	return errors.New("cannot confirm rejected reservation")
}

func (s *RejectedState) Reject(r *Reservation) error {
	return errors.New("reservation already rejected")
}

func (s *RejectedState) Cancel(r *Reservation) error {
	return errors.New("cannot cancel rejected reservation")
}

// GetReservationState trả về state tương ứng với trạng thái reservation
func GetReservationState(status int) ReservationState {
	switch status {
	case ReservationStatusPending:
		return &PendingState{}
	case ReservationStatusConfirmed:
		return &ConfirmedState{}
	case ReservationStatusCancelled:
		return &CancelledState{}
	case ReservationStatusRejected:
		return &RejectedState{}
	default:
		return &PendingState{}
	}
}
