package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStateTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       int
		action     string
		wantErr    bool
		wantStatus int
	}{
		{"pending confirm", ReservationStatusPending, "confirm", false, ReservationStatusConfirmed},
		{"pending reject", ReservationStatusPending, "reject", false, ReservationStatusRejected},
		{"pending cancel", ReservationStatusPending, "cancel", false, ReservationStatusCancelled},
		{"confirmed confirm", ReservationStatusConfirmed, "confirm", true, ReservationStatusConfirmed},
		{"confirmed reject", ReservationStatusConfirmed, "reject", true, ReservationStatusConfirmed},
		{"confirmed cancel", ReservationStatusConfirmed, "cancel", false, ReservationStatusCancelled},
		{"cancelled confirm", ReservationStatusCancelled, "confirm", true, ReservationStatusCancelled},
		{"cancelled reject", ReservationStatusCancelled, "reject", true, ReservationStatusCancelled},
		// hủy trùng lặp là no-op
		{"cancelled cancel", ReservationStatusCancelled, "cancel", false, ReservationStatusCancelled},
		{"rejected confirm", ReservationStatusRejected, "confirm", true, ReservationStatusRejected},
		{"rejected reject", ReservationStatusRejected, "reject", true, ReservationStatusRejected},
		{"rejected cancel", ReservationStatusRejected, "cancel", true, ReservationStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			state := GetReservationState(r.Status)

			var err error
			switch tt.action {
			case "confirm":
				err = state.Confirm(r)
			case "reject":
				err = state.Reject(r)
			case "cancel":
				err = state.Cancel(r)
			}

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestReservationBedSemantics(t *testing.T) {
	whole := &Reservation{}
	assert.True(t, whole.IsWholeProperty())
	assert.True(t, whole.ReferencesBed(42), "nguyên căn giữ mọi giường")

	perBed := &Reservation{BookedBeds: []BookedBed{{RoomID: 1, BedID: 10}}}
	assert.False(t, perBed.IsWholeProperty())
	assert.True(t, perBed.ReferencesBed(10))
	assert.False(t, perBed.ReferencesBed(11))
}
