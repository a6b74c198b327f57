package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// ReservationEventBuilder dựng nội dung broadcast cho sự kiện reservation
type ReservationEventBuilder struct {
	reservationID uint
	propertyID    uint
	event         string
}

func NewReservationEventBuilder(reservationID, propertyID uint, event string) *ReservationEventBuilder {
	return &ReservationEventBuilder{
		reservationID: reservationID,
		propertyID:    propertyID,
		event:         event,
	}
}

func (b *ReservationEventBuilder) Build() string {
	return fmt.Sprintf("🔔 Reservation %d (property %d): %s", b.reservationID, b.propertyID, b.event)
}
