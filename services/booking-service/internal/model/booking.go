package model

import "time"

type Booking struct {
	ID           string
	EventTypeID  string
	HostID       string
	StartTime    time.Time
	EndTime      time.Time
	Status       string // pending_payment | confirmed | cancelled
	SeatsBooked  int
	CancelledAt  *time.Time
	CancelReason string
	CreatedAt    time.Time
}

type Attendee struct {
	ID        string
	BookingID string
	SeatUID   string
	Name      string
	Email     string
	Phone     string
	Timezone  string
	CreatedAt time.Time
}

// BusyInterval is a confirmed booking projected for slot computation.
type BusyInterval struct {
	Start       time.Time
	End         time.Time
	SeatsTotal  int
	SeatsBooked int
}
