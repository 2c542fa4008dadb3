package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID         int64
	UserID     int64
	FlightID   int64
	SeatNumber string
	Status     BookingStatus
	BookedAt   time.Time
}

// BookingDetails is a booking joined with flight (and, for admin listings,
// user) fields for display.
type BookingDetails struct {
	Booking
	Username         string
	FlightNumber     string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
}
