package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// Label is the display name; unknown values render as "Unknown".
func (s BookingStatus) Label() string {
	switch s {
	case BookingStatusPending:
		return "Pending"
	case BookingStatusConfirmed:
		return "Confirmed"
	case BookingStatusCancelled:
		return "Cancelled"
	case BookingStatusRejected:
		return "Rejected"
	case BookingStatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Cancelled reports whether the status belongs to the cancelled bucket.
func (s BookingStatus) Cancelled() bool {
	return s == BookingStatusCancelled || s == BookingStatusRejected
}

// Earning reports whether the booking counts towards revenue.
func (s BookingStatus) Earning() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

type Booking struct {
	ID         string        `json:"id"`
	TripID     *string       `json:"trip_id"`
	CustomerID string        `json:"customer_id"`
	ProviderID *string       `json:"provider_id"`
	VehicleID  *string       `json:"vehicle_id"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// BookingDetails is a booking joined with the names the calendar displays.
type BookingDetails struct {
	Booking
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	VehicleName   string `json:"vehicle_name"`
}

// Overlaps reports whether the booking intersects the inclusive range [from, to].
func (b Booking) Overlaps(from, to time.Time) bool {
	return !b.StartDate.After(to) && !b.EndDate.Before(from)
}
