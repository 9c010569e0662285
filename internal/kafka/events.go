package kafka

import "time"

// Event types published by the services.
const (
	EventBookingStatusChanged = "booking_status_changed"
	EventBookingCompleted     = "booking_completed"
	EventPasswordRecovery     = "password_recovery"
	EventAccountCreated       = "account_created"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
}

// Notification is an email the worker delivers.
type Notification struct {
	Type    string `json:"type"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Link    string `json:"link,omitempty"`
}
