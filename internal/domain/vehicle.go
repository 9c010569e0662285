package domain

import "time"

type Vehicle struct {
	ID          string    `json:"id"`
	DriverID    string    `json:"driver_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Seats       int       `json:"seats"`
	PricePerDay float64   `json:"price_per_day"`
	Features    []string  `json:"features"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
