package domain

import "time"

type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Attractions []string  `json:"attractions"`
	Weather     string    `json:"weather"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"created_at"`
}
