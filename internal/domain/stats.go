package domain

// Overview holds the dashboard counters.
type Overview struct {
	Users           int64          `json:"users"`
	UsersByRole     map[Role]int64 `json:"users_by_role"`
	Destinations    int64          `json:"destinations"`
	Hotels          int64          `json:"hotels"`
	HotelRooms      int64          `json:"hotel_rooms"`
	Vehicles        int64          `json:"vehicles"`
	Trips           int64          `json:"trips"`
	Bookings        int64          `json:"bookings"`
	PendingBookings int64          `json:"pending_bookings"`
}
