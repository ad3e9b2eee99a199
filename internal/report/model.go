package report

// Stats aggregates the headline numbers shown on the admin dashboard.
type Stats struct {
	NewMembersThisMonth int            `json:"new_members_this_month"`
	NewMembersToday     int            `json:"new_members_today"`
	TotalMembers        int            `json:"total_members"`
	TotalBoxes          int            `json:"total_boxes"`
	BookingsToday       int            `json:"bookings_today"`
	DailyBookings       []DailyBooking `json:"daily_bookings"`
}

// DailyBooking is one day's booking count within the trailing window.
type DailyBooking struct {
	Date  string `db:"day" json:"date"`
	Count int    `db:"count" json:"count"`
}
