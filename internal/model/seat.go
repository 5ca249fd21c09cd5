package model

// Seat is one physical seat position in the template. SectionID is
// denormalized from the owning row so per-section queries avoid a join.
// Status here is the template default; per-event state overrides it via
// event_seat_statuses.
type Seat struct {
	ID        uint64     // l_seats.id
	RowID     uint64     // l_seats.row_id
	SectionID uint64     // l_seats.section_id (denormalized from the row)
	Number    uint32     // l_seats.number (1-based position in the row)
	Label     string     // l_seats.label (display label, e.g. A12)
	Type      string     // l_seats.type (e.g. standard, wheelchair)
	X         float64    // l_seats.x
	Y         float64    // l_seats.y
	Price     *float64   // l_seats.price (optional per-seat override, nullable)
	TicketID  *uint64    // l_seats.ticket_id (template ticket category, nullable)
	Status    SeatStatus // l_seats.status (template default)
	Icon      *string    // l_seats.icon (display hint, nullable)
	Radius    *float64   // l_seats.radius (display hint, nullable)
}
