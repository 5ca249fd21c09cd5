package model

import "time"

// EventSeatStatus is the per-(event, seat) ledger entry overriding a
// seat's template state for one event. At most one row exists per
// (event_id, seat_id); submissions upsert on that key.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – event this entry belongs to.
//  SeatID    – seat this entry overrides.
//  EventKey  – opaque key distinguishing event occurrences.
//  SectionID – normalized numeric section reference (nil when the
//              submitted identifier carried no digits).
//  TicketID  – assigned ticket category (nullable).
//  BookingID – booking linkage set by the booking workflow (nullable).
//  Status    – per-event status, overrides the template default.
type EventSeatStatus struct {
	ID        uint64     // event_seat_statuses.id
	EventID   uint64     // event_seat_statuses.event_id
	SeatID    uint64     // event_seat_statuses.seat_id
	EventKey  string     // event_seat_statuses.event_key
	SectionID *uint64    // event_seat_statuses.section_id (nullable)
	TicketID  *uint64    // event_seat_statuses.ticket_id (nullable)
	BookingID *uint64    // event_seat_statuses.booking_id (nullable)
	Status    SeatStatus // event_seat_statuses.status
	CreatedAt time.Time  // event_seat_statuses.created_at
	UpdatedAt time.Time  // event_seat_statuses.updated_at
}

// EventHasLayout binds an event occurrence to the layout it renders
// with. At most one row exists per (event_id, event_key); submissions
// upsert the layout_id on that key.
type EventHasLayout struct {
	ID       uint64 // event_has_layouts.id
	EventID  uint64 // event_has_layouts.event_id
	EventKey string // event_has_layouts.event_key
	LayoutID uint64 // event_has_layouts.layout_id
}
