package model

import "time"

// Layout is a reusable venue seat-map template. One template can serve
// many events: per-event seat state lives in event_seat_statuses, not
// here. The counter fields are denormalized totals recomputed from the
// actual child tree on every write.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – template name.
//  VenueID       – owning venue (nullable).
//  EventID       – event the template was authored for (nullable).
//  TotalSections – denormalized count of sections under this layout.
//  TotalRows     – denormalized count of rows under this layout.
//  TotalSeats    – denormalized count of seats under this layout.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
//  DeletedAt     – soft-delete timestamp (nil while live).
type Layout struct {
	ID            uint64     // layouts.id
	Name          string     // layouts.name
	VenueID       *uint64    // layouts.venue_id (nullable)
	EventID       *uint64    // layouts.event_id (nullable)
	TotalSections uint32     // layouts.total_sections
	TotalRows     uint32     // layouts.total_rows
	TotalSeats    uint32     // layouts.total_seats
	CreatedAt     time.Time  // layouts.created_at
	UpdatedAt     time.Time  // layouts.updated_at
	DeletedAt     *time.Time // layouts.deleted_at (nullable)
}

// Stage describes the stage element of a layout. Exactly one stage
// belongs to each layout; editing a layout replaces its stage rather
// than mutating it in place.
type Stage struct {
	ID       uint64  // l_stages.id
	LayoutID uint64  // l_stages.layout_id
	Name     string  // l_stages.name
	Position string  // l_stages.position (e.g. top, bottom, center)
	Shape    string  // l_stages.shape (e.g. rect, arc)
	Height   float64 // l_stages.height
	Width    float64 // l_stages.width
	X        float64 // l_stages.x
	Y        float64 // l_stages.y
}
