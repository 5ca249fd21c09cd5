package model

// Section is a named block of rows within a layout, positioned on the
// 2D seat-map canvas. Sections own their rows exclusively.
type Section struct {
	ID       uint64  // l_sections.id
	LayoutID uint64  // l_sections.layout_id
	TierID   *uint64 // l_sections.tier_id (nullable)
	Name     string  // l_sections.name
	Type     string  // l_sections.type (e.g. seated, standing)
	X        float64 // l_sections.x
	Y        float64 // l_sections.y
	Width    float64 // l_sections.width
	Height   float64 // l_sections.height
}

// Row is a single row of seats within a section. NumberOfSeats is the
// declared count carried on the wire; the authoritative count is the
// cardinality of the row's seat records.
type Row struct {
	ID            uint64  // l_rows.id
	SectionID     uint64  // l_rows.section_id
	Title         string  // l_rows.title (e.g. A, B, AA)
	NumberOfSeats uint32  // l_rows.number_of_seats (declared, informational)
	Shape         string  // l_rows.shape (straight | curved)
	Curve         float64 // l_rows.curve (curvature parameter, 0 for straight)
	Spacing       float64 // l_rows.spacing (gap between adjacent seats)
	TicketID      *uint64 // l_rows.ticket_id (default ticket category, nullable)
	Position      uint32  // l_rows.position (display order within the section)
}
