package model

// Ticket is a pricing/inventory category owned by the event subsystem.
// This service only reads tickets to resolve seat assignments into a
// renderable payload; it never writes them.
type Ticket struct {
	ID      uint64  // tickets.id
	EventID uint64  // tickets.event_id
	Name    string  // tickets.name
	Price   float64 // tickets.price
}
