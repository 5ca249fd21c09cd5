package service

import (
	"context"
	"strings"
	"time"

	"github.com/seatforge/seatmap-service/internal/hold"
	"github.com/seatforge/seatmap-service/internal/model"
	"github.com/seatforge/seatmap-service/internal/repository"
)

// TemplateSource loads the seat-map template tree.
type TemplateSource interface {
	GetWithDetails(ctx context.Context, id uint64) (*repository.LayoutDetails, error)
}

// TicketSource bulk-loads an event's ticket categories.
type TicketSource interface {
	ListByEvent(ctx context.Context, eventID uint64) ([]model.Ticket, error)
}

// TicketView is the resolved ticket-category payload on seats and on
// the top-level ticketCategories list.
type TicketView struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SeatView is the render-ready projection of one seat after merging
// template, ledger and hold layers.
type SeatView struct {
	ID             string      `json:"id"`
	Number         uint32      `json:"number"`
	Label          string      `json:"label"`
	Type           string      `json:"type"`
	X              float64     `json:"x"`
	Y              float64     `json:"y"`
	TicketCategory *uint64     `json:"ticketCategory"`
	Status         string      `json:"status"`
	HoldBy         *string     `json:"hold_by"`
	Radius         *float64    `json:"radius"`
	Icon           *string     `json:"icon"`
	Ticket         *TicketView `json:"ticket"`
}

// RowView projects one row and its seats.
type RowView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	NumberOfSeats  uint32     `json:"numberOfSeats"`
	TicketCategory *uint64    `json:"ticketCategory"`
	Shape          string     `json:"shape"`
	Curve          float64    `json:"curve"`
	Spacing        float64    `json:"spacing"`
	Seats          []SeatView `json:"seats"`
}

// SectionView projects one section and its rows.
type SectionView struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Rows   []RowView `json:"rows"`
}

// StageView projects the stage descriptor.
type StageView struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Shape    string  `json:"shape"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// MetadataView carries the denormalized tree counters.
type MetadataView struct {
	TotalSections uint32 `json:"totalSections"`
	TotalRows     uint32 `json:"totalRows"`
	TotalSeats    uint32 `json:"totalSeats"`
}

// LayoutView is the complete render-ready tree for one layout.
type LayoutView struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	VenueID          *uint64       `json:"venue_id"`
	Stage            *StageView    `json:"stage"`
	Sections         []SectionView `json:"sections"`
	TicketCategories []TicketView  `json:"ticketCategories"`
	Metadata         MetadataView  `json:"metadata"`
}

// Compositor merges the template tree, the event-seat ledger and the
// transient hold overlay into one renderable view. It issues exactly one bulk query for seat statuses
// and at most one for tickets regardless of seat count; everything
// after that is an in-memory walk of the tree.
type Compositor struct {
	layouts TemplateSource
	ledger  LedgerStore
	tickets TicketSource
}

// NewCompositor wires the three sources.
func NewCompositor(layouts TemplateSource, ledger LedgerStore, tickets TicketSource) *Compositor {
	return &Compositor{layouts: layouts, ledger: ledger, tickets: tickets}
}

// ResolveEvent decides which event a render request targets: an
// explicit non-zero eventID wins, otherwise the most recent
// event→layout binding (highest id). Zero means no event is bound and
// the layout renders pure template state.
func (c *Compositor) ResolveEvent(ctx context.Context, layoutID, eventID uint64) (uint64, error) {
	if eventID != 0 {
		return eventID, nil
	}
	binding, err := c.ledger.LatestBindingForLayout(ctx, layoutID)
	if err != nil {
		return 0, err
	}
	if binding == nil {
		return 0, nil
	}
	return binding.EventID, nil
}

// Compose renders the layout. When eventID is zero the most recent
// event→layout binding for this layout decides the event; a layout
// bound to no event renders pure template state with an empty ticket
// list. overlay may be nil.
func (c *Compositor) Compose(ctx context.Context, layoutID, eventID uint64, overlay hold.Overlay) (*LayoutView, error) {
	details, err := c.layouts.GetWithDetails(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	eventID, err = c.ResolveEvent(ctx, layoutID, eventID)
	if err != nil {
		return nil, err
	}

	statusBySeat := map[string]model.EventSeatStatus{}
	ticketByID := map[uint64]model.Ticket{}
	var categories []TicketView
	if eventID != 0 {
		entries, err := c.ledger.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			statusBySeat[SeatKey(e.SeatID)] = e
		}
		tickets, err := c.tickets.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		categories = make([]TicketView, 0, len(tickets))
		for _, t := range tickets {
			ticketByID[t.ID] = t
			categories = append(categories, TicketView{ID: t.ID, Name: t.Name, Price: t.Price})
		}
	}

	view := &LayoutView{
		ID:               LayoutKey(details.Layout.ID),
		Name:             details.Layout.Name,
		CreatedAt:        details.Layout.CreatedAt,
		UpdatedAt:        details.Layout.UpdatedAt,
		VenueID:          details.Layout.VenueID,
		TicketCategories: categories,
		Metadata: MetadataView{
			TotalSections: details.Layout.TotalSections,
			TotalRows:     details.Layout.TotalRows,
			TotalSeats:    details.Layout.TotalSeats,
		},
	}
	if view.TicketCategories == nil {
		view.TicketCategories = []TicketView{}
	}
	if details.Stage != nil {
		view.Stage = &StageView{
			Name:     details.Stage.Name,
			Position: details.Stage.Position,
			Shape:    details.Stage.Shape,
			Height:   details.Stage.Height,
			Width:    details.Stage.Width,
			X:        details.Stage.X,
			Y:        details.Stage.Y,
		}
	}

	view.Sections = make([]SectionView, 0, len(details.Sections))
	for _, sec := range details.Sections {
		sv := SectionView{
			ID:     SectionKey(sec.Section.ID),
			Name:   sec.Section.Name,
			Type:   sec.Section.Type,
			X:      sec.Section.X,
			Y:      sec.Section.Y,
			Width:  sec.Section.Width,
			Height: sec.Section.Height,
			Rows:   make([]RowView, 0, len(sec.Rows)),
		}
		for _, row := range sec.Rows {
			rv := RowView{
				ID:             RowKey(row.Row.ID),
				Title:          row.Row.Title,
				NumberOfSeats:  row.Row.NumberOfSeats,
				TicketCategory: row.Row.TicketID,
				Shape:          row.Row.Shape,
				Curve:          row.Row.Curve,
				Spacing:        row.Row.Spacing,
				Seats:          make([]SeatView, 0, len(row.Seats)),
			}
			for _, seat := range row.Seats {
				rv.Seats = append(rv.Seats, c.composeSeat(ctx, seat, statusBySeat, ticketByID, overlay))
			}
			sv.Rows = append(sv.Rows, rv)
		}
		view.Sections = append(view.Sections, sv)
	}
	return view, nil
}

// composeSeat resolves one seat's effective state. Precedence, highest
// first: hold overlay, ledger entry, template default. The hold layer
// is consulted only when the effective status is still available, so a
// booked or disabled seat can never be downgraded to hold.
func (c *Compositor) composeSeat(ctx context.Context, seat model.Seat, statusBySeat map[string]model.EventSeatStatus, ticketByID map[uint64]model.Ticket, overlay hold.Overlay) SeatView {
	ticketID := seat.TicketID
	status := seat.Status.String()
	if entry, ok := statusBySeat[SeatKey(seat.ID)]; ok {
		status = entry.Status.String()
		if entry.TicketID != nil {
			ticketID = entry.TicketID
		}
	}

	var holdBy *string
	if status == model.SeatAvailable.String() && overlay != nil {
		if token, ok := overlay.Lookup(ctx, seat.ID); ok {
			status = "hold"
			token = strings.TrimPrefix(token, "user_")
			holdBy = &token
		}
	}

	sv := SeatView{
		ID:             SeatKey(seat.ID),
		Number:         seat.Number,
		Label:          seat.Label,
		Type:           seat.Type,
		X:              seat.X,
		Y:              seat.Y,
		TicketCategory: ticketID,
		Status:         status,
		HoldBy:         holdBy,
		Radius:         seat.Radius,
		Icon:           seat.Icon,
	}
	if ticketID != nil {
		if t, ok := ticketByID[*ticketID]; ok {
			sv.Ticket = &TicketView{ID: t.ID, Name: t.Name, Price: t.Price}
		}
	}
	return sv
}
