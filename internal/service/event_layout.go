package service

import (
	"context"

	"github.com/seatforge/seatmap-service/internal/model"
)

// LedgerStore is the slice of the event-seat-status repository the
// service layer needs.
type LedgerStore interface {
	UpsertBinding(ctx context.Context, b model.EventHasLayout) error
	UpsertStatuses(ctx context.Context, entries []model.EventSeatStatus) error
	ListByEvent(ctx context.Context, eventID uint64) ([]model.EventSeatStatus, error)
	LatestBindingForLayout(ctx context.Context, layoutID uint64) (*model.EventHasLayout, error)
}

// Assignment is one incoming seat assignment. Seat and section ids
// arrive in whatever form the caller serialized (raw numbers or
// prefixed strings) and are normalized here at the boundary.
type Assignment struct {
	SeatID    interface{} `json:"seatId"`
	SectionID interface{} `json:"sectionId"`
	TicketID  *uint64     `json:"ticketId"`
	Status    string      `json:"status"`
}

// SubmitEventLayoutInput is the full submission payload.
type SubmitEventLayoutInput struct {
	EventID     uint64       `json:"event_id"`
	EventKey    string       `json:"event_key"`
	LayoutID    uint64       `json:"layout_id"`
	Assignments []Assignment `json:"assignments"`
}

// EventSeatRow is one ledger entry in external form, numeric status
// translated back to its label.
type EventSeatRow struct {
	SeatID    uint64  `json:"seatId"`
	SectionID *uint64 `json:"sectionId"`
	TicketID  *uint64 `json:"ticketId"`
	Status    string  `json:"status"`
}

// EventLayoutService owns the per-event seat ledger semantics:
// binding upsert, lenient assignment normalization and the read path
// consumed by booking surfaces.
type EventLayoutService struct {
	store LedgerStore
}

// NewEventLayoutService constructs the service over a ledger store.
func NewEventLayoutService(store LedgerStore) *EventLayoutService {
	return &EventLayoutService{store: store}
}

// Submit upserts the event→layout binding, then applies each
// assignment in input order as a single-row upsert keyed
// (event_id, seat_id). Normalization is deliberately lenient:
// unrecognized status labels become available, a section id without
// digits becomes NULL, and an assignment whose seat id cannot be
// normalized is skipped rather than failing the batch (a seat id is
// the upsert key, so there is nothing coherent to write without one).
// Returns how many assignments were applied and how many skipped.
func (s *EventLayoutService) Submit(ctx context.Context, in SubmitEventLayoutInput) (applied, skipped int, err error) {
	if err := s.store.UpsertBinding(ctx, model.EventHasLayout{
		EventID:  in.EventID,
		EventKey: in.EventKey,
		LayoutID: in.LayoutID,
	}); err != nil {
		return 0, 0, err
	}

	entries := make([]model.EventSeatStatus, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		seatID, ok := ExtractNumericID(a.SeatID)
		if !ok {
			skipped++
			continue
		}
		var sectionID *uint64
		if sid, ok := ExtractNumericID(a.SectionID); ok {
			sectionID = &sid
		}
		entries = append(entries, model.EventSeatStatus{
			EventID:   in.EventID,
			SeatID:    seatID,
			EventKey:  in.EventKey,
			SectionID: sectionID,
			TicketID:  a.TicketID,
			Status:    model.ParseSeatStatus(a.Status),
		})
	}
	if err := s.store.UpsertStatuses(ctx, entries); err != nil {
		return 0, skipped, err
	}
	return len(entries), skipped, nil
}

// Get returns every ledger entry for the event with status labels
// translated for external consumption.
func (s *EventLayoutService) Get(ctx context.Context, eventID uint64) ([]EventSeatRow, error) {
	entries, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]EventSeatRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, EventSeatRow{
			SeatID:    e.SeatID,
			SectionID: e.SectionID,
			TicketID:  e.TicketID,
			Status:    e.Status.String(),
		})
	}
	return out, nil
}
