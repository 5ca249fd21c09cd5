package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seatforge/seatmap-service/internal/model"
)

// EventSeatStatusRepo persists the per-event seat ledger. Rows are
// keyed (event_id, seat_id) and bindings (event_id, event_key); both
// writes are single-row upserts so concurrent submissions for the same
// seat resolve to last-write-wins without partial rows.
type EventSeatStatusRepo struct {
	db *sql.DB
}

// NewEventSeatStatusRepo constructs the repo with the given DB handle.
func NewEventSeatStatusRepo(db *sql.DB) *EventSeatStatusRepo {
	return &EventSeatStatusRepo{db: db}
}

// UpsertBinding writes the event → layout binding, replacing the
// layout_id when a row for (event_id, event_key) already exists.
func (r *EventSeatStatusRepo) UpsertBinding(ctx context.Context, b model.EventHasLayout) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_has_layouts (event_id, event_key, layout_id)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE layout_id = VALUES(layout_id)`,
		b.EventID, b.EventKey, b.LayoutID)
	if err != nil {
		return fmt.Errorf("upsert event layout binding: %w", err)
	}
	return nil
}

// UpsertStatuses applies ledger entries sequentially in input order.
// Each entry is one atomic upsert on (event_id, seat_id); duplicates
// within a batch resolve last-write-wins.
func (r *EventSeatStatusRepo) UpsertStatuses(ctx context.Context, entries []model.EventSeatStatus) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submit statuses: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO event_seat_statuses (event_id, seat_id, event_key, section_id, ticket_id, status)
	           VALUES (?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             event_key = VALUES(event_key),
	             section_id = VALUES(section_id),
	             ticket_id = VALUES(ticket_id),
	             status = VALUES(status),
	             updated_at = CURRENT_TIMESTAMP`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, q,
			e.EventID, e.SeatID, e.EventKey, e.SectionID, e.TicketID, int8(e.Status)); err != nil {
			return fmt.Errorf("upsert seat status: %w", err)
		}
	}
	return tx.Commit()
}

// ListByEvent returns every ledger entry for the event. This is the
// compositor's single bulk status query.
func (r *EventSeatStatusRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventSeatStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, seat_id, event_key, section_id, ticket_id, booking_id, status, created_at, updated_at
		 FROM event_seat_statuses WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventSeatStatus
	for rows.Next() {
		var e model.EventSeatStatus
		var status int8
		if err := rows.Scan(&e.ID, &e.EventID, &e.SeatID, &e.EventKey, &e.SectionID,
			&e.TicketID, &e.BookingID, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Status = model.SeatStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestBindingForLayout resolves which event a layout currently
// renders for when the caller does not name one. The most recently
// created binding wins; highest id is the deterministic tie-break.
func (r *EventSeatStatusRepo) LatestBindingForLayout(ctx context.Context, layoutID uint64) (*model.EventHasLayout, error) {
	var b model.EventHasLayout
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, event_key, layout_id
		 FROM event_has_layouts WHERE layout_id = ?
		 ORDER BY id DESC LIMIT 1`, layoutID).
		Scan(&b.ID, &b.EventID, &b.EventKey, &b.LayoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
