package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Duplicate deep-copies an existing layout into a new layout record
// with the given name. Stage, sections, rows and seats are all copied
// with fresh ids; geometry and ticket-category references are copied by
// value so the clone shares nothing with the source. The whole copy
// runs in one transaction: a failure partway leaves no new rows.
func (r *LayoutRepo) Duplicate(ctx context.Context, sourceID uint64, name string) (uint64, error) {
	src, err := r.GetWithDetails(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(name) == "" {
		name = src.Layout.Name + " (copy)"
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin duplicate layout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO layouts (name, venue_id, event_id, total_sections, total_rows, total_seats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, src.Layout.VenueID, src.Layout.EventID,
		src.Layout.TotalSections, src.Layout.TotalRows, src.Layout.TotalSeats)
	if err != nil {
		return 0, fmt.Errorf("insert cloned layout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	newID := uint64(id)

	if src.Stage != nil {
		st := StageSpec{
			Name:     src.Stage.Name,
			Position: src.Stage.Position,
			Shape:    src.Stage.Shape,
			Height:   src.Stage.Height,
			Width:    src.Stage.Width,
			X:        src.Stage.X,
			Y:        src.Stage.Y,
		}
		if err := insertStage(ctx, tx, newID, &st); err != nil {
			return 0, err
		}
	}

	for _, sec := range src.Sections {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO l_sections (layout_id, tier_id, name, type, x, y, width, height)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			newID, sec.Section.TierID, sec.Section.Name, sec.Section.Type,
			sec.Section.X, sec.Section.Y, sec.Section.Width, sec.Section.Height)
		if err != nil {
			return 0, fmt.Errorf("clone section: %w", err)
		}
		sid, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		newSectionID := uint64(sid)

		for _, row := range sec.Rows {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO l_rows (section_id, title, number_of_seats, shape, curve, spacing, ticket_id, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				newSectionID, row.Row.Title, row.Row.NumberOfSeats, row.Row.Shape,
				row.Row.Curve, row.Row.Spacing, row.Row.TicketID, row.Row.Position)
			if err != nil {
				return 0, fmt.Errorf("clone row: %w", err)
			}
			rid, err := res.LastInsertId()
			if err != nil {
				return 0, err
			}
			if err := cloneSeats(ctx, tx, uint64(rid), newSectionID, row); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit duplicate layout: %w", err)
	}
	return newID, nil
}

// cloneSeats copies one row's seats under new row/section ids in a
// single multi-row INSERT.
func cloneSeats(ctx context.Context, tx *sql.Tx, rowID, sectionID uint64, row RowDetails) error {
	if len(row.Seats) == 0 {
		return nil
	}
	query := `INSERT INTO l_seats (row_id, section_id, number, label, type, x, y, price, ticket_id, status, icon, radius) VALUES `
	args := make([]interface{}, 0, len(row.Seats)*12)
	for i, seat := range row.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, rowID, sectionID, seat.Number, seat.Label, seat.Type,
			seat.X, seat.Y, seat.Price, seat.TicketID, int8(seat.Status), seat.Icon, seat.Radius)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clone seats: %w", err)
	}
	return nil
}
