package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seatforge/seatmap-service/internal/model"
)

// LayoutSpec is the authoring input for a full seat-map template. The
// nested slices are created recursively: every section owns its rows,
// every row its seats. Geometry fields that the renderer cannot live
// without are pointers so a missing field is distinguishable from zero.
type LayoutSpec struct {
	Name     string
	VenueID  *uint64
	EventID  *uint64
	Stage    *StageSpec
	Sections []SectionSpec
}

// StageSpec describes the stage element created alongside a layout.
type StageSpec struct {
	Name     string
	Position string
	Shape    string
	Height   float64
	Width    float64
	X        float64
	Y        float64
}

// SectionSpec describes one section and its nested rows.
type SectionSpec struct {
	Name   string
	Type   string
	TierID *uint64
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	Rows   []RowSpec
}

// RowSpec describes one row and its nested seats.
type RowSpec struct {
	Title         string
	NumberOfSeats uint32
	Shape         string
	Curve         float64
	Spacing       float64
	TicketID      *uint64
	Seats         []SeatSpec
}

// SeatSpec describes one seat. Status is the wire label; unrecognized
// labels fall back to available.
type SeatSpec struct {
	Number   uint32
	Label    string
	Type     string
	Status   string
	TicketID *uint64
	X        *float64
	Y        *float64
	Price    *float64
	Icon     *string
	Radius   *float64
}

// LayoutDetails is the fully loaded template tree returned by
// GetWithDetails and consumed by the compositor.
type LayoutDetails struct {
	Layout   model.Layout
	Stage    *model.Stage
	Sections []SectionDetails
}

// SectionDetails pairs a section with its ordered rows.
type SectionDetails struct {
	Section model.Section
	Rows    []RowDetails
}

// RowDetails pairs a row with its ordered seats.
type RowDetails struct {
	Row   model.Row
	Seats []model.Seat
}

// LayoutRepo persists the Layout → Section → Row → Seat hierarchy.
// It is pure tree persistence: per-event seat state belongs to
// EventSeatStatusRepo. Every mutating method runs in one transaction
// so a failure partway leaves no orphaned rows.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Validate walks the spec and returns a ValidationError naming the
// first element missing required geometry. Sections need x/y/width/
// height, rows a title, seats x/y.
func (s *LayoutSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	for i, sec := range s.Sections {
		path := fmt.Sprintf("sections[%d]", i)
		switch {
		case sec.X == nil:
			return &ValidationError{Field: path + ".x", Reason: "required"}
		case sec.Y == nil:
			return &ValidationError{Field: path + ".y", Reason: "required"}
		case sec.Width == nil:
			return &ValidationError{Field: path + ".width", Reason: "required"}
		case sec.Height == nil:
			return &ValidationError{Field: path + ".height", Reason: "required"}
		}
		for j, row := range sec.Rows {
			rowPath := fmt.Sprintf("%s.rows[%d]", path, j)
			if strings.TrimSpace(row.Title) == "" {
				return &ValidationError{Field: rowPath + ".title", Reason: "required"}
			}
			for k, seat := range row.Seats {
				seatPath := fmt.Sprintf("%s.seats[%d]", rowPath, k)
				if seat.X == nil {
					return &ValidationError{Field: seatPath + ".x", Reason: "required"}
				}
				if seat.Y == nil {
					return &ValidationError{Field: seatPath + ".y", Reason: "required"}
				}
			}
		}
	}
	return nil
}

// counts returns the denormalized totals recomputed from the actual
// spec tree. The declared NumberOfSeats on rows is informational and
// deliberately not consulted here.
func (s *LayoutSpec) counts() (sections, rows, seats uint32) {
	sections = uint32(len(s.Sections))
	for _, sec := range s.Sections {
		rows += uint32(len(sec.Rows))
		for _, row := range sec.Rows {
			seats += uint32(len(row.Seats))
		}
	}
	return sections, rows, seats
}

// Create inserts a layout, its stage and the full section/row/seat tree
// in one transaction and returns the new layout id.
func (r *LayoutRepo) Create(ctx context.Context, spec *LayoutSpec) (uint64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create layout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	secs, rows, seats := spec.counts()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO layouts (name, venue_id, event_id, total_sections, total_rows, total_seats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(spec.Name), spec.VenueID, spec.EventID, secs, rows, seats)
	if err != nil {
		return 0, fmt.Errorf("insert layout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	layoutID := uint64(id)

	if spec.Stage != nil {
		if err := insertStage(ctx, tx, layoutID, spec.Stage); err != nil {
			return 0, err
		}
	}
	if err := insertSections(ctx, tx, layoutID, spec.Sections); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create layout: %w", err)
	}
	return layoutID, nil
}

// Update replaces a layout's scalar fields, its stage and its whole
// child tree with the incoming spec, in one transaction. A layout whose
// seats carry ledger entries cannot be rewritten: the rewrite would
// invalidate seat ids referenced by live events, so the same in-use
// guard as Delete applies.
func (r *LayoutRepo) Update(ctx context.Context, id uint64, spec *LayoutSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update layout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := layoutExists(ctx, tx, id); err != nil {
		return err
	}
	if err := guardNotInUse(ctx, tx, id); err != nil {
		return err
	}

	secs, rows, seats := spec.counts()
	if _, err := tx.ExecContext(ctx,
		`UPDATE layouts
		 SET name = ?, venue_id = ?, event_id = ?, total_sections = ?, total_rows = ?, total_seats = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		strings.TrimSpace(spec.Name), spec.VenueID, spec.EventID, secs, rows, seats, id); err != nil {
		return fmt.Errorf("update layout: %w", err)
	}

	if err := deleteChildren(ctx, tx, id); err != nil {
		return err
	}
	if spec.Stage != nil {
		if err := insertStage(ctx, tx, id, spec.Stage); err != nil {
			return err
		}
	}
	if err := insertSections(ctx, tx, id, spec.Sections); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update layout: %w", err)
	}
	return nil
}

// GetWithDetails loads the full template tree: the layout record, its
// stage and the sections with nested rows and seats. One query per
// table regardless of tree size.
func (r *LayoutRepo) GetWithDetails(ctx context.Context, id uint64) (*LayoutDetails, error) {
	var d LayoutDetails
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, venue_id, event_id, total_sections, total_rows, total_seats, created_at, updated_at
		 FROM layouts WHERE id = ? AND deleted_at IS NULL`, id).
		Scan(&d.Layout.ID, &d.Layout.Name, &d.Layout.VenueID, &d.Layout.EventID,
			&d.Layout.TotalSections, &d.Layout.TotalRows, &d.Layout.TotalSeats,
			&d.Layout.CreatedAt, &d.Layout.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}

	var st model.Stage
	err = r.db.QueryRowContext(ctx,
		`SELECT id, layout_id, name, position, shape, height, width, x, y
		 FROM l_stages WHERE layout_id = ? AND deleted_at IS NULL
		 ORDER BY id DESC LIMIT 1`, id).
		Scan(&st.ID, &st.LayoutID, &st.Name, &st.Position, &st.Shape, &st.Height, &st.Width, &st.X, &st.Y)
	switch {
	case err == nil:
		d.Stage = &st
	case errors.Is(err, sql.ErrNoRows):
		// a layout without a stage renders fine
	default:
		return nil, err
	}

	sections, index, err := r.loadSections(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadRowsAndSeats(ctx, id, sections, index); err != nil {
		return nil, err
	}
	d.Sections = sections
	return &d, nil
}

// loadSections fetches the layout's sections and returns them along
// with a section-id index used when attaching rows.
func (r *LayoutRepo) loadSections(ctx context.Context, layoutID uint64) ([]SectionDetails, map[uint64]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, layout_id, tier_id, name, type, x, y, width, height
		 FROM l_sections WHERE layout_id = ? AND deleted_at IS NULL ORDER BY id`, layoutID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var sections []SectionDetails
	index := make(map[uint64]int)
	for rows.Next() {
		var sec model.Section
		if err := rows.Scan(&sec.ID, &sec.LayoutID, &sec.TierID, &sec.Name, &sec.Type,
			&sec.X, &sec.Y, &sec.Width, &sec.Height); err != nil {
			return nil, nil, err
		}
		index[sec.ID] = len(sections)
		sections = append(sections, SectionDetails{Section: sec})
	}
	return sections, index, rows.Err()
}

// loadRowsAndSeats fetches every row and seat under the layout and
// stitches them into the section slice in one pass each.
func (r *LayoutRepo) loadRowsAndSeats(ctx context.Context, layoutID uint64, sections []SectionDetails, index map[uint64]int) error {
	rowRows, err := r.db.QueryContext(ctx,
		`SELECT lr.id, lr.section_id, lr.title, lr.number_of_seats, lr.shape, lr.curve, lr.spacing, lr.ticket_id, lr.position
		 FROM l_rows lr
		 JOIN l_sections ls ON ls.id = lr.section_id
		 WHERE ls.layout_id = ? AND lr.deleted_at IS NULL
		 ORDER BY lr.position, lr.id`, layoutID)
	if err != nil {
		return err
	}
	defer rowRows.Close()

	rowIndex := make(map[uint64][2]int) // row id -> (section slot, row slot)
	for rowRows.Next() {
		var row model.Row
		if err := rowRows.Scan(&row.ID, &row.SectionID, &row.Title, &row.NumberOfSeats,
			&row.Shape, &row.Curve, &row.Spacing, &row.TicketID, &row.Position); err != nil {
			return err
		}
		si, ok := index[row.SectionID]
		if !ok {
			continue
		}
		rowIndex[row.ID] = [2]int{si, len(sections[si].Rows)}
		sections[si].Rows = append(sections[si].Rows, RowDetails{Row: row})
	}
	if err := rowRows.Err(); err != nil {
		return err
	}

	seatRows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.row_id, s.section_id, s.number, s.label, s.type, s.x, s.y, s.price, s.ticket_id, s.status, s.icon, s.radius
		 FROM l_seats s
		 JOIN l_sections ls ON ls.id = s.section_id
		 WHERE ls.layout_id = ? AND s.deleted_at IS NULL
		 ORDER BY s.row_id, s.number, s.id`, layoutID)
	if err != nil {
		return err
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var seat model.Seat
		var status int8
		if err := seatRows.Scan(&seat.ID, &seat.RowID, &seat.SectionID, &seat.Number, &seat.Label,
			&seat.Type, &seat.X, &seat.Y, &seat.Price, &seat.TicketID, &status, &seat.Icon, &seat.Radius); err != nil {
			return err
		}
		seat.Status = model.SeatStatus(status)
		slot, ok := rowIndex[seat.RowID]
		if !ok {
			continue
		}
		row := &sections[slot[0]].Rows[slot[1]]
		row.Seats = append(row.Seats, seat)
	}
	return seatRows.Err()
}

// Delete soft-deletes a layout and its entire subtree by stamping
// deleted_at; every read query filters on that column, so the tree
// vanishes from the API while staying recoverable in the database. If
// any seat under the layout carries an event_seat_statuses row the call
// fails with ErrLayoutInUse and performs no mutation. Event bindings
// are join rows with no independent state and are removed outright so
// binding-based event resolution cannot land on a deleted layout.
func (r *LayoutRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete layout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := layoutExists(ctx, tx, id); err != nil {
		return err
	}
	if err := guardNotInUse(ctx, tx, id); err != nil {
		return err
	}
	if err := softDeleteChildren(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_has_layouts WHERE layout_id = ?`, id); err != nil {
		return fmt.Errorf("delete layout bindings: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE layouts SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		return fmt.Errorf("soft delete layout: %w", err)
	}
	return tx.Commit()
}

// layoutExists verifies the layout row is present and not soft-deleted.
func layoutExists(ctx context.Context, tx *sql.Tx, id uint64) error {
	var found uint64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM layouts WHERE id = ? AND deleted_at IS NULL`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLayoutNotFound
	}
	return err
}

// guardNotInUse fails with ErrLayoutInUse when any seat under the
// layout is referenced by the event-seat-status ledger. The check runs
// inside the caller's transaction so the cascade cannot race a
// concurrent submission.
func guardNotInUse(ctx context.Context, tx *sql.Tx, layoutID uint64) error {
	var refs uint64
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM event_seat_statuses ess
		 JOIN l_seats s ON s.id = ess.seat_id
		 JOIN l_sections ls ON ls.id = s.section_id
		 WHERE ls.layout_id = ?`, layoutID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count ledger references: %w", err)
	}
	if refs > 0 {
		return ErrLayoutInUse
	}
	return nil
}

// softDeleteChildren stamps deleted_at on the stage and the
// section/row/seat subtree, children before parents.
func softDeleteChildren(ctx context.Context, tx *sql.Tx, layoutID uint64) error {
	steps := []string{
		`UPDATE l_seats s JOIN l_sections ls ON ls.id = s.section_id
		 SET s.deleted_at = CURRENT_TIMESTAMP WHERE ls.layout_id = ? AND s.deleted_at IS NULL`,
		`UPDATE l_rows lr JOIN l_sections ls ON ls.id = lr.section_id
		 SET lr.deleted_at = CURRENT_TIMESTAMP WHERE ls.layout_id = ? AND lr.deleted_at IS NULL`,
		`UPDATE l_sections SET deleted_at = CURRENT_TIMESTAMP WHERE layout_id = ? AND deleted_at IS NULL`,
		`UPDATE l_stages SET deleted_at = CURRENT_TIMESTAMP WHERE layout_id = ? AND deleted_at IS NULL`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, layoutID); err != nil {
			return fmt.Errorf("soft delete layout children: %w", err)
		}
	}
	return nil
}

// deleteChildren removes the stage and the section/row/seat subtree
// outright, children before parents. Update uses this on the tree it is
// about to replace: the in-use guard already proved nothing references
// the old rows, and keeping every superseded revision would grow the
// child tables on every edit.
func deleteChildren(ctx context.Context, tx *sql.Tx, layoutID uint64) error {
	steps := []string{
		`DELETE s FROM l_seats s JOIN l_sections ls ON ls.id = s.section_id WHERE ls.layout_id = ?`,
		`DELETE lr FROM l_rows lr JOIN l_sections ls ON ls.id = lr.section_id WHERE ls.layout_id = ?`,
		`DELETE FROM l_sections WHERE layout_id = ?`,
		`DELETE FROM l_stages WHERE layout_id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, layoutID); err != nil {
			return fmt.Errorf("delete layout children: %w", err)
		}
	}
	return nil
}

// insertStage inserts the stage row for a layout.
func insertStage(ctx context.Context, tx *sql.Tx, layoutID uint64, st *StageSpec) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO l_stages (layout_id, name, position, shape, height, width, x, y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		layoutID, st.Name, st.Position, st.Shape, st.Height, st.Width, st.X, st.Y)
	if err != nil {
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

// insertSections creates the section/row/seat subtree for a layout.
// Sections and rows are inserted individually to obtain generated ids;
// each row's seats go in as one multi-row INSERT.
func insertSections(ctx context.Context, tx *sql.Tx, layoutID uint64, sections []SectionSpec) error {
	for _, sec := range sections {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO l_sections (layout_id, tier_id, name, type, x, y, width, height)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			layoutID, sec.TierID, sec.Name, sec.Type, *sec.X, *sec.Y, *sec.Width, *sec.Height)
		if err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
		sid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		sectionID := uint64(sid)

		for pos, row := range sec.Rows {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO l_rows (section_id, title, number_of_seats, shape, curve, spacing, ticket_id, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				sectionID, row.Title, row.NumberOfSeats, row.Shape, row.Curve, row.Spacing, row.TicketID, pos)
			if err != nil {
				return fmt.Errorf("insert row: %w", err)
			}
			rid, err := res.LastInsertId()
			if err != nil {
				return err
			}
			if err := insertSeats(ctx, tx, uint64(rid), sectionID, row.Seats); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertSeats inserts all seats of a row in a single statement.
func insertSeats(ctx context.Context, tx *sql.Tx, rowID, sectionID uint64, seats []SeatSpec) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO l_seats (row_id, section_id, number, label, type, x, y, price, ticket_id, status, icon, radius) VALUES `
	args := make([]interface{}, 0, len(seats)*12)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, rowID, sectionID, seat.Number, seat.Label, seat.Type,
			*seat.X, *seat.Y, seat.Price, seat.TicketID, int8(model.ParseSeatStatus(seat.Status)),
			seat.Icon, seat.Radius)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert seats: %w", err)
	}
	return nil
}
