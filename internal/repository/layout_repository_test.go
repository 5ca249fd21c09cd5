package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/seatforge/seatmap-service/internal/model"
)

func newMockRepo(t *testing.T) (*LayoutRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLayoutRepo(db), mock
}

func TestLayoutRepoCreateInsertsTree(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := validSpec() // 1 section, 1 row, 2 seats

	mock.ExpectBegin()
	// Counters are recomputed from the actual tree, not declared counts.
	mock.ExpectExec("INSERT INTO layouts").
		WithArgs("Main Hall", nil, nil, int64(1), int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO l_stages").
		WithArgs(int64(7), "Stage", "top", "rect", 60.0, 300.0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("INSERT INTO l_sections").
		WithArgs(int64(7), nil, "A", "seated", 0.0, 100.0, 400.0, 200.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO l_rows").
		WithArgs(int64(11), "A", int64(2), "", 0.0, 0.0, nil, int64(0)).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO l_seats").
		WithArgs(
			int64(21), int64(11), int64(1), "A1", "", 10.0, 110.0, nil, nil, int64(0), nil, nil,
			int64(21), int64(11), int64(2), "A2", "", 40.0, 110.0, nil, nil, int64(0), nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(31, 2))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), spec)
	require.NoError(t, err)
	require.Equal(t, uint64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

// mockDetailsQueries arranges the five read queries GetWithDetails
// issues for a layout with one stage, two sections, one row each and
// seats split 2/1 across the rows.
func mockDetailsQueries(mock sqlmock.Sqlmock, layoutID int64) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM layouts").
		WithArgs(layoutID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "venue_id", "event_id", "total_sections", "total_rows", "total_seats", "created_at", "updated_at",
		}).AddRow(layoutID, "Src", nil, nil, 2, 2, 3, now, now))
	mock.ExpectQuery("FROM l_stages").
		WithArgs(layoutID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "layout_id", "name", "position", "shape", "height", "width", "x", "y",
		}).AddRow(5, layoutID, "Stage", "top", "rect", 60.0, 300.0, 1.0, 2.0))
	mock.ExpectQuery("FROM l_sections").
		WithArgs(layoutID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "layout_id", "tier_id", "name", "type", "x", "y", "width", "height",
		}).
			AddRow(10, layoutID, nil, "A", "seated", 0.0, 0.0, 400.0, 200.0).
			AddRow(20, layoutID, nil, "B", "seated", 0.0, 250.0, 400.0, 200.0))
	mock.ExpectQuery("FROM l_rows").
		WithArgs(layoutID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "section_id", "title", "number_of_seats", "shape", "curve", "spacing", "ticket_id", "position",
		}).
			AddRow(100, 10, "A1", 2, "straight", 0.0, 1.5, nil, 0).
			AddRow(200, 20, "B1", 1, "curved", 0.3, 1.5, nil, 0))
	mock.ExpectQuery("FROM l_seats").
		WithArgs(layoutID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "row_id", "section_id", "number", "label", "type", "x", "y", "price", "ticket_id", "status", "icon", "radius",
		}).
			AddRow(1000, 100, 10, 1, "A1-1", "standard", 10.0, 20.0, nil, nil, 0, nil, nil).
			AddRow(1001, 100, 10, 2, "A1-2", "standard", 30.0, 20.0, nil, nil, 1, nil, nil).
			AddRow(2000, 200, 20, 1, "B1-1", "standard", 10.0, 270.0, nil, nil, 2, nil, nil))
}

func TestLayoutRepoGetWithDetailsStitchesTree(t *testing.T) {
	repo, mock := newMockRepo(t)
	mockDetailsQueries(mock, 1)

	d, err := repo.GetWithDetails(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, uint64(1), d.Layout.ID)
	require.NotNil(t, d.Stage)
	require.Equal(t, "Stage", d.Stage.Name)
	require.Len(t, d.Sections, 2)

	// Rows and seats attach to their own parents, not positionally.
	secA := d.Sections[0]
	require.Equal(t, uint64(10), secA.Section.ID)
	require.Len(t, secA.Rows, 1)
	require.Equal(t, uint64(100), secA.Rows[0].Row.ID)
	require.Len(t, secA.Rows[0].Seats, 2)
	require.Equal(t, model.SeatBooked, secA.Rows[0].Seats[1].Status)

	secB := d.Sections[1]
	require.Equal(t, uint64(20), secB.Section.ID)
	require.Len(t, secB.Rows, 1)
	require.Len(t, secB.Rows[0].Seats, 1)
	require.Equal(t, uint64(2000), secB.Rows[0].Seats[0].ID)
	require.Equal(t, model.SeatDisabled, secB.Rows[0].Seats[0].Status)
}

func TestLayoutRepoDeleteSoftDeletesTree(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM layouts").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Children first, then bindings, then the layout itself. Every
	// statement stamps deleted_at; nothing deletes the tree rows.
	mock.ExpectExec("UPDATE l_seats").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE l_rows").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE l_sections").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE l_stages").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM event_has_layouts").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE layouts SET deleted_at").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutRepoDeleteInUseLeavesTreeUntouched(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM layouts").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	// No mutating statement may run once the guard trips.
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ErrLayoutInUse)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutRepoDuplicateCopiesGeometry(t *testing.T) {
	repo, mock := newMockRepo(t)
	mockDetailsQueries(mock, 1)

	mock.ExpectBegin()
	// Counters and geometry are copied by value; the clone gets a
	// default name derived from the source.
	mock.ExpectExec("INSERT INTO layouts").
		WithArgs("Src (copy)", nil, nil, int64(2), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectExec("INSERT INTO l_stages").
		WithArgs(int64(99), "Stage", "top", "rect", 60.0, 300.0, 1.0, 2.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO l_sections").
		WithArgs(int64(99), nil, "A", "seated", 0.0, 0.0, 400.0, 200.0).
		WillReturnResult(sqlmock.NewResult(110, 1))
	mock.ExpectExec("INSERT INTO l_rows").
		WithArgs(int64(110), "A1", int64(2), "straight", 0.0, 1.5, nil, int64(0)).
		WillReturnResult(sqlmock.NewResult(1100, 1))
	mock.ExpectExec("INSERT INTO l_seats").
		WithArgs(
			int64(1100), int64(110), int64(1), "A1-1", "standard", 10.0, 20.0, nil, nil, int64(0), nil, nil,
			int64(1100), int64(110), int64(2), "A1-2", "standard", 30.0, 20.0, nil, nil, int64(1), nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO l_sections").
		WithArgs(int64(99), nil, "B", "seated", 0.0, 250.0, 400.0, 200.0).
		WillReturnResult(sqlmock.NewResult(120, 1))
	mock.ExpectExec("INSERT INTO l_rows").
		WithArgs(int64(120), "B1", int64(1), "curved", 0.3, 1.5, nil, int64(0)).
		WillReturnResult(sqlmock.NewResult(1200, 1))
	mock.ExpectExec("INSERT INTO l_seats").
		WithArgs(int64(1200), int64(120), int64(1), "B1-1", "standard", 10.0, 270.0, nil, nil, int64(2), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	newID, err := repo.Duplicate(context.Background(), 1, "")
	require.NoError(t, err)
	require.Equal(t, uint64(99), newID)
	require.NotEqual(t, uint64(1), newID)
	require.NoError(t, mock.ExpectationsWereMet())
}
