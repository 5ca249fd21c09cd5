package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seatforge/seatmap-service/internal/model"
)

// fakeLedgerStore is an in-memory LedgerStore. Statuses key on
// (event_id, seat_id) like the real table's unique index.
type fakeLedgerStore struct {
	bindings []model.EventHasLayout
	statuses map[string]model.EventSeatStatus
	nextID   uint64
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{statuses: map[string]model.EventSeatStatus{}}
}

func statusKey(eventID, seatID uint64) string {
	return fmt.Sprintf("%d:%d", eventID, seatID)
}

func (f *fakeLedgerStore) UpsertBinding(_ context.Context, b model.EventHasLayout) error {
	for i, cur := range f.bindings {
		if cur.EventID == b.EventID && cur.EventKey == b.EventKey {
			f.bindings[i].LayoutID = b.LayoutID
			return nil
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.bindings = append(f.bindings, b)
	return nil
}

func (f *fakeLedgerStore) UpsertStatuses(_ context.Context, entries []model.EventSeatStatus) error {
	for _, e := range entries {
		key := statusKey(e.EventID, e.SeatID)
		if existing, ok := f.statuses[key]; ok {
			e.ID = existing.ID
		} else {
			f.nextID++
			e.ID = f.nextID
		}
		f.statuses[key] = e
	}
	return nil
}

func (f *fakeLedgerStore) ListByEvent(_ context.Context, eventID uint64) ([]model.EventSeatStatus, error) {
	var out []model.EventSeatStatus
	for _, e := range f.statuses {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLedgerStore) LatestBindingForLayout(_ context.Context, layoutID uint64) (*model.EventHasLayout, error) {
	var latest *model.EventHasLayout
	for i := range f.bindings {
		b := f.bindings[i]
		if b.LayoutID == layoutID && (latest == nil || b.ID > latest.ID) {
			latest = &f.bindings[i]
		}
	}
	return latest, nil
}

func uintPtr(v uint64) *uint64 { return &v }

func TestEventLayoutSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes prefixed ids and statuses", func(t *testing.T) {
		store := newFakeLedgerStore()
		svc := NewEventLayoutService(store)

		applied, skipped, err := svc.Submit(ctx, SubmitEventLayoutInput{
			EventID:  10,
			EventKey: "2026-03-01",
			LayoutID: 3,
			Assignments: []Assignment{
				{SeatID: "seat_2", SectionID: "section_42", TicketID: uintPtr(5), Status: "booked"},
				{SeatID: float64(7), SectionID: "section_", Status: "nonsense"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, 2, applied)
		require.Zero(t, skipped)

		booked := store.statuses[statusKey(10, 2)]
		require.Equal(t, model.SeatBooked, booked.Status)
		require.Equal(t, uint64(42), *booked.SectionID)
		require.Equal(t, uint64(5), *booked.TicketID)
		require.Equal(t, "2026-03-01", booked.EventKey)

		// Unparseable section id becomes nil; unknown status becomes available.
		lenient := store.statuses[statusKey(10, 7)]
		require.Nil(t, lenient.SectionID)
		require.Equal(t, model.SeatAvailable, lenient.Status)
	})

	t.Run("skips assignments without a usable seat id", func(t *testing.T) {
		store := newFakeLedgerStore()
		svc := NewEventLayoutService(store)

		applied, skipped, err := svc.Submit(ctx, SubmitEventLayoutInput{
			EventID:  10,
			EventKey: "k",
			LayoutID: 3,
			Assignments: []Assignment{
				{SeatID: "seat_", Status: "booked"},
				{SeatID: "seat_4", Status: "booked"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, 1, applied)
		require.Equal(t, 1, skipped)
		require.Len(t, store.statuses, 1)
	})

	t.Run("idempotent upsert", func(t *testing.T) {
		store := newFakeLedgerStore()
		svc := NewEventLayoutService(store)

		in := SubmitEventLayoutInput{
			EventID:  10,
			EventKey: "k",
			LayoutID: 3,
			Assignments: []Assignment{
				{SeatID: "seat_1", TicketID: uintPtr(5), Status: "booked"},
				{SeatID: "seat_2", Status: "disabled"},
			},
		}
		_, _, err := svc.Submit(ctx, in)
		require.NoError(t, err)
		first := make(map[string]model.EventSeatStatus, len(store.statuses))
		for k, v := range store.statuses {
			first[k] = v
		}

		_, _, err = svc.Submit(ctx, in)
		require.NoError(t, err)
		require.Equal(t, first, store.statuses)
		require.Len(t, store.bindings, 1)
	})

	t.Run("last write wins within a batch", func(t *testing.T) {
		store := newFakeLedgerStore()
		svc := NewEventLayoutService(store)

		_, _, err := svc.Submit(ctx, SubmitEventLayoutInput{
			EventID:  10,
			EventKey: "k",
			LayoutID: 3,
			Assignments: []Assignment{
				{SeatID: "seat_1", Status: "booked"},
				{SeatID: "seat_1", Status: "disabled"},
			},
		})
		require.NoError(t, err)
		require.Len(t, store.statuses, 1)
		require.Equal(t, model.SeatDisabled, store.statuses[statusKey(10, 1)].Status)
	})

	t.Run("binding upsert replaces layout id", func(t *testing.T) {
		store := newFakeLedgerStore()
		svc := NewEventLayoutService(store)

		_, _, err := svc.Submit(ctx, SubmitEventLayoutInput{EventID: 10, EventKey: "k", LayoutID: 3})
		require.NoError(t, err)
		_, _, err = svc.Submit(ctx, SubmitEventLayoutInput{EventID: 10, EventKey: "k", LayoutID: 8})
		require.NoError(t, err)

		require.Len(t, store.bindings, 1)
		require.Equal(t, uint64(8), store.bindings[0].LayoutID)
	})
}

func TestEventLayoutGet(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore()
	svc := NewEventLayoutService(store)

	_, _, err := svc.Submit(ctx, SubmitEventLayoutInput{
		EventID:  10,
		EventKey: "k",
		LayoutID: 3,
		Assignments: []Assignment{
			{SeatID: "seat_2", SectionID: "section_1", TicketID: uintPtr(5), Status: "booked"},
		},
	})
	require.NoError(t, err)

	rows, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, EventSeatRow{
		SeatID:    2,
		SectionID: uintPtr(1),
		TicketID:  uintPtr(5),
		Status:    "booked",
	}, rows[0])

	// Other events stay invisible.
	rows, err = svc.Get(ctx, 11)
	require.NoError(t, err)
	require.Empty(t, rows)
}
