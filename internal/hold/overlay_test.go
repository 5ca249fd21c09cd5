package hold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapOverlayLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("prefixed key form", func(t *testing.T) {
		m := MapOverlay{"seat_2": "user_abc"}
		tok, ok := m.Lookup(ctx, 2)
		require.True(t, ok)
		require.Equal(t, "user_abc", tok)
	})

	t.Run("raw numeric key form", func(t *testing.T) {
		m := MapOverlay{"7": "tok-7"}
		tok, ok := m.Lookup(ctx, 7)
		require.True(t, ok)
		require.Equal(t, "tok-7", tok)
	})

	t.Run("prefixed form wins over raw", func(t *testing.T) {
		m := MapOverlay{"seat_3": "prefixed", "3": "raw"}
		tok, ok := m.Lookup(ctx, 3)
		require.True(t, ok)
		require.Equal(t, "prefixed", tok)
	})

	t.Run("no hold for seat", func(t *testing.T) {
		m := MapOverlay{"seat_2": "tok"}
		_, ok := m.Lookup(ctx, 5)
		require.False(t, ok)
	})

	t.Run("empty token is no hold", func(t *testing.T) {
		m := MapOverlay{"seat_2": ""}
		_, ok := m.Lookup(ctx, 2)
		require.False(t, ok)
	})

	t.Run("nil map", func(t *testing.T) {
		var m MapOverlay
		_, ok := m.Lookup(ctx, 1)
		require.False(t, ok)
	})
}

func TestRedisOverlayNilSafe(t *testing.T) {
	ctx := context.Background()

	var o *RedisOverlay
	_, ok := o.Lookup(ctx, 1)
	require.False(t, ok)

	_, ok = NewRedisOverlay(ctx, nil, 10).Lookup(ctx, 1)
	require.False(t, ok)
}

func TestRedisOverlaySnapshotLookup(t *testing.T) {
	ctx := context.Background()

	// Lookup reads the prefetched snapshot only; both seat key forms
	// the lock manager writes are honored.
	o := &RedisOverlay{holds: MapOverlay{"seat_2": "user_abc", "3": "tok-3"}}

	tok, ok := o.Lookup(ctx, 2)
	require.True(t, ok)
	require.Equal(t, "user_abc", tok)

	tok, ok = o.Lookup(ctx, 3)
	require.True(t, ok)
	require.Equal(t, "tok-3", tok)

	_, ok = o.Lookup(ctx, 4)
	require.False(t, ok)
}
