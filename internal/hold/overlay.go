// Package hold exposes the transient seat-hold overlay the compositor
// consults at render time. Holds are written by an external lock
// manager; this service only ever reads them and must tolerate the
// overlay being absent or empty.
package hold

import (
	"context"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Overlay looks up the holder token for a seat, if any. Implementations
// must accept lookups for seats that have no hold and stay cheap: the
// compositor calls Lookup once per available seat.
type Overlay interface {
	Lookup(ctx context.Context, seatID uint64) (string, bool)
}

// MapOverlay adapts a caller-supplied hold map. Callers key holds
// inconsistently, with raw numeric ids ("2") and prefixed forms
// ("seat_2") both occurring in the wild, so both forms are checked.
type MapOverlay map[string]string

// Lookup checks the prefixed form first, then the raw numeric form.
func (m MapOverlay) Lookup(_ context.Context, seatID uint64) (string, bool) {
	if m == nil {
		return "", false
	}
	if tok, ok := m["seat_"+strconv.FormatUint(seatID, 10)]; ok && tok != "" {
		return tok, true
	}
	if tok, ok := m[strconv.FormatUint(seatID, 10)]; ok && tok != "" {
		return tok, true
	}
	return "", false
}

// RedisOverlay is a point-in-time snapshot of the live holds the
// external lock manager writes as hold:<event_id>:<seat key> entries
// with a TTL. Every hold for the event is fetched up front, so the
// per-seat lookups during the tree walk touch no I/O.
type RedisOverlay struct {
	holds MapOverlay
}

// NewRedisOverlay loads the event's holds in one key scan plus a single
// MGET. A nil client or any Redis error yields an overlay that reports
// no holds: a flaky Redis must not block rendering.
func NewRedisOverlay(ctx context.Context, client *redis.Client, eventID uint64) *RedisOverlay {
	o := &RedisOverlay{holds: MapOverlay{}}
	if client == nil {
		return o
	}
	prefix := "hold:" + strconv.FormatUint(eventID, 10) + ":"

	var keys []string
	var cursor uint64
	for {
		batch, next, err := client.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return o
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return o
	}

	vals, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return o
	}
	for i, v := range vals {
		tok, ok := v.(string)
		if !ok || tok == "" {
			continue
		}
		// The key suffix is the lock manager's seat key, "seat_<id>"
		// or bare "<id>"; MapOverlay accepts both.
		o.holds[strings.TrimPrefix(keys[i], prefix)] = tok
	}
	return o
}

// Lookup answers from the snapshot.
func (o *RedisOverlay) Lookup(ctx context.Context, seatID uint64) (string, bool) {
	if o == nil {
		return "", false
	}
	return o.holds.Lookup(ctx, seatID)
}
