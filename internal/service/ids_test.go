package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractNumericID(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want uint64
		ok   bool
	}{
		{"raw uint64", uint64(7), 7, true},
		{"raw int", 12, 12, true},
		{"json number", float64(42), 42, true},
		{"numeric string", "99", 99, true},
		{"prefixed section", "section_42", 42, true},
		{"prefixed seat", "seat_3", 3, true},
		{"digits mid string", "row-17-left", 17, true},
		{"first run wins", "a1b2", 1, true},
		{"no digits", "section_", 0, false},
		{"empty string", "", 0, false},
		{"negative int", -4, 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractNumericID(tc.in)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWireKeys(t *testing.T) {
	require.Equal(t, "layout_5", LayoutKey(5))
	require.Equal(t, "section_42", SectionKey(42))
	require.Equal(t, "row_9", RowKey(9))
	require.Equal(t, "seat_2", SeatKey(2))
}
