package model

// SeatStatus is the closed per-seat booking status enum. The numeric
// values are what the event_seat_statuses table stores; the string
// labels are what the wire format carries. Keeping both directions in
// one place prevents the write path and the read path from drifting.
type SeatStatus int8

const (
	SeatAvailable SeatStatus = 0
	SeatBooked    SeatStatus = 1
	SeatDisabled  SeatStatus = 2
)

var seatStatusLabels = map[SeatStatus]string{
	SeatAvailable: "available",
	SeatBooked:    "booked",
	SeatDisabled:  "disabled",
}

var seatStatusValues = map[string]SeatStatus{
	"available": SeatAvailable,
	"booked":    SeatBooked,
	"disabled":  SeatDisabled,
}

// String returns the wire label for the status. Unknown numeric values
// fall back to "available" so a corrupted row never renders an empty
// status.
func (s SeatStatus) String() string {
	if label, ok := seatStatusLabels[s]; ok {
		return label
	}
	return seatStatusLabels[SeatAvailable]
}

// ParseSeatStatus maps a wire label to its numeric status. Unrecognized
// labels resolve to SeatAvailable; submission is deliberately lenient
// and never fails on a bad status string.
func ParseSeatStatus(label string) SeatStatus {
	if s, ok := seatStatusValues[label]; ok {
		return s
	}
	return SeatAvailable
}
