package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 7, hour, min, 0, 0, time.UTC) // a Monday
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"back to back", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back reversed", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"zero duration inside", at(9, 30), at(9, 30), at(9, 0), at(10, 0), false},
		{"zero duration at start", at(9, 0), at(9, 0), at(9, 0), at(10, 0), false},
		{"both zero duration", at(9, 30), at(9, 30), at(9, 30), at(9, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestBookingOverlapsRange(t *testing.T) {
	b := Booking{Start: at(9, 0), End: at(10, 0)}

	assert.True(t, b.OverlapsRange(at(9, 30), at(10, 30)))
	assert.False(t, b.OverlapsRange(at(10, 0), at(11, 0)))
	assert.False(t, b.OverlapsRange(at(8, 0), at(9, 0)))
}
