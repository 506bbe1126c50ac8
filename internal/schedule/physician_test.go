package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyTemplateCovers(t *testing.T) {
	tmpl := WeeklyTemplate{
		time.Monday: {
			{Start: 9 * time.Hour, End: 12 * time.Hour},
			{Start: 14 * time.Hour, End: 17 * time.Hour},
		},
	}

	// at() returns times on a Monday.
	assert.True(t, tmpl.Covers(at(9, 0), at(12, 0)), "exact window fits")
	assert.True(t, tmpl.Covers(at(10, 0), at(10, 30)))
	assert.True(t, tmpl.Covers(at(14, 0), at(15, 0)))

	assert.False(t, tmpl.Covers(at(11, 30), at(12, 30)), "straddles the lunch gap")
	assert.False(t, tmpl.Covers(at(8, 0), at(9, 0)), "before the first window")
	assert.False(t, tmpl.Covers(at(17, 0), at(18, 0)))

	tuesday := at(9, 0).AddDate(0, 0, 1)
	assert.False(t, tmpl.Covers(tuesday, tuesday.Add(time.Hour)), "no windows on tuesday")
}

func TestWeeklyTemplateCoversNilAcceptsEverything(t *testing.T) {
	var tmpl WeeklyTemplate
	assert.True(t, tmpl.Covers(at(3, 0), at(4, 0)))
}

func TestWeeklyTemplateCoversRejectsMidnightSpan(t *testing.T) {
	tmpl := WeeklyTemplate{
		time.Monday: {{Start: 0, End: 24 * time.Hour}},
	}
	assert.False(t, tmpl.Covers(at(23, 0), at(23, 0).Add(2*time.Hour)))
}

func TestPhysicianScheduleAdd(t *testing.T) {
	physID := uuid.New()
	sched := NewPhysicianSchedule(physID)

	require.NoError(t, sched.Add(Booking{ID: uuid.New(), PhysicianID: physID, Start: at(9, 0), End: at(10, 0)}))

	err := sched.Add(Booking{ID: uuid.New(), PhysicianID: uuid.New(), Start: at(11, 0), End: at(12, 0)})
	assert.ErrorIs(t, err, ErrWrongPhysician)
	assert.Len(t, sched.Bookings, 1)
}

func TestPhysicianScheduleInRange(t *testing.T) {
	physID := uuid.New()
	sched := NewPhysicianSchedule(physID)

	late := Booking{ID: uuid.New(), PhysicianID: physID, Start: at(14, 0), End: at(15, 0)}
	early := Booking{ID: uuid.New(), PhysicianID: physID, Start: at(9, 0), End: at(10, 0)}
	cancelled := Booking{ID: uuid.New(), PhysicianID: physID, Start: at(11, 0), End: at(12, 0), Cancelled: true}

	require.NoError(t, sched.Add(late))
	require.NoError(t, sched.Add(early))
	require.NoError(t, sched.Add(cancelled))

	got := sched.InRange(at(0, 0), at(23, 59))
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID, "results ordered by start")
	assert.Equal(t, late.ID, got[1].ID)

	assert.Empty(t, sched.InRange(at(16, 0), at(18, 0)))
}
