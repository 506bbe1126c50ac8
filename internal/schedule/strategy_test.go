package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkAgainst(sched *PhysicianSchedule, facility []UnavailableBlock) CheckFunc {
	return func(start, end time.Time) CheckResult {
		proposed := Booking{PhysicianID: sched.PhysicianID, Start: start, End: end}
		return CheckConflicts(proposed, sched, facility, uuid.Nil)
	}
}

func TestFirstAvailableSkipsBusyWindow(t *testing.T) {
	physID := uuid.New()
	sched := fixtureSchedule(t, physID,
		Booking{ID: uuid.New(), PhysicianID: physID, Start: at(9, 0), End: at(10, 0)},
		Booking{ID: uuid.New(), PhysicianID: physID, Start: at(10, 0), End: at(11, 0)},
	)

	strat := NewFirstAvailable(15*time.Minute, 7*24*time.Hour)
	slot := strat.NextAvailable(at(9, 0), 30*time.Minute, checkAgainst(sched, nil))

	require.NotNil(t, slot)
	assert.Equal(t, at(11, 0), slot.Start, "first open slot is right after the busy window")
	assert.Equal(t, at(11, 30), slot.End)
	assert.True(t, slot.Preferred)
}

func TestFirstAvailableReturnsCursorWhenFree(t *testing.T) {
	sched := NewPhysicianSchedule(uuid.New())

	strat := NewFirstAvailable(15*time.Minute, 24*time.Hour)
	slot := strat.NextAvailable(at(14, 0), 30*time.Minute, checkAgainst(sched, nil))

	require.NotNil(t, slot)
	assert.Equal(t, at(14, 0), slot.Start)
	assert.False(t, slot.Preferred)
}

func TestFirstAvailableHorizonExhausted(t *testing.T) {
	physID := uuid.New()
	sched := NewPhysicianSchedule(physID)
	// One block covering the whole horizon.
	sched.Blocks = []UnavailableBlock{
		{ID: uuid.New(), PhysicianID: &physID, Start: at(0, 0), End: at(0, 0).AddDate(0, 0, 30), Reason: ReasonVacation},
	}

	strat := NewFirstAvailable(15*time.Minute, 7*24*time.Hour)
	slot := strat.NextAvailable(at(9, 0), 30*time.Minute, checkAgainst(sched, nil))

	assert.Nil(t, slot)
}

func TestFirstAvailableAlwaysAdvances(t *testing.T) {
	physID := uuid.New()
	sched := NewPhysicianSchedule(physID)
	// A template with no Monday windows makes every Monday candidate fail
	// with a conflict whose range equals the candidate itself, so progress
	// depends on the minimum step.
	sched.Template = WeeklyTemplate{
		time.Tuesday: {{Start: 9 * time.Hour, End: 17 * time.Hour}},
	}

	strat := NewFirstAvailable(time.Hour, 7*24*time.Hour)
	slot := strat.NextAvailable(at(9, 0), 30*time.Minute, checkAgainst(sched, nil))

	require.NotNil(t, slot)
	assert.Equal(t, time.Tuesday, slot.Start.Weekday())
}

func TestSuggestReturnsDistinctSlots(t *testing.T) {
	physID := uuid.New()
	sched := fixtureSchedule(t, physID,
		Booking{ID: uuid.New(), PhysicianID: physID, Start: at(9, 0), End: at(9, 30)},
	)

	strat := NewFirstAvailable(15*time.Minute, 24*time.Hour)
	slots := strat.Suggest(at(9, 0), 30*time.Minute, 3, checkAgainst(sched, nil))

	require.Len(t, slots, 3)
	assert.Equal(t, at(9, 30), slots[0].Start)
	assert.Equal(t, at(9, 45), slots[1].Start)
	assert.Equal(t, at(10, 0), slots[2].Start)
	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}
}

func TestSuggestStopsAtHorizon(t *testing.T) {
	physID := uuid.New()
	sched := NewPhysicianSchedule(physID)
	sched.Blocks = []UnavailableBlock{
		{ID: uuid.New(), PhysicianID: &physID, Start: at(10, 0), End: at(10, 0).AddDate(0, 0, 30), Reason: ReasonVacation},
	}

	strat := NewFirstAvailable(15*time.Minute, 24*time.Hour)
	slots := strat.Suggest(at(9, 0), 30*time.Minute, 5, checkAgainst(sched, nil))

	// Only the pre-vacation slots fit inside the horizon.
	require.NotEmpty(t, slots)
	assert.Less(t, len(slots), 5)
	for _, s := range slots {
		assert.False(t, s.End.After(at(10, 0)))
	}
}
