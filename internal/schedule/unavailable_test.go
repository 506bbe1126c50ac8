package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStandardBlocks(t *testing.T) {
	bh := BusinessHours{StartHour: 8, EndHour: 17, Location: time.UTC}

	// Monday through Sunday.
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	blocks := GenerateStandardBlocks(monday, 7, bh)

	// Five weekdays contribute two blocks each, the weekend one each.
	require.Len(t, blocks, 12)

	// Monday before opening.
	assert.Equal(t, ReasonAfterHours, blocks[0].Reason)
	assert.Equal(t, monday, blocks[0].Start)
	assert.Equal(t, monday.Add(8*time.Hour), blocks[0].End)

	// Monday after closing runs through midnight.
	assert.Equal(t, monday.Add(17*time.Hour), blocks[1].Start)
	assert.Equal(t, monday.AddDate(0, 0, 1), blocks[1].End)

	// Saturday and Sunday are blocked whole.
	saturday := monday.AddDate(0, 0, 5)
	assert.Equal(t, ReasonWeekend, blocks[10].Reason)
	assert.Equal(t, saturday, blocks[10].Start)
	assert.Equal(t, saturday.AddDate(0, 0, 1), blocks[10].End)
	assert.Equal(t, ReasonWeekend, blocks[11].Reason)

	// Every block is facility-wide and carries a fresh id.
	for _, b := range blocks {
		assert.Nil(t, b.PhysicianID)
		assert.NotEqual(t, uuid.Nil, b.ID)
	}
}

func TestGenerateStandardBlocksLeavesBusinessHoursOpen(t *testing.T) {
	bh := BusinessHours{StartHour: 8, EndHour: 17, Location: time.UTC}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	blocks := GenerateStandardBlocks(monday, 1, bh)

	visit := Booking{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)}
	for _, b := range blocks {
		assert.False(t, b.OverlapsRange(visit.Start, visit.End),
			"block %s-%s should not cover a mid-morning visit", b.Start, b.End)
	}

	// A visit running past closing collides with the evening block.
	late := Booking{Start: monday.Add(16*time.Hour + 30*time.Minute), End: monday.Add(17*time.Hour + 30*time.Minute)}
	hit := false
	for _, b := range blocks {
		if b.OverlapsRange(late.Start, late.End) {
			hit = true
		}
	}
	assert.True(t, hit)
}
