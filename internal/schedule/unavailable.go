package schedule

import (
	"time"

	"github.com/google/uuid"
)

type BlockReason string

const (
	ReasonAfterHours BlockReason = "after_hours"
	ReasonWeekend    BlockReason = "weekend"
	ReasonHoliday    BlockReason = "holiday"
	ReasonEmergency  BlockReason = "emergency"
	ReasonVacation   BlockReason = "vacation"
	ReasonMeeting    BlockReason = "meeting"
)

// UnavailableBlock is a time range no appointment may occupy. PhysicianID is
// nil for facility-wide blocks. Blocks are immutable once created.
type UnavailableBlock struct {
	ID          uuid.UUID
	PhysicianID *uuid.UUID
	Start       time.Time
	End         time.Time
	Reason      BlockReason
	Description string
	CreatedAt   time.Time
}

func (u UnavailableBlock) OverlapsRange(start, end time.Time) bool {
	return Overlaps(u.Start, u.End, start, end)
}

// BusinessHours describes the facility's open window on weekdays.
type BusinessHours struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

func (bh BusinessHours) loc() *time.Location {
	if bh.Location != nil {
		return bh.Location
	}
	return time.Local
}

// GenerateStandardBlocks produces the facility-wide blocks for a rolling
// window of days starting at the day containing from: weekends are blocked
// whole, weekdays are blocked before opening and after closing.
func GenerateStandardBlocks(from time.Time, days int, bh BusinessHours) []UnavailableBlock {
	loc := bh.loc()
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)

	blocks := make([]UnavailableBlock, 0, days*2)
	for i := 0; i < days; i++ {
		next := day.AddDate(0, 0, 1)

		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			blocks = append(blocks, UnavailableBlock{
				ID:          uuid.New(),
				Start:       day,
				End:         next,
				Reason:      ReasonWeekend,
				Description: "facility closed on weekends",
				CreatedAt:   time.Now(),
			})
		default:
			open := day.Add(time.Duration(bh.StartHour) * time.Hour)
			close := day.Add(time.Duration(bh.EndHour) * time.Hour)
			blocks = append(blocks,
				UnavailableBlock{
					ID:          uuid.New(),
					Start:       day,
					End:         open,
					Reason:      ReasonAfterHours,
					Description: "before business hours",
					CreatedAt:   time.Now(),
				},
				UnavailableBlock{
					ID:          uuid.New(),
					Start:       close,
					End:         next,
					Reason:      ReasonAfterHours,
					Description: "after business hours",
					CreatedAt:   time.Now(),
				},
			)
		}

		day = next
	}

	return blocks
}
