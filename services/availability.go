// services/availability.go
package services

import (
	"context"
	"fmt"
	"time"
)

// Business hours: 8 hourly slots from 09:00 up to (not including) 17:00.
const (
	businessHoursStart = 9
	businessHoursEnd   = 17
)

// AvailableSlots fetches the day's busy intervals from the calendar and
// derives the hourly slots. The time-of-day part of date is ignored.
func AvailableSlots(ctx context.Context, cal Calendar, date time.Time) ([]TimeSlot, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Millisecond)

	busy, err := cal.BusyIntervals(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar availability: %w", err)
	}

	return ComputeDaySlots(date, busy), nil
}

// ComputeDaySlots marks each business-hour slot of the given day against the
// busy intervals. A slot [s, s+1h) is unavailable when any busy interval
// overlaps it: the slot start falls inside the interval, the slot end falls
// inside it, or the interval is fully contained in the slot. Slot ends are
// exclusive; an interval touching a slot only at its boundary does not block
// it.
func ComputeDaySlots(date time.Time, busy []BusyInterval) []TimeSlot {
	slots := make([]TimeSlot, 0, businessHoursEnd-businessHoursStart)

	for hour := businessHoursStart; hour < businessHoursEnd; hour++ {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
		slotEnd := slotStart.Add(time.Hour)

		available := true
		for _, b := range busy {
			startInside := !slotStart.Before(b.Start) && slotStart.Before(b.End)
			endInside := slotEnd.After(b.Start) && !slotEnd.After(b.End)
			contains := !b.Start.Before(slotStart) && !b.End.After(slotEnd)
			if startInside || endInside || contains {
				available = false
				break
			}
		}

		slots = append(slots, TimeSlot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: available,
		})
	}

	return slots
}
