// File: services/availability/slots.go
package availability

import (
	"fmt"

	"wrenchly/models"
)

// BuildSlots generates the slot map for one working window: every "HH:MM"
// key from start (inclusive) up to, but not including, the first key at or
// past end, each initialized to free. When the window is not a multiple of
// the granularity the final slot is simply shorter than nominal; generation
// stops before crossing end. Pure and deterministic.
func BuildSlots(start, end string, granularityMin int) (map[string]models.SlotState, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	endMin, err := parseClock(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("end time %q must be after start time %q", end, start)
	}
	if granularityMin <= 0 {
		return nil, fmt.Errorf("granularity must be positive, got %d", granularityMin)
	}

	slots := make(map[string]models.SlotState)
	for cur := startMin; cur < endMin; cur += granularityMin {
		slots[formatClock(cur)] = models.SlotFree
	}
	return slots, nil
}

// parseClock converts a zero-padded 24-hour "HH:MM" string to minutes from
// midnight.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("expected HH:MM")
	}
	h, err := twoDigits(s[0], s[1])
	if err != nil || h > 23 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	m, err := twoDigits(s[3], s[4])
	if err != nil || m > 59 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, error) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, fmt.Errorf("not a digit")
	}
	return int(a-'0')*10 + int(b-'0'), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
