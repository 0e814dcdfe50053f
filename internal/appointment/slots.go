package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	SelectFirst  = "first"
	SelectStrict = "strict"

	dateLayout      = "2006-01-02"
	dateInputLayout = "2006-1-2"
)

const (
	dayStart = 9 * time.Hour
	dayEnd   = 18 * time.Hour
	slotStep = 15 * time.Minute
)

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	var slots []string
	for t := dayStart; t < dayEnd; t += slotStep {
		slots = append(slots, fmt.Sprintf("%02d:%02d", int(t.Hours()), int(t.Minutes())%60))
	}
	return slots
}

// TimeSlots returns the bookable slots in display order, 09:00 through 17:45.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsValidTimeSlot(s string) bool {
	return slotIndex(s) >= 0
}

func slotIndex(s string) int {
	for i, slot := range timeSlots {
		if slot == s {
			return i
		}
	}
	return -1
}

// SelectTimeSlot reduces the checked slot buttons to the one value that gets
// stored. In SelectFirst mode the earliest slot in display order wins, which
// is what the desk has always persisted; SelectStrict refuses ambiguous input.
func SelectTimeSlot(checked []string, mode string) (string, error) {
	if len(checked) == 0 {
		return "", ErrNoTimeSlot
	}

	first := -1
	seen := map[string]struct{}{}
	for _, s := range checked {
		idx := slotIndex(s)
		if idx < 0 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
		}
		seen[s] = struct{}{}
		if first < 0 || idx < first {
			first = idx
		}
	}

	if mode == SelectStrict && len(seen) > 1 {
		return "", ErrMultipleTimeSlots
	}

	return timeSlots[first], nil
}

// NormalizeDate accepts a calendar date as YYYY-MM-DD, with or without zero
// padding, and returns the zero padded form the store keys on.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse(dateInputLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Format(dateLayout), nil
}
