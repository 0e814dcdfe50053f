package util

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDateRange = errors.New("invalid date format (use YYYY-MM-DD or RFC3339)")

// DateRange bounds a created_at filter. End is exclusive.
type DateRange struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
}

type dateBound struct {
	t        time.Time
	dateOnly bool
}

func parseBound(p *string) (*dateBound, error) {
	if p == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &dateBound{t: t}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &dateBound{t: t, dateOnly: true}, nil
	}
	return nil, ErrInvalidDateRange
}

// ParseDateRange reads the start_date/end_date values of a log search. Blank
// values are ignored, a date-only end covers that whole day, and reversed
// bounds are swapped.
func ParseDateRange(start, end *string) (DateRange, error) {
	from, err := parseBound(start)
	if err != nil {
		return DateRange{}, err
	}
	to, err := parseBound(end)
	if err != nil {
		return DateRange{}, err
	}

	if from != nil && to != nil && to.t.Before(from.t) {
		from, to = to, from
	}

	var r DateRange
	if from != nil {
		r.Start, r.HasStart = from.t, true
	}
	if to != nil {
		r.End, r.HasEnd = to.t, true
		if to.dateOnly {
			r.End = to.t.AddDate(0, 0, 1)
		}
	}
	return r, nil
}
