package pantry

import (
	"fmt"
	"time"
)

// Window bounds are stored as calendar-date text. NULL is unbounded.
const dateLayout = time.DateOnly

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// parseDate accepts whatever the driver produced for a bound column. Rows
// written before bounds became nullable may hold an empty string for
// "unbounded"; RFC 3339 text is accepted and reduced to its calendar date.
func parseDate(v any) (*time.Time, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &d, nil
	case *time.Time:
		return d, nil
	case *string:
		if d == nil {
			return nil, nil
		}
		return parseDate(*d)
	case string:
		if d == "" {
			return nil, nil
		}
		if t, err := time.Parse(dateLayout, d); err == nil {
			return &t, nil
		}
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", d, err)
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day, nil
	default:
		return nil, fmt.Errorf("unsupported date value of type %T", v)
	}
}
