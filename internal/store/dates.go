package store

import "time"

const dateLayout = "2006-01-02"

// Today returns the current calendar day in the canonical YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(dateLayout)
}

// resolveDate validates a supplied date, or defaults to today when empty.
func resolveDate(date string) (string, error) {
	if date == "" {
		return Today(), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", ErrBadDate
	}
	return date, nil
}
