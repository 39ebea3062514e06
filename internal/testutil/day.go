package testutil

import "time"

func mustDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Day parses a YYYY-MM-DD string, panicking on malformed test input.
func Day(s string) *time.Time {
	t := mustDay(s)
	return &t
}
