package models

import "time"

const dateLayout = "2006-01-02"

// DayLabel returns "Today", "Tomorrow" or the abbreviated weekday for a
// YYYY-MM-DD date. The comparison uses the calendar day of now in now's own
// location, not the forecast location's timezone. Unparseable input is
// returned as is.
func DayLabel(date string, now time.Time) string {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case sameDay(d, today):
		return "Today"
	case sameDay(d, today.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return d.Weekday().String()[:3]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
