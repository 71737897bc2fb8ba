package history

import "time"

// WeekNumber returns the simple week-of-year used for same-week exclusion:
//
//	ceil((daysSinceJan1 + weekday(Jan 1) + 1) / 7), Sunday = 0
//
// Weeks start on Sunday and week 1 is the partial week holding Jan 1.
// This is not ISO-8601 and must stay as is: stored records depend on it.
// The date is taken in t's own location.
func WeekNumber(t time.Time) int {
	firstDay := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := t.YearDay() - 1
	n := pastDays + int(firstDay.Weekday()) + 1
	return (n + 6) / 7
}

// BusinessDaySequence counts business days from Jan 1 through t inclusive,
// in the calendar's location.
func BusinessDaySequence(cal BusinessCalendar, t time.Time) int {
	loc := cal.Location()
	local := t.In(loc)
	count := 0
	for day := 1; day <= local.YearDay(); day++ {
		// noon keeps the date stable across DST shifts
		d := time.Date(local.Year(), time.January, day, 12, 0, 0, 0, loc)
		if cal.IsBusinessDay(d) {
			count++
		}
	}
	return count
}
