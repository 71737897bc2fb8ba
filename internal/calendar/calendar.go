package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Holiday is a single non-business date.
type Holiday struct {
	Name string `yaml:"name" json:"name"`
	Date string `yaml:"date" json:"date"` // YYYY-MM-DD
}

// Calendar answers business-day questions in a fixed civil time zone.
// The zone is explicit so that host local time never leaks into scheduling.
type Calendar struct {
	loc      *time.Location
	holidays map[string]string
}

// New builds a calendar with the built-in holiday tables plus extra entries.
// Extra entries override built-in names for the same date.
func New(loc *time.Location, extra ...Holiday) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	c := &Calendar{loc: loc, holidays: make(map[string]string)}
	for _, h := range builtinHolidays {
		c.holidays[h.Date] = h.Name
	}
	for _, h := range extra {
		c.holidays[h.Date] = h.Name
	}
	return c
}

func (c *Calendar) Location() *time.Location { return c.loc }

// DateKey formats t as YYYY-MM-DD in the calendar's zone.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(dateLayout)
}

// IsBusinessDay reports whether t falls on a weekday that is not a holiday.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	local := t.In(c.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[local.Format(dateLayout)]
	return !holiday
}

// HolidayName returns the holiday name for t, if any.
func (c *Calendar) HolidayName(t time.Time) (string, bool) {
	name, ok := c.holidays[c.DateKey(t)]
	return name, ok
}

// NextBusinessDay returns the first business day strictly after t.
func (c *Calendar) NextBusinessDay(t time.Time) time.Time {
	next := t.In(c.loc).AddDate(0, 0, 1)
	for !c.IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

type holidaysFile struct {
	Holidays []Holiday `yaml:"holidays"`
}

// LoadHolidaysFile reads additional holidays from a YAML file:
//
//	holidays:
//	  - name: Company anniversary
//	    date: 2025-06-02
func LoadHolidaysFile(path string) ([]Holiday, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f holidaysFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse holidays: %w", err)
	}
	for _, h := range f.Holidays {
		if _, err := time.Parse(dateLayout, h.Date); err != nil {
			return nil, fmt.Errorf("holiday %q: bad date %q: %w", h.Name, h.Date, err)
		}
	}
	return f.Holidays, nil
}
