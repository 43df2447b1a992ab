package services

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/us"
)

const dueDateLayout = "2006-01-02"

// maxDeadlineHorizonDays bounds the day-by-day scan for absurd due dates.
const maxDeadlineHorizonDays = 3660

// DeadlineService computes business days remaining until project due dates
// using a per-country holiday calendar.
type DeadlineService struct {
	calendars map[string]*cal.BusinessCalendar
	country   string
}

// NewDeadlineService creates a DeadlineService using the calendar for the
// given country code, falling back to US when the code is unknown.
func NewDeadlineService(country string) *DeadlineService {
	s := &DeadlineService{
		calendars: make(map[string]*cal.BusinessCalendar),
		country:   country,
	}
	s.initCalendars()
	if _, ok := s.calendars[s.country]; !ok {
		s.country = "US"
	}
	return s
}

func (s *DeadlineService) initCalendars() {
	s.calendars["US"] = s.createCalendar("United States", us.Holidays...)
	s.calendars["GB"] = s.createCalendar("United Kingdom", gb.Holidays...)
	s.calendars["DE"] = s.createCalendar("Germany", de.Holidays...)
	s.calendars["FR"] = s.createCalendar("France", fr.Holidays...)
	s.calendars["JP"] = s.createCalendar("Japan", jp.Holidays...)
	s.calendars["CA"] = s.createCalendar("Canada", ca.Holidays...)
	s.calendars["AU"] = s.createCalendar("Australia", au.HolidaysNSW...)
}

func (s *DeadlineService) createCalendar(name string, holidays ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = name
	c.AddHoliday(holidays...)
	return c
}

// Country returns the active calendar country code.
func (s *DeadlineService) Country() string {
	return s.country
}

// IsWorkday reports whether t is a business day on the active calendar.
func (s *DeadlineService) IsWorkday(t time.Time) bool {
	return s.calendars[s.country].IsWorkday(t)
}

// BusinessDaysUntil counts the business days from the day after `from` up to
// and including the due date. A due date on or before `from` yields 0 with
// overdue set when it is strictly in the past.
func (s *DeadlineService) BusinessDaysUntil(from time.Time, dueDate string) (days int, overdue bool, err error) {
	due, err := time.ParseInLocation(dueDateLayout, dueDate, from.Location())
	if err != nil {
		return 0, false, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	if due.Before(start) {
		return 0, true, nil
	}

	c := s.calendars[s.country]
	count := 0
	for d, i := start.AddDate(0, 0, 1), 0; !d.After(due) && i < maxDeadlineHorizonDays; d, i = d.AddDate(0, 0, 1), i+1 {
		if c.IsWorkday(d) {
			count++
		}
	}
	return count, false, nil
}
