package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Kind discriminates the two template variants.
type Kind string

const (
	// KindCycle repeats a run of work days followed by a run of rest days,
	// phase-aligned to the start of the expansion range.
	KindCycle Kind = "cycle"
	// KindFixed places shifts on a fixed set of weekdays.
	KindFixed Kind = "fixed"
)

// Weekday tags as stored on fixed templates (dom=Sunday .. sab=Saturday).
var weekdayTags = map[string]rrule.Weekday{
	"dom": rrule.SU,
	"seg": rrule.MO,
	"ter": rrule.TU,
	"qua": rrule.WE,
	"qui": rrule.TH,
	"sex": rrule.FR,
	"sab": rrule.SA,
}

// CycleConfig is the payload of a cycle template.
type CycleConfig struct {
	WorkDays int
	RestDays int
}

// FixedConfig is the payload of a fixed-weekday template.
type FixedConfig struct {
	Weekdays []string
}

// Template is a recurring shift pattern: a tagged union of the cycle and
// fixed variants, plus the start and end wall-clock times shared by both.
// Exactly one of Cycle and Fixed is set, matching Kind.
type Template struct {
	Kind      Kind
	StartTime string
	EndTime   string
	Cycle     *CycleConfig
	Fixed     *FixedConfig
}

// Window is one expanded shift occurrence: the calendar day it belongs to and
// its concrete start and end instants.
type Window struct {
	Day     time.Time
	StartAt time.Time
	EndAt   time.Time
}

// NewCycleTemplate builds a cycle template. Both run lengths must be at least
// one day.
func NewCycleTemplate(startTime, endTime string, workDays, restDays int) (*Template, error) {
	if _, _, err := parseClock(startTime); err != nil {
		return nil, err
	}
	if _, _, err := parseClock(endTime); err != nil {
		return nil, err
	}
	if workDays < 1 {
		return nil, fmt.Errorf("cycle template needs at least 1 work day, got %d", workDays)
	}
	if restDays < 1 {
		return nil, fmt.Errorf("cycle template needs at least 1 rest day, got %d", restDays)
	}
	return &Template{
		Kind:      KindCycle,
		StartTime: startTime,
		EndTime:   endTime,
		Cycle:     &CycleConfig{WorkDays: workDays, RestDays: restDays},
	}, nil
}

// NewFixedTemplate builds a fixed-weekday template from weekday tags.
func NewFixedTemplate(startTime, endTime string, weekdays []string) (*Template, error) {
	if _, _, err := parseClock(startTime); err != nil {
		return nil, err
	}
	if _, _, err := parseClock(endTime); err != nil {
		return nil, err
	}
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("fixed template needs at least one weekday")
	}
	for _, tag := range weekdays {
		if _, ok := weekdayTags[tag]; !ok {
			return nil, fmt.Errorf("unknown weekday tag %q", tag)
		}
	}
	return &Template{
		Kind:      KindFixed,
		StartTime: startTime,
		EndTime:   endTime,
		Fixed:     &FixedConfig{Weekdays: weekdays},
	}, nil
}

// Expand produces the shift windows implied by the template over the
// inclusive day range, sorted ascending by day.
func (t *Template) Expand(rangeStart, rangeEnd time.Time) ([]Window, error) {
	rangeStart = StartOfDay(rangeStart)
	rangeEnd = StartOfDay(rangeEnd)
	if rangeStart.After(rangeEnd) {
		return nil, ErrInvalidRange
	}

	var days []time.Time
	var err error
	switch t.Kind {
	case KindCycle:
		days, err = t.cycleDays(rangeStart, rangeEnd)
	case KindFixed:
		days, err = t.fixedDays(rangeStart, rangeEnd)
	default:
		return nil, fmt.Errorf("unknown template kind %q", t.Kind)
	}
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(days))
	for _, day := range days {
		start, end, err := ComposeShiftInstants(day, t.StartTime, t.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, Window{Day: day, StartAt: start, EndAt: end})
	}
	return windows, nil
}

// cycleDays keeps a day at zero-based offset i from the range start iff
// i mod (work+rest) < work.
func (t *Template) cycleDays(rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	all, err := EnumerateDays(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	cycleLength := t.Cycle.WorkDays + t.Cycle.RestDays
	var days []time.Time
	for i, day := range all {
		if i%cycleLength < t.Cycle.WorkDays {
			days = append(days, day)
		}
	}
	return days, nil
}

// fixedDays expands the weekday set as a weekly recurrence rule over the
// range, boundaries inclusive.
func (t *Template) fixedDays(rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	byweekday := make([]rrule.Weekday, 0, len(t.Fixed.Weekdays))
	for _, tag := range t.Fixed.Weekdays {
		day, ok := weekdayTags[tag]
		if !ok {
			return nil, fmt.Errorf("unknown weekday tag %q", tag)
		}
		byweekday = append(byweekday, day)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   rangeStart,
		Byweekday: byweekday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	return rule.Between(rangeStart, rangeEnd, true), nil
}
