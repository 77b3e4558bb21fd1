// Package school holds the error kinds and weekday constants shared by the
// domain services.
package school

import "errors"

// Validation failures are always detected before any remote write is
// attempted; a store failure is wrapped at the call site and never leaves
// partial in-memory state behind.
var (
	ErrInvalidRange         = errors.New("end time must be after start time")
	ErrOverlapConflict      = errors.New("time slot overlaps an existing slot")
	ErrDuplicateSlot        = errors.New("a slot with this id or name already exists")
	ErrDuplicateTimetable   = errors.New("a timetable already exists for this class and section")
	ErrDuplicateRecord      = errors.New("a record with this id already exists")
	ErrInvalidInput         = errors.New("a field value is not valid")
	ErrMissingRequiredField = errors.New("a required field is empty")
	ErrUnknownDay           = errors.New("day is not a school weekday")
	ErrUnknownSlot          = errors.New("slot does not exist in the registry")
	ErrSubjectNotInClass    = errors.New("subject does not belong to the class")
)

// Weekdays is the fixed six-day school week, in display order.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
