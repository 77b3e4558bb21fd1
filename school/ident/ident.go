// Package ident holds the pure helpers that derive document ids and
// human-readable durations. Nothing here does I/O.
package ident

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" time-of-day value to minutes past
// midnight. It is the only accepted wire format for slot times.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time of day %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// namePrefix keeps at most three uppercased alphanumeric characters.
func namePrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return b.String()
}

// SlotID derives the registry key for a slot from its name and "HH:MM"
// start time, e.g. ("Period 1", "09:00") -> "PER0900". Two slots with the
// same start time and similar leading letters collide; the registry layers
// a duplicate check on top rather than strengthening the derivation.
func SlotID(name string, startTime string) string {
	compact := strings.ReplaceAll(startTime, ":", "")
	if len(compact) > 4 {
		compact = compact[:4]
	}
	return namePrefix(name) + compact
}

// SubjectCode derives a class-scoped subject code, e.g.
// ("CLS10", "Mathematics") -> "CLS10_MAT".
func SubjectCode(classID string, name string) string {
	return classID + "_" + namePrefix(name)
}

// TimetableID is the document key for the one timetable of a class and
// section pair.
func TimetableID(classID string, sectionID string) string {
	return classID + "_" + sectionID
}

// Slug lowercases a display name into an id fragment, e.g.
// "Section A" -> "section_a".
func Slug(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Duration renders the wall-clock difference between two "HH:MM" values,
// omitting whichever unit is zero: "45m", "1h 30m", "2h". Returns "" when
// the range is empty or inverted; ordering is validated by the caller.
func Duration(startTime string, endTime string) string {
	start, err := ParseClock(startTime)
	if err != nil {
		return ""
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return ""
	}
	if end <= start {
		return ""
	}

	total := end - start
	hours := total / 60
	minutes := total % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
