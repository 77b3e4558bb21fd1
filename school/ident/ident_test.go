package ident

import "testing"

func TestSlotID(t *testing.T) {
	cases := []struct {
		name  string
		start string
		want  string
	}{
		{"Period 1", "09:00", "PER0900"},
		{"Lunch", "12:30", "LUN1230"},
		{"P1", "08:05", "P10805"},
		{"  morning assembly ", "07:45", "MOR0745"},
	}
	for _, c := range cases {
		got := SlotID(c.name, c.start)
		if got != c.want {
			t.Errorf("SlotID(%q, %q) = %q want %q", c.name, c.start, got, c.want)
		}
	}
}

func TestSlotIDIsDeterministic(t *testing.T) {
	first := SlotID("Period 1", "09:00")
	second := SlotID("Period 1", "09:00")
	if first != second {
		t.Errorf("same inputs produced %q then %q", first, second)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		start string
		end   string
		want  string
	}{
		{"09:00", "09:45", "45m"},
		{"09:00", "10:30", "1h 30m"},
		{"09:00", "11:00", "2h"},
		{"09:00", "09:00", ""},
		{"10:00", "09:00", ""},
		{"bogus", "09:00", ""},
	}
	for _, c := range cases {
		got := Duration(c.start, c.end)
		if got != c.want {
			t.Errorf("Duration(%q, %q) = %q want %q", c.start, c.end, got, c.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	if got, err := ParseClock("09:30"); err != nil || got != 570 {
		t.Errorf("ParseClock(09:30) = %d, %v", got, err)
	}
	for _, bad := range []string{"", "9", "24:00", "10:60", "aa:bb"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) expected error", bad)
		}
	}
}

func TestSubjectCode(t *testing.T) {
	if got := SubjectCode("CLS10", "Mathematics"); got != "CLS10_MAT" {
		t.Errorf("SubjectCode = %q", got)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Section A":   "section_a",
		"Tenth Class": "tenth_class",
		"  LKG ":      "lkg",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q want %q", in, got, want)
		}
	}
}
