package court

import (
	"testing"
	"time"
)

func TestIsOpenDuring(t *testing.T) {
	c := &Court{OpenHour: 8, CloseHour: 22}
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside window", at(10, 0), at(11, 30), true},
		{"opens exactly", at(8, 0), at(9, 0), true},
		{"closes exactly", at(21, 0), at(22, 0), true},
		{"before opening", at(7, 0), at(8, 0), false},
		{"starts too early", at(7, 30), at(9, 0), false},
		{"runs past closing", at(21, 30), at(22, 30), false},
		{"half hour ending", at(20, 30), at(21, 30), true},
		{"crosses midnight", at(21, 0), at(25, 0), false},
		{"spans a whole month", at(10, 0), day.AddDate(0, 1, 0).Add(11 * time.Hour), false},
		{"ends midnight two days on", at(21, 0), day.AddDate(0, 0, 2), false},
		{"same hours next day", at(10, 0).AddDate(0, 0, 1), at(11, 0).AddDate(0, 0, 1), true},
	}

	for _, tc := range cases {
		if got := c.IsOpenDuring(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: IsOpenDuring(%v, %v) = %v, want %v", tc.name, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestIsOpenDuringLateClose(t *testing.T) {
	c := &Court{OpenHour: 10, CloseHour: 24}
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	start := day.Add(23 * time.Hour)
	end := day.Add(24 * time.Hour) // midnight of the next day
	if !c.IsOpenDuring(start, end) {
		t.Error("slot ending at midnight should fit a court closing at 24")
	}
}
