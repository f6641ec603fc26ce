package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/shared/calendar"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "midnight stays as is",
			input: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "time of day is dropped",
			input: time.Date(2026, 3, 10, 18, 45, 12, 999, time.UTC),
			want:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.Date(tt.input))
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantDays int
	}{
		{
			name:     "single day window",
			start:    day("2026-03-10"),
			end:      day("2026-03-10"),
			wantDays: 1,
		},
		{
			name:     "week window is inclusive on both ends",
			start:    day("2026-03-10"),
			end:      day("2026-03-16"),
			wantDays: 7,
		},
		{
			name:     "inverted window is empty",
			start:    day("2026-03-16"),
			end:      day("2026-03-10"),
			wantDays: 0,
		},
		{
			name:     "window crosses a month boundary",
			start:    day("2026-02-27"),
			end:      day("2026-03-02"),
			wantDays: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := calendar.Window(tt.start, tt.end)

			assert.Len(t, days, tt.wantDays)

			if tt.wantDays > 0 {
				assert.Equal(t, calendar.Date(tt.start), days[0])
				assert.Equal(t, calendar.Date(tt.end), days[len(days)-1])
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, calendar.DaysBetween(day("2026-03-10"), day("2026-03-10")))
	assert.Equal(t, 3, calendar.DaysBetween(day("2026-03-10"), day("2026-03-13")))
	assert.Equal(t, -3, calendar.DaysBetween(day("2026-03-13"), day("2026-03-10")))
}

func TestOccupies(t *testing.T) {
	checkIn := day("2026-03-10")
	checkOut := day("2026-03-13")

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{name: "day before check-in is free", d: day("2026-03-09"), want: false},
		{name: "check-in day is occupied", d: day("2026-03-10"), want: true},
		{name: "middle day is occupied", d: day("2026-03-11"), want: true},
		{name: "last night is occupied", d: day("2026-03-12"), want: true},
		{name: "check-out day is free", d: day("2026-03-13"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.Occupies(checkIn, checkOut, tt.d))
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{
			name: "disjoint stays do not overlap",
			a1:   "2026-03-10", a2: "2026-03-13",
			b1: "2026-03-14", b2: "2026-03-16",
			want: false,
		},
		{
			name: "back to back stays share no night",
			a1:   "2026-03-10", a2: "2026-03-13",
			b1: "2026-03-13", b2: "2026-03-16",
			want: false,
		},
		{
			name: "one night shared",
			a1:   "2026-03-10", a2: "2026-03-13",
			b1: "2026-03-12", b2: "2026-03-16",
			want: true,
		},
		{
			name: "full containment",
			a1:   "2026-03-10", a2: "2026-03-20",
			b1: "2026-03-12", b2: "2026-03-14",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.Overlaps(day(tt.a1), day(tt.a2), day(tt.b1), day(tt.b2))
			assert.Equal(t, tt.want, got)

			// The predicate is symmetric.
			assert.Equal(t, got, calendar.Overlaps(day(tt.b1), day(tt.b2), day(tt.a1), day(tt.a2)))
		})
	}
}
