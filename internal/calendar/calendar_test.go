package calendar

import (
	"testing"
	"time"
)

func TestDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		month     time.Time
		wantFirst time.Time
	}{
		{
			name:      "month starting on sunday",
			month:     time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
			wantFirst: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "month starting midweek",
			month:     time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC),
			wantFirst: time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "leap february",
			month:     time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantFirst: time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "thirty one days starting saturday",
			month:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			wantFirst: time.Date(2025, time.February, 23, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			days := Days(testCase.month)
			if len(days) != GridSize {
				t.Fatalf("len(Days()) = %d, want %d", len(days), GridSize)
			}
			if !days[0].Equal(testCase.wantFirst) {
				t.Fatalf("first day = %v, want %v", days[0], testCase.wantFirst)
			}
			if days[0].Weekday() != time.Sunday {
				t.Fatalf("first weekday = %v, want Sunday", days[0].Weekday())
			}

			inMonth := make(map[int]int)
			for i, day := range days {
				if i > 0 && !day.After(days[i-1]) {
					t.Fatalf("days not ascending at %d: %v <= %v", i, day, days[i-1])
				}
				if day.Month() == testCase.month.Month() && day.Year() == testCase.month.Year() {
					inMonth[day.Day()]++
				}
			}

			last := time.Date(testCase.month.Year(), testCase.month.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if len(inMonth) != last {
				t.Fatalf("month days present = %d, want %d", len(inMonth), last)
			}
			for d, count := range inMonth {
				if count != 1 {
					t.Fatalf("day %d appears %d times", d, count)
				}
			}
		})
	}
}

func TestFormatRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "today", date: time.Date(2024, time.May, 20, 1, 0, 0, 0, time.UTC), want: "Today"},
		{name: "yesterday", date: time.Date(2024, time.May, 19, 23, 0, 0, 0, time.UTC), want: "Yesterday"},
		{name: "within week", date: time.Date(2024, time.May, 16, 8, 0, 0, 0, time.UTC), want: "Thursday"},
		{name: "six days ago", date: time.Date(2024, time.May, 14, 8, 0, 0, 0, time.UTC), want: "Tuesday"},
		{name: "same month", date: time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC), want: "May 2"},
		{name: "earlier month", date: time.Date(2024, time.April, 30, 8, 0, 0, 0, time.UTC), want: "April 30, 2024"},
		{name: "tomorrow", date: time.Date(2024, time.May, 21, 8, 0, 0, 0, time.UTC), want: "May 21"},
		{name: "future in month", date: time.Date(2024, time.May, 28, 8, 0, 0, 0, time.UTC), want: "May 28"},
		{name: "other year", date: time.Date(2023, time.May, 20, 8, 0, 0, 0, time.UTC), want: "May 20, 2023"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatRelative(testCase.date, now); got != testCase.want {
				t.Fatalf("FormatRelative() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, time.Date(2024, time.May, 20, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("SameDay() = false for the same date")
	}
	if SameDay(a, time.Date(2024, time.May, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("SameDay() = true for the next date")
	}
}
