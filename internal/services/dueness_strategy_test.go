package services

import (
	"testing"
	"time"

	"famfin/internal/core"
)

func TestDailyChecker_IsDue(t *testing.T) {
	checker := DailyChecker{}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		want    bool
	}{
		{
			name:    "never run - is due",
			lastRun: time.Time{},
			want:    true,
		},
		{
			name:    "ran today - not due",
			lastRun: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			want:    false,
		},
		{
			name:    "ran yesterday - is due",
			lastRun: time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastRun, now, startDate)
			if got != tt.want {
				t.Errorf("DailyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyChecker_IsDue(t *testing.T) {
	checker := WeeklyChecker{}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		want    bool
	}{
		{
			name:    "never run - is due",
			lastRun: time.Time{},
			want:    true,
		},
		{
			name:    "ran 3 days ago - not due",
			lastRun: time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC),
			want:    false,
		},
		{
			name:    "ran 7 days ago - is due",
			lastRun: time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
			want:    true,
		},
		{
			name:    "ran 10 days ago - is due",
			lastRun: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastRun, now, startDate)
			if got != tt.want {
				t.Errorf("WeeklyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyChecker_IsDue(t *testing.T) {
	checker := MonthlyChecker{}

	tests := []struct {
		name      string
		lastRun   time.Time
		now       time.Time
		startDate time.Time
		want      bool
	}{
		{
			name:      "never run - is due",
			lastRun:   time.Time{},
			now:       time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "ran this month - not due",
			lastRun:   time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "new month before target day - not due",
			lastRun:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "new month on target day - is due",
			lastRun:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "new month past target day - is due",
			lastRun:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "target day 31 clamps in february",
			lastRun:   time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastRun, tt.now, tt.startDate)
			if got != tt.want {
				t.Errorf("MonthlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyChecker_IsDue(t *testing.T) {
	checker := YearlyChecker{}

	tests := []struct {
		name      string
		lastRun   time.Time
		now       time.Time
		startDate time.Time
		want      bool
	}{
		{
			name:      "never run - is due",
			lastRun:   time.Time{},
			now:       time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "ran this year - not due",
			lastRun:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "new year before target month - not due",
			lastRun:   time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "new year on target date - is due",
			lastRun:   time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "new year past target month - is due",
			lastRun:   time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			startDate: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastRun, tt.now, tt.startDate)
			if got != tt.want {
				t.Errorf("YearlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDuenessChecker(t *testing.T) {
	for _, freq := range []core.Frequency{core.Daily, core.Weekly, core.Monthly, core.Yearly} {
		if _, err := GetDuenessChecker(freq); err != nil {
			t.Errorf("GetDuenessChecker(%s) = %v, want checker", freq, err)
		}
	}
	if _, err := GetDuenessChecker("HOURLY"); err == nil {
		t.Error("GetDuenessChecker should reject unknown frequencies")
	}
}
