package spacedrep

import (
	"testing"
	"time"
)

func TestIsDue_BeforeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	e := ScheduleEntry{NextReview: now.Add(24 * time.Hour)}
	if e.IsDue(now) {
		t.Error("expected not due before review date")
	}
}

func TestIsDue_OnDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	e := ScheduleEntry{NextReview: now}
	if !e.IsDue(now) {
		t.Error("expected due on review date")
	}
}

func TestOverdueDays_ThreeDaysOverdue(t *testing.T) {
	reviewDate := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := reviewDate.Add(3 * 24 * time.Hour)
	e := ScheduleEntry{NextReview: reviewDate}
	got := e.OverdueDays(now)
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
}

func TestOverdueDays_NotDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	e := ScheduleEntry{NextReview: now.Add(48 * time.Hour)}
	if got := e.OverdueDays(now); got != 0 {
		t.Errorf("OverdueDays() = %f, want 0", got)
	}
}

func TestDaysUntilReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// 4.5 days in the future -> int(4.5) + 1 = 5
	e := ScheduleEntry{NextReview: now.Add(108 * time.Hour)}
	if got := e.DaysUntilReview(now); got != 5 {
		t.Errorf("DaysUntilReview() = %d, want 5", got)
	}
	e.NextReview = now.Add(-time.Hour)
	if got := e.DaysUntilReview(now); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}

func TestLastReviewed(t *testing.T) {
	next := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	e := ScheduleEntry{NextReview: next, Interval: 6}
	want := time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC)
	if got := e.LastReviewed(); !got.Equal(want) {
		t.Errorf("LastReviewed() fallback = %v, want %v", got, want)
	}

	stamp := time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)
	e.LastReview = stamp
	if got := e.LastReviewed(); !got.Equal(stamp) {
		t.Errorf("LastReviewed() = %v, want %v", got, stamp)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (ScheduleEntry{Key: "m1_a"}).DisplayName(); got != "m1_a" {
		t.Errorf("DisplayName() = %q, want key", got)
	}
	if got := (ScheduleEntry{Key: "m1_a", Label: "Slices"}).DisplayName(); got != "Slices" {
		t.Errorf("DisplayName() = %q, want label", got)
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		entry ScheduleEntry
		want  ReviewStatus
	}{
		{"learning", ScheduleEntry{Repetitions: 1, Interval: 1, NextReview: now.Add(time.Hour)}, ReviewLearning},
		{"not due", ScheduleEntry{Repetitions: 3, Interval: 16, NextReview: now.Add(48 * time.Hour)}, ReviewNotDue},
		{"mature", ScheduleEntry{Repetitions: 5, Interval: 40, NextReview: now.Add(48 * time.Hour)}, ReviewMature},
		// 6-day interval, 2 days overdue -> grace is 3 days -> due
		{"due", ScheduleEntry{Repetitions: 2, Interval: 6, NextReview: now.Add(-48 * time.Hour)}, ReviewDue},
		// 6-day interval, 4 days overdue -> past grace -> overdue
		{"overdue", ScheduleEntry{Repetitions: 2, Interval: 6, NextReview: now.Add(-96 * time.Hour)}, ReviewOverdue},
	}
	for _, tt := range tests {
		if got := tt.entry.Status(now); got != tt.want {
			t.Errorf("%s: Status() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
