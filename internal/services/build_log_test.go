package services

import (
	"driver-log-service/internal/domain"
	"testing"
	"time"
)

func TestBuildDailyLogRejectsInvalidStatus(t *testing.T) {
	raw := []RawEvent{
		{Status: "on_duty", Start: "2025-02-25T06:30:00Z", End: "2025-02-25T07:30:00Z"},
		{Status: "Lunch", Start: "2025-02-25T12:00:00Z", End: "2025-02-25T12:30:00Z"},
		{Status: "driving", Start: "2025-02-25T07:30:00Z", End: "2025-02-25T11:45:00Z"},
	}

	tl, warnings, err := BuildDailyLog(testDay, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(warnings), warnings)
	}
	if warnings[0].Index != 1 || warnings[0].Reason != WarnInvalidStatus {
		t.Fatalf("warning = %+v, want index 1 reason %s", warnings[0], WarnInvalidStatus)
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusOnDuty] != 60 {
		t.Fatalf("OnDuty total = %v, want 60", tl.Totals[domain.StatusOnDuty])
	}
	if tl.Totals[domain.StatusDriving] != 255 {
		t.Fatalf("Driving total = %v, want 255", tl.Totals[domain.StatusDriving])
	}
}

func TestBuildDailyLogRejectsMalformedTimestamps(t *testing.T) {
	raw := []RawEvent{
		{Status: "driving", Start: "yesterday-ish", End: "2025-02-25T10:00:00Z"},
		{Status: "driving", Start: "2025-02-25T08:00:00Z", End: "not-a-time"},
	}

	tl, warnings, err := BuildDailyLog(testDay, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %+v", len(warnings), warnings)
	}
	for i, w := range warnings {
		if w.Reason != WarnMalformedTimestamp {
			t.Fatalf("warning %d reason = %s, want %s", i, w.Reason, WarnMalformedTimestamp)
		}
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusOffDuty] != 1440 {
		t.Fatalf("OffDuty total = %v, want 1440 (both events rejected)", tl.Totals[domain.StatusOffDuty])
	}
}

func TestBuildDailyLogDropsInvertedEventSilently(t *testing.T) {
	raw := []RawEvent{
		{Status: "driving", Start: "2025-02-25T10:00:00Z", End: "2025-02-25T08:00:00Z"},
	}

	tl, warnings, err := BuildDailyLog(testDay, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("inverted event produced warnings: %+v", warnings)
	}
	if tl.Totals[domain.StatusOffDuty] != 1440 {
		t.Fatalf("OffDuty total = %v, want 1440", tl.Totals[domain.StatusOffDuty])
	}
}

func TestBuildDailyLogClampsToDayEdges(t *testing.T) {
	// Event runs 22:00 the previous day to 02:00 on the log day; only the
	// in-day portion counts.
	raw := []RawEvent{
		{Status: "sleeper_berth", Start: "2025-02-24T22:00:00Z", End: "2025-02-25T02:00:00Z"},
	}

	tl, warnings, err := BuildDailyLog(testDay, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusSleeperBerth] != 120 {
		t.Fatalf("SleeperBerth total = %v, want 120", tl.Totals[domain.StatusSleeperBerth])
	}
}

func TestBuildDailyLogStatusSpellings(t *testing.T) {
	raw := []RawEvent{
		{Status: "OffDuty", Start: "2025-02-25T00:00:00Z", End: "2025-02-25T06:00:00Z"},
		{Status: "Sleeper Berth", Start: "2025-02-25T06:00:00Z", End: "2025-02-25T08:00:00Z"},
		{Status: "DRIVING", Start: "2025-02-25T08:00:00Z", End: "2025-02-25T12:00:00Z"},
	}

	_, warnings, err := BuildDailyLog(testDay, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("spelling variants rejected: %+v", warnings)
	}
}

func TestBuildDailyLogFromStoredEvents(t *testing.T) {
	events := []domain.DutyEvent{
		{
			Status: domain.StatusDriving,
			Start:  time.Date(2025, 2, 25, 8, 0, 0, 0, time.UTC),
			End:    time.Date(2025, 2, 25, 10, 0, 0, 0, time.UTC),
		},
	}

	tl, err := BuildDailyLogFromEvents(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusDriving] != 120 {
		t.Fatalf("Driving total = %v, want 120", tl.Totals[domain.StatusDriving])
	}
}
