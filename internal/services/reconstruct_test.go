package services

import (
	"driver-log-service/internal/domain"
	"math"
	"reflect"
	"testing"
	"time"
)

var testDay = time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)

func checkCoverage(t *testing.T, tl *domain.DayTimeline) {
	t.Helper()

	if len(tl.Segments) == 0 {
		t.Fatal("timeline has no segments")
	}
	if tl.Segments[0].StartMinute != 0 {
		t.Fatalf("first segment starts at %v, want 0", tl.Segments[0].StartMinute)
	}
	last := tl.Segments[len(tl.Segments)-1]
	if last.EndMinute != domain.MinutesPerDay {
		t.Fatalf("last segment ends at %v, want 1440", last.EndMinute)
	}

	var sum float64
	for i, seg := range tl.Segments {
		sum += seg.Minutes()
		if i > 0 {
			prev := tl.Segments[i-1]
			if prev.EndMinute != seg.StartMinute {
				t.Fatalf("gap/overlap between segment %d (end=%v) and %d (start=%v)",
					i-1, prev.EndMinute, i, seg.StartMinute)
			}
			if prev.Status == seg.Status {
				t.Fatalf("segments %d and %d share status %s (coalescing failed)", i-1, i, seg.Status)
			}
		}
	}
	if math.Abs(sum-domain.MinutesPerDay) > 1e-6 {
		t.Fatalf("segment durations sum to %v, want 1440", sum)
	}

	var totalSum float64
	for _, status := range domain.AllStatuses {
		totalSum += tl.Totals[status]
	}
	if math.Abs(totalSum-domain.MinutesPerDay) > 1e-6 {
		t.Fatalf("totals sum to %v, want 1440", totalSum)
	}
}

func TestReconstructEmptyDay(t *testing.T) {
	tl, err := Reconstruct(testDay, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if len(tl.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(tl.Segments))
	}
	if tl.Segments[0].Status != domain.StatusOffDuty {
		t.Fatalf("expected OffDuty background, got %s", tl.Segments[0].Status)
	}
	if tl.Totals[domain.StatusOffDuty] != 1440 {
		t.Fatalf("OffDuty total = %v, want 1440", tl.Totals[domain.StatusOffDuty])
	}
}

func TestReconstructSingleEvent(t *testing.T) {
	events := []domain.Event{
		{Status: domain.StatusDriving, StartMinute: 480, EndMinute: 600},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	want := []domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 480},
		{Status: domain.StatusDriving, StartMinute: 480, EndMinute: 600},
		{Status: domain.StatusOffDuty, StartMinute: 600, EndMinute: 1440},
	}
	if !reflect.DeepEqual(tl.Segments, want) {
		t.Fatalf("segments = %+v, want %+v", tl.Segments, want)
	}
	if tl.Totals[domain.StatusDriving] != 120 {
		t.Fatalf("Driving total = %v, want 120", tl.Totals[domain.StatusDriving])
	}
	if tl.Totals[domain.StatusOffDuty] != 1320 {
		t.Fatalf("OffDuty total = %v, want 1320", tl.Totals[domain.StatusOffDuty])
	}
}

func TestReconstructFullDayEvent(t *testing.T) {
	events := []domain.Event{
		{Status: domain.StatusSleeperBerth, StartMinute: 0, EndMinute: 1440},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if len(tl.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(tl.Segments))
	}
	if tl.Segments[0].Status != domain.StatusSleeperBerth {
		t.Fatalf("expected SleeperBerth, got %s", tl.Segments[0].Status)
	}
}

func TestReconstructOverlapFirstWins(t *testing.T) {
	// Driving overlaps the tail of OnDuty; the disputed hour stays OnDuty.
	events := []domain.Event{
		{Status: domain.StatusDriving, StartMinute: 600, EndMinute: 720},
		{Status: domain.StatusOnDuty, StartMinute: 540, EndMinute: 660},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	want := []domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 540},
		{Status: domain.StatusOnDuty, StartMinute: 540, EndMinute: 660},
		{Status: domain.StatusDriving, StartMinute: 660, EndMinute: 720},
		{Status: domain.StatusOffDuty, StartMinute: 720, EndMinute: 1440},
	}
	if !reflect.DeepEqual(tl.Segments, want) {
		t.Fatalf("segments = %+v, want %+v", tl.Segments, want)
	}
	if tl.Totals[domain.StatusOnDuty] != 120 || tl.Totals[domain.StatusDriving] != 60 {
		t.Fatalf("totals = OnDuty:%v Driving:%v, want 120/60",
			tl.Totals[domain.StatusOnDuty], tl.Totals[domain.StatusDriving])
	}
}

func TestReconstructContainedEventDiscarded(t *testing.T) {
	// An event fully inside an earlier one contributes nothing.
	events := []domain.Event{
		{Status: domain.StatusOnDuty, StartMinute: 540, EndMinute: 660},
		{Status: domain.StatusDriving, StartMinute: 560, EndMinute: 600},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusDriving] != 0 {
		t.Fatalf("Driving total = %v, want 0", tl.Totals[domain.StatusDriving])
	}
}

func TestReconstructAbuttingSameStatusCoalesced(t *testing.T) {
	events := []domain.Event{
		{Status: domain.StatusDriving, StartMinute: 480, EndMinute: 540},
		{Status: domain.StatusDriving, StartMinute: 540, EndMinute: 600},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	want := []domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 480},
		{Status: domain.StatusDriving, StartMinute: 480, EndMinute: 600},
		{Status: domain.StatusOffDuty, StartMinute: 600, EndMinute: 1440},
	}
	if !reflect.DeepEqual(tl.Segments, want) {
		t.Fatalf("segments = %+v, want %+v", tl.Segments, want)
	}
}

func TestReconstructGapInheritsPreviousStatus(t *testing.T) {
	// The gap between the two events stays SleeperBerth, not OffDuty.
	events := []domain.Event{
		{Status: domain.StatusSleeperBerth, StartMinute: 60, EndMinute: 300},
		{Status: domain.StatusDriving, StartMinute: 420, EndMinute: 480},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	want := []domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 60},
		{Status: domain.StatusSleeperBerth, StartMinute: 60, EndMinute: 420},
		{Status: domain.StatusDriving, StartMinute: 420, EndMinute: 480},
		{Status: domain.StatusOffDuty, StartMinute: 480, EndMinute: 1440},
	}
	if !reflect.DeepEqual(tl.Segments, want) {
		t.Fatalf("segments = %+v, want %+v", tl.Segments, want)
	}
}

func TestReconstructDegenerateEventsIgnored(t *testing.T) {
	events := []domain.Event{
		{Status: domain.StatusDriving, StartMinute: 600, EndMinute: 600},
		{Status: domain.StatusOnDuty, StartMinute: 700, EndMinute: 650},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if len(tl.Segments) != 1 || tl.Segments[0].Status != domain.StatusOffDuty {
		t.Fatalf("degenerate events altered the timeline: %+v", tl.Segments)
	}
}

func TestReconstructStableTieOrder(t *testing.T) {
	// Two events starting at the same minute keep input order; the first
	// claims the interval, the second's overlapped portion is discarded.
	events := []domain.Event{
		{Status: domain.StatusDriving, StartMinute: 480, EndMinute: 540},
		{Status: domain.StatusOnDuty, StartMinute: 480, EndMinute: 600},
	}

	tl, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkCoverage(t, tl)
	if tl.Totals[domain.StatusDriving] != 60 {
		t.Fatalf("Driving total = %v, want 60", tl.Totals[domain.StatusDriving])
	}
	if tl.Totals[domain.StatusOnDuty] != 60 {
		t.Fatalf("OnDuty total = %v, want 60", tl.Totals[domain.StatusOnDuty])
	}
}

func TestReconstructDeterministic(t *testing.T) {
	events := []domain.Event{
		{Status: domain.StatusOnDuty, StartMinute: 390, EndMinute: 450},
		{Status: domain.StatusDriving, StartMinute: 450, EndMinute: 705.5},
		{Status: domain.StatusOnDuty, StartMinute: 705.5, EndMinute: 735.5},
	}

	a, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Reconstruct(testDay, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical input produced different timelines")
	}
}

func TestCoalesceIdempotent(t *testing.T) {
	segments := []domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 100},
		{Status: domain.StatusOffDuty, StartMinute: 100, EndMinute: 200},
		{Status: domain.StatusDriving, StartMinute: 200, EndMinute: 300},
		{Status: domain.StatusDriving, StartMinute: 300, EndMinute: 400},
		{Status: domain.StatusOffDuty, StartMinute: 400, EndMinute: 1440},
	}

	once := Coalesce(segments)
	twice := Coalesce(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("coalesce not idempotent: %+v vs %+v", once, twice)
	}
	if len(once) != 3 {
		t.Fatalf("expected 3 coalesced segments, got %d", len(once))
	}
}
