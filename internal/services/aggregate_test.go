package services

import (
	"driver-log-service/internal/domain"
	"testing"
)

func TestTotalsIncludesEveryStatus(t *testing.T) {
	totals := Totals([]domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 1440},
	})

	if len(totals) != len(domain.AllStatuses) {
		t.Fatalf("totals has %d entries, want %d", len(totals), len(domain.AllStatuses))
	}
	for _, status := range domain.AllStatuses {
		if _, ok := totals[status]; !ok {
			t.Fatalf("totals missing %s", status)
		}
	}
	if totals[domain.StatusDriving] != 0 {
		t.Fatalf("Driving total = %v, want 0", totals[domain.StatusDriving])
	}
}

func TestTotalsMatchesSegmentDurations(t *testing.T) {
	totals := Totals([]domain.Segment{
		{Status: domain.StatusOffDuty, StartMinute: 0, EndMinute: 390},
		{Status: domain.StatusOnDuty, StartMinute: 390, EndMinute: 450},
		{Status: domain.StatusDriving, StartMinute: 450, EndMinute: 705},
		{Status: domain.StatusOffDuty, StartMinute: 705, EndMinute: 1440},
	})

	if totals[domain.StatusOffDuty] != 1125 {
		t.Fatalf("OffDuty total = %v, want 1125", totals[domain.StatusOffDuty])
	}
	if totals[domain.StatusOnDuty] != 60 {
		t.Fatalf("OnDuty total = %v, want 60", totals[domain.StatusOnDuty])
	}
	if totals[domain.StatusDriving] != 255 {
		t.Fatalf("Driving total = %v, want 255", totals[domain.StatusDriving])
	}
}
