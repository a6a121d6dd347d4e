package services

import (
	"context"
	"driver-log-service/internal/adapters/distance"
	"driver-log-service/internal/domain"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testTrip() *domain.Trip {
	return &domain.Trip{
		ID:              uuid.MustParse("7b1d2f7e-3c0a-4a2d-9a64-5f8c1e2b9d11"),
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "Joliet, IL",
		DropoffLocation: "Dallas, TX",
	}
}

func shortHaulProvider() *distance.MockDistanceProvider {
	return distance.NewMockDistanceProvider([]distance.MockLeg{
		{From: "Chicago, IL", To: "Joliet, IL", Miles: 50, Hours: 1},
		{From: "Joliet, IL", To: "Dallas, TX", Miles: 200, Hours: 4},
	})
}

func longHaulProvider() *distance.MockDistanceProvider {
	return distance.NewMockDistanceProvider([]distance.MockLeg{
		{From: "Chicago, IL", To: "Joliet, IL", Miles: 50, Hours: 1},
		{From: "Joliet, IL", To: "Dallas, TX", Miles: 1000, Hours: 20},
	})
}

func TestPlanTripShortHaul(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	plan, err := PlanTrip(context.Background(), testTrip(), departAt, shortHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.TotalDistanceMiles != 250 {
		t.Fatalf("total distance = %v, want 250", plan.TotalDistanceMiles)
	}
	if plan.EstimatedDurationHours != 5 {
		t.Fatalf("estimated duration = %v, want 5", plan.EstimatedDurationHours)
	}

	// A 5-hour drive fits in one duty day: pickup and dropoff only.
	if len(plan.Stops) != 2 {
		t.Fatalf("got %d stops, want 2: %+v", len(plan.Stops), plan.Stops)
	}
	if plan.Stops[0].Kind != domain.StopPickup || plan.Stops[1].Kind != domain.StopDropoff {
		t.Fatalf("stop kinds = %s, %s; want pickup, dropoff", plan.Stops[0].Kind, plan.Stops[1].Kind)
	}
	if loc := plan.Stops[1].Location; loc != "Dallas, TX" {
		t.Fatalf("dropoff location = %q, want Dallas, TX", loc)
	}
}

func TestPlanTripLongHaulInsertsFuelAndRest(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	plan, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKinds := []domain.StopKind{domain.StopPickup, domain.StopRest, domain.StopFuel, domain.StopDropoff}
	if len(plan.Stops) != len(wantKinds) {
		t.Fatalf("got %d stops, want %d: %+v", len(plan.Stops), len(wantKinds), plan.Stops)
	}
	for i, kind := range wantKinds {
		if plan.Stops[i].Kind != kind {
			t.Fatalf("stop %d kind = %s, want %s", i, plan.Stops[i].Kind, kind)
		}
	}

	rest := plan.Stops[1]
	if got := rest.DepartAt.Sub(rest.ArriveAt); got != 10*time.Hour {
		t.Fatalf("rest stop lasts %v, want 10h", got)
	}
	fuel := plan.Stops[2]
	if got := fuel.DepartAt.Sub(fuel.ArriveAt); got != 30*time.Minute {
		t.Fatalf("fuel stop lasts %v, want 30m", got)
	}
}

func TestPlanTripRespectsDailyDrivingLimit(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	plan, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perDay := map[time.Time]float64{}
	for _, ev := range plan.DutyEvents {
		if ev.Status != domain.StatusDriving {
			continue
		}
		perDay[Midnight(ev.Start)] += ev.End.Sub(ev.Start).Hours()
	}
	for day, hours := range perDay {
		if hours > maxDrivingHoursPerDay+coverageEpsilon {
			t.Fatalf("day %s has %v driving hours, limit is %v", day.Format("2006-01-02"), hours, maxDrivingHoursPerDay)
		}
	}
}

func TestPlanTripEventsAreSplitAtMidnight(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	plan, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.DutyEvents) == 0 {
		t.Fatal("plan produced no duty events")
	}
	for i, ev := range plan.DutyEvents {
		if ev.TripID != testTrip().ID {
			t.Fatalf("event %d has trip id %s, want %s", i, ev.TripID, testTrip().ID)
		}
		dayEnd := Midnight(ev.Start).AddDate(0, 0, 1)
		if ev.End.After(dayEnd) {
			t.Fatalf("event %d crosses midnight: %v to %v", i, ev.Start, ev.End)
		}
		if i > 0 && ev.Start.Before(plan.DutyEvents[i-1].Start) {
			t.Fatalf("event %d out of order", i)
		}
	}
}

func TestPlanTripScheduleReconstructsCleanly(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	plan, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dayOne := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tl, err := BuildDailyLogFromEvents(dayOne, plan.DutyEvents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, tl)
	if got := tl.Totals[domain.StatusDriving]; math.Abs(got-660) > coverageEpsilon {
		t.Fatalf("day 1 driving total = %v minutes, want 660", got)
	}
	if got := tl.Totals[domain.StatusOnDuty]; math.Abs(got-60) > coverageEpsilon {
		t.Fatalf("day 1 on-duty total = %v minutes, want 60", got)
	}

	dayTwo := dayOne.AddDate(0, 0, 1)
	tl2, err := BuildDailyLogFromEvents(dayTwo, plan.DutyEvents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, tl2)
	if got := tl2.Totals[domain.StatusDriving]; math.Abs(got-600) > coverageEpsilon {
		t.Fatalf("day 2 driving total = %v minutes, want 600", got)
	}
}

func TestPlanTripDeterministic(t *testing.T) {
	departAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	a, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := PlanTrip(context.Background(), testTrip(), departAt, longHaulProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.DutyEvents) != len(b.DutyEvents) {
		t.Fatalf("plans differ in event count: %d vs %d", len(a.DutyEvents), len(b.DutyEvents))
	}
	for i := range a.DutyEvents {
		if a.DutyEvents[i] != b.DutyEvents[i] {
			t.Fatalf("event %d differs between runs", i)
		}
	}
}

func TestPlanTripRejectsMissingLocations(t *testing.T) {
	trip := testTrip()
	trip.DropoffLocation = ""

	_, err := PlanTrip(context.Background(), trip, time.Now(), shortHaulProvider())
	if err == nil {
		t.Fatal("expected error for trip without dropoff location")
	}
}
