package services

import (
	"context"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Property-carrying driver limits (FMCSA hours-of-service).
const (
	maxDrivingHoursPerDay = 11.0
	maxDutyWindowHours    = 14.0
	requiredRestHours     = 10.0
	cycleLimitHours       = 70.0
	cycleRestartHours     = 34.0
	fuelIntervalMiles     = 1000.0
	fuelStopHours         = 0.5
	serviceStopHours      = 1.0
)

// TripPlan is the planner output: the stop sequence, the duty events the
// schedule implies (already split at midnights so each day can be
// reconstructed directly), and the trip-level route metrics.
type TripPlan struct {
	Stops                  []domain.Stop
	DutyEvents             []domain.DutyEvent
	TotalDistanceMiles     float64
	EstimatedDurationHours float64
}

// PlanTrip computes the route metrics for a trip and derives a compliant
// duty schedule from them.
//
// The schedule follows the property-carrying rules the original paper log is
// built around: one on-duty hour each for pickup and dropoff, a half-hour
// fuel stop at least every 1,000 miles, at most 11 driving hours inside a
// 14-hour duty window per day followed by a 10-hour off-duty reset, and a
// 34-hour restart when the 70-hour/8-day cycle runs out. Driving speed is
// the route average reported by the distance provider. The planner is pure
// computation over the two route estimates; given identical estimates it
// always produces the identical schedule.
func PlanTrip(
	ctx context.Context,
	trip *domain.Trip,
	departAt time.Time,
	provider ports.DistanceProvider,
) (*TripPlan, error) {
	if trip == nil {
		return nil, errors.New("plan trip: trip must be non-nil")
	}
	if trip.CurrentLocation == "" || trip.PickupLocation == "" || trip.DropoffLocation == "" {
		return nil, errors.New("plan trip: trip locations must be non-empty")
	}

	toPickup, err := provider.EstimateRoute(ctx, trip.CurrentLocation, trip.PickupLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: estimate leg to pickup: %w", err)
	}
	toDropoff, err := provider.EstimateRoute(ctx, trip.PickupLocation, trip.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: estimate leg to dropoff: %w", err)
	}

	sim := &scheduleSim{
		now:        departAt,
		cycleUsed:  trip.CurrentCycleHoursUsed,
		dutyStatus: domain.StatusOffDuty,
	}

	if err := sim.driveLeg(toPickup, trip.PickupLocation); err != nil {
		return nil, fmt.Errorf("plan trip: leg to pickup: %w", err)
	}
	sim.serviceStop(domain.StopPickup, trip.PickupLocation)

	if err := sim.driveLeg(toDropoff, trip.DropoffLocation); err != nil {
		return nil, fmt.Errorf("plan trip: leg to dropoff: %w", err)
	}
	sim.serviceStop(domain.StopDropoff, trip.DropoffLocation)

	plan := &TripPlan{
		Stops:                  sim.stops,
		DutyEvents:             SplitAtMidnights(sim.events(trip.ID)),
		TotalDistanceMiles:     toPickup.DistanceMiles + toDropoff.DistanceMiles,
		EstimatedDurationHours: toPickup.DurationHours + toDropoff.DurationHours,
	}
	return plan, nil
}

// scheduleSim sweeps a clock forward emitting duty intervals while tracking
// the daily and cycle budgets.
type scheduleSim struct {
	now            time.Time
	drivenToday    float64
	dutyToday      float64
	cycleUsed      float64
	milesSinceFuel float64
	dutyStatus     domain.Status

	intervals []dutyInterval
	stops     []domain.Stop
}

type dutyInterval struct {
	status domain.Status
	start  time.Time
	end    time.Time
}

func (s *scheduleSim) emit(status domain.Status, hours float64) {
	end := s.now.Add(time.Duration(hours * float64(time.Hour)))
	s.intervals = append(s.intervals, dutyInterval{status: status, start: s.now, end: end})
	s.now = end
}

// rest inserts the 10-hour off-duty reset and clears the daily budgets.
func (s *scheduleSim) rest() {
	s.stops = append(s.stops, domain.Stop{
		Kind:     domain.StopRest,
		Location: "en route",
		ArriveAt: s.now,
		DepartAt: s.now.Add(time.Duration(requiredRestHours * float64(time.Hour))),
	})
	s.emit(domain.StatusOffDuty, requiredRestHours)
	s.drivenToday = 0
	s.dutyToday = 0
}

// restart inserts the 34-hour cycle restart.
func (s *scheduleSim) restart() {
	s.stops = append(s.stops, domain.Stop{
		Kind:     domain.StopRest,
		Location: "en route",
		ArriveAt: s.now,
		DepartAt: s.now.Add(time.Duration(cycleRestartHours * float64(time.Hour))),
	})
	s.emit(domain.StatusOffDuty, cycleRestartHours)
	s.drivenToday = 0
	s.dutyToday = 0
	s.cycleUsed = 0
}

// onDuty spends non-driving duty hours, resting first if the day or cycle
// cannot absorb them.
func (s *scheduleSim) onDuty(hours float64) {
	if s.dutyToday+hours > maxDutyWindowHours {
		s.rest()
	}
	if s.cycleUsed+hours > cycleLimitHours {
		s.restart()
	}
	s.emit(domain.StatusOnDuty, hours)
	s.dutyToday += hours
	s.cycleUsed += hours
}

func (s *scheduleSim) serviceStop(kind domain.StopKind, location string) {
	arrive := s.now
	s.onDuty(serviceStopHours)
	s.stops = append(s.stops, domain.Stop{
		Kind:     kind,
		Location: location,
		ArriveAt: arrive,
		DepartAt: s.now,
	})
}

// driveLeg drives one leg, inserting fuel stops, daily resets and cycle
// restarts as the budgets run out.
func (s *scheduleSim) driveLeg(leg ports.RouteEstimate, destination string) error {
	if leg.DistanceMiles <= 0 {
		return nil
	}
	if leg.DurationHours <= 0 {
		return fmt.Errorf("route estimate has non-positive duration (%v h) for %q", leg.DurationHours, destination)
	}
	speed := leg.DistanceMiles / leg.DurationHours

	remaining := leg.DistanceMiles
	for remaining > 0 {
		if s.cycleUsed >= cycleLimitHours-coverageEpsilon {
			s.restart()
		}
		if s.drivenToday >= maxDrivingHoursPerDay-coverageEpsilon ||
			s.dutyToday >= maxDutyWindowHours-coverageEpsilon {
			s.rest()
		}

		capHours := maxDrivingHoursPerDay - s.drivenToday
		if w := maxDutyWindowHours - s.dutyToday; w < capHours {
			capHours = w
		}
		if c := cycleLimitHours - s.cycleUsed; c < capHours {
			capHours = c
		}

		miles := remaining
		if m := capHours * speed; m < miles {
			miles = m
		}
		if m := fuelIntervalMiles - s.milesSinceFuel; m < miles {
			miles = m
		}

		hours := miles / speed
		s.emit(domain.StatusDriving, hours)
		s.drivenToday += hours
		s.dutyToday += hours
		s.cycleUsed += hours
		s.milesSinceFuel += miles
		remaining -= miles

		if s.milesSinceFuel >= fuelIntervalMiles-coverageEpsilon && remaining > 0 {
			arrive := s.now
			s.onDuty(fuelStopHours)
			s.stops = append(s.stops, domain.Stop{
				Kind:     domain.StopFuel,
				Location: "en route",
				ArriveAt: arrive,
				DepartAt: s.now,
			})
			s.milesSinceFuel = 0
		}
	}
	return nil
}

func (s *scheduleSim) events(tripID uuid.UUID) []domain.DutyEvent {
	out := make([]domain.DutyEvent, 0, len(s.intervals))
	for _, iv := range s.intervals {
		out = append(out, domain.DutyEvent{
			TripID: tripID,
			Status: iv.status,
			Start:  iv.start,
			End:    iv.end,
		})
	}
	return out
}
