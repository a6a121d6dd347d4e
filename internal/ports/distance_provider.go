package ports

import "context"

// RouteEstimate is the driving distance and travel time between two
// locations, expressed in the units the hours-of-service rules use.
type RouteEstimate struct {
	DistanceMiles float64
	DurationHours float64
}

// Contract for retrieving a route estimate between two addresses.
type DistanceProvider interface {
	// Return driving distance and estimated travel time between two locations.
	EstimateRoute(ctx context.Context, origin string, destination string) (RouteEstimate, error)
}
