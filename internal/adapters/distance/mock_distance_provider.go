package distance

import (
	"context"
	"driver-log-service/internal/ports"
	"fmt"
)

type MockLeg struct {
	From, To string
	Miles    float64
	Hours    float64
}

// MockDistanceProvider serves fixed route estimates from a lookup table.
// Intended for tests and local runs without an ORS key.
type MockDistanceProvider struct {
	m map[string]ports.RouteEstimate
}

func NewMockDistanceProvider(legs []MockLeg) *MockDistanceProvider {
	m := make(map[string]ports.RouteEstimate, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = ports.RouteEstimate{DistanceMiles: l.Miles, DurationHours: l.Hours}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) EstimateRoute(ctx context.Context, origin, destination string) (ports.RouteEstimate, error) {
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return ports.RouteEstimate{}, fmt.Errorf("missing leg %q -> %q", origin, destination)
	}
	return r, nil
}
