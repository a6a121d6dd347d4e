package ports

import "context"

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return route estimates from one origin to many destinations.
	EstimateRoutes(ctx context.Context, origin string, destinations []string) (map[string]RouteEstimate, error)
}
