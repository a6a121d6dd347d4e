package distance

import (
	"context"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/platform/obs"
	"driver-log-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// RouteCache is a persistent cache for origin->destination route estimates.
type RouteCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.RouteEstimate, error)
	PutMany(ctx context.Context, origin string, results map[string]ports.RouteEstimate) error
}

// GeocodeCache is a persistent cache mapping addresses to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// It coordinates address normalization, persistent geocode and route caching,
// and external API calls with retry/backoff. ORS reports meters and seconds;
// results are converted to miles and hours at this boundary so the rest of
// the service only ever sees hours-of-service units.
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	client     *http.Client
	apiKey     string
	baseURL    string
	profile    string
	routeCache RouteCache
	geoCache   GeocodeCache
}

func NewORSDistanceProvider(apiKey string, routeCache RouteCache, geoCache GeocodeCache) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSDistanceProvider{
		client:     &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.openrouteservice.org",
		profile:    "driving-hgv",
		routeCache: routeCache,
		geoCache:   geoCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EstimateRoute delegates to the batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) EstimateRoute(
	ctx context.Context,
	origin string,
	destination string,
) (ports.RouteEstimate, error) {
	normOrigin := normalize(origin)
	normDestination := normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.RouteEstimate{}, errors.New("estimate route: origin and destination must be non-empty")
	}

	results, err := o.EstimateRoutes(ctx, normOrigin, []string{normDestination})
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("estimate routes %q -> %q: %w", normOrigin, normDestination, err)
	}

	result, ok := results[normDestination]
	if !ok {
		return ports.RouteEstimate{}, fmt.Errorf("no route estimate for %q -> %q", origin, destination)
	}
	return result, nil
}

// EstimateRoutes computes route estimates from a single origin to many
// destinations, serving as much as possible from the persistent caches.
func (o *ORSDistanceProvider) EstimateRoutes(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "ors.EstimateRoutes")(&err)

	normOrigin := normalize(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]string, 0, len(destinations))
	for _, d := range destinations {
		nd := normalize(d)
		if nd == "" || nd == normOrigin {
			continue
		}
		if _, ok := seen[nd]; ok {
			continue
		}
		seen[nd] = struct{}{}
		destList = append(destList, nd)
	}
	if len(destList) == 0 {
		return map[string]ports.RouteEstimate{}, nil
	}

	hits := make(map[string]ports.RouteEstimate)
	if o.routeCache != nil {
		hits, err = o.routeCache.GetMany(ctx, normOrigin, destList)
		if err != nil {
			return nil, fmt.Errorf("route cache read: %w", err)
		}
	}

	misses := make([]string, 0, len(destList))
	for _, d := range destList {
		if _, ok := hits[d]; !ok {
			misses = append(misses, d)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	coords, err := o.resolveCoordinates(ctx, append([]string{normOrigin}, misses...))
	if err != nil {
		return nil, fmt.Errorf("resolving coordinates: %w", err)
	}

	originCoord, ok := coords[normOrigin]
	if !ok {
		return nil, fmt.Errorf("missing coordinate for origin %q", normOrigin)
	}
	missCoords := make([]domain.Coordinates, 0, len(misses))
	for _, d := range misses {
		c, ok := coords[d]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for destination %q", d)
		}
		missCoords = append(missCoords, c)
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, originCoord, misses, missCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	missing := make([]string, 0)
	for _, d := range misses {
		if _, ok := fetched[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"ORS matrix service did not return the following destinations: %s",
			strings.Join(missing, ", "),
		)
	}

	if o.routeCache != nil {
		if err := o.routeCache.PutMany(ctx, normOrigin, fetched); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	out := make(map[string]ports.RouteEstimate, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// resolveCoordinates returns a coordinate per address, consulting the
// geocode cache first and writing fresh lookups back through it.
func (o *ORSDistanceProvider) resolveCoordinates(
	ctx context.Context,
	addresses []string,
) (map[string]domain.Coordinates, error) {
	cached := make(map[string]domain.Coordinates)
	if o.geoCache != nil {
		var err error
		cached, err = o.geoCache.GetMany(ctx, addresses)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}

	misses := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := cached[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	if len(misses) > 0 {
		var err error
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, err
		}
	}

	if o.geoCache != nil && len(fresh) > 0 {
		if err := o.geoCache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	coords := make(map[string]domain.Coordinates, len(cached)+len(fresh))
	for k, v := range cached {
		coords[k] = v
	}
	for k, v := range fresh {
		coords[k] = v
	}
	return coords, nil
}
