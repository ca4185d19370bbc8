package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// Geocoder looks up a single query. It returns nil, nil when the provider
// has no match and an error only for transport or provider failures.
type Geocoder interface {
	Geocode(ctx context.Context, req models.GeocodeRequest) (*models.Coordinates, error)
}

const (
	defaultCountrySuffix = ", Japan"
	defaultCountryHint   = "jp"
	defaultUserAgent     = "furugiya_map_v3"
	defaultLookupTimeout = 10 * time.Second
)

// addressSuffix matches the first building, floor or unit marker in a
// Japanese street address.
var addressSuffix = regexp.MustCompile(`[ 　]|ビル|階|F|号|（|\(|🏢`)

// GeocodeResolver turns an address into coordinates, trying the full
// address first and a simplified variant second.
type GeocodeResolver struct {
	geocoder      Geocoder
	userAgent     string
	countryHint   string
	countrySuffix string
	timeout       time.Duration
	now           func() time.Time
}

// ResolverOption configures a GeocodeResolver.
type ResolverOption func(*GeocodeResolver)

// WithUserAgent sets the prefix of the per-call client identity token.
func WithUserAgent(prefix string) ResolverOption {
	return func(r *GeocodeResolver) {
		if prefix != "" {
			r.userAgent = prefix
		}
	}
}

// WithCountryHint sets the country code hint passed to the geocoder.
func WithCountryHint(hint string) ResolverOption {
	return func(r *GeocodeResolver) {
		r.countryHint = hint
	}
}

// WithLookupTimeout bounds each individual geocoder call.
func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *GeocodeResolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewGeocodeResolver creates a resolver backed by the given geocoder.
func NewGeocodeResolver(geocoder Geocoder, opts ...ResolverOption) *GeocodeResolver {
	r := &GeocodeResolver{
		geocoder:      geocoder,
		userAgent:     defaultUserAgent,
		countryHint:   defaultCountryHint,
		countrySuffix: defaultCountrySuffix,
		timeout:       defaultLookupTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns coordinates for address. It never fails; when no
// candidate query matches, the fallback coordinates are returned.
func (r *GeocodeResolver) Resolve(ctx context.Context, address string) models.Coordinates {
	logger := zerolog.Ctx(ctx)

	address = strings.TrimSpace(address)
	if address == "" {
		return models.FallbackCoordinates()
	}

	userAgent := r.clientToken()
	for _, candidate := range Candidates(address) {
		coords, err := r.lookup(ctx, candidate+r.countrySuffix, userAgent)
		if err != nil {
			logger.Warn().Err(err).Str("query", candidate).Msg("geocode lookup failed")
			continue
		}
		if coords != nil {
			logger.Debug().
				Str("query", candidate).
				Float64("latitude", coords.Latitude).
				Float64("longitude", coords.Longitude).
				Msg("geocode match")
			return *coords
		}
	}

	logger.Info().Str("address", address).Msg("geocode: no match, using fallback coordinates")
	return models.FallbackCoordinates()
}

func (r *GeocodeResolver) lookup(ctx context.Context, query, userAgent string) (*models.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	coords, err := r.geocoder.Geocode(ctx, models.GeocodeRequest{
		Query:       query,
		CountryHint: r.countryHint,
		Timeout:     r.timeout,
		UserAgent:   userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("service: geocode %q: %w", query, err)
	}
	return coords, nil
}

// clientToken returns a fresh identity token so consecutive resolutions
// do not share a user agent upstream.
func (r *GeocodeResolver) clientToken() string {
	return fmt.Sprintf("%s_%d_%s", r.userAgent, r.now().UnixNano(), uuid.NewString())
}

// Candidates returns the ordered geocoder queries for address.
func Candidates(address string) []string {
	candidates := []string{address}
	if simplified := SimplifyAddress(address); simplified != "" && simplified != address {
		candidates = append(candidates, simplified)
	}
	return candidates
}

// SimplifyAddress keeps only the part of address before the first
// building, floor or unit marker.
func SimplifyAddress(address string) string {
	loc := addressSuffix.FindStringIndex(address)
	if loc == nil {
		return address
	}
	return address[:loc[0]]
}
