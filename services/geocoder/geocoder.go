package geocoder

import (
	"context"
	"fmt"

	"github.com/ojst60/DevBootcamp/utils/apperror"
)

// Result is one candidate match for a free-text address
type Result struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	StreetName       string
	City             string
	StateCode        string
	Zipcode          string
	CountryCode      string
}

// Geocoder converts a free-text address into candidate results
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]Result, error)
}

// First geocodes address and returns the best candidate.
// An empty result set yields an UpstreamBadInput error instead of an index panic.
func First(ctx context.Context, g Geocoder, address string) (Result, error) {
	results, err := g.Geocode(ctx, address)
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, apperror.UpstreamBadInput(fmt.Sprintf("address not resolvable: %q", address), nil)
	}
	return results[0], nil
}
