package kernel

import (
	"fmt"
	"math"

	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distance.
	earthRadiusKm = 6371.0
)

// ErrCoordinatesAreNotConstructed is returned when attempting to use an
// improperly initialized Coordinates value. Coordinates must be created via
// NewCoordinates to guarantee both components were validated.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates represents a geographic position as a latitude/longitude pair
// in decimal degrees. Coordinates is an immutable value object; the zero
// value is invalid and will fail validation.
//
// Example:
//
//	coords, err := kernel.NewCoordinates(30.0444, 31.2357)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("position: %s", coords) // Output: position: (30.044400,31.235700)
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewCoordinates creates a validated Coordinates value.
// Latitude must lie in [-90, 90] and longitude in [-180, 180]; both must be
// finite numbers. NaN and infinities are rejected so a malformed fix coming
// off the wire can never enter the domain.
func NewCoordinates(lat float64, lng float64) (Coordinates, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return Coordinates{}, errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%v is not a finite number", lat))
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return Coordinates{}, errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%v is not a finite number", lng))
	}
	if lat < LatitudeMin || lat > LatitudeMax {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	if lng < LongitudeMin || lng > LongitudeMax {
		return Coordinates{}, errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	return Coordinates{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Coordinates were created via NewCoordinates.
// The zero value fails with ErrCoordinatesAreNotConstructed.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (c Coordinates) Lat() float64 {
	return c.lat
}

// Lng returns the longitude in decimal degrees.
func (c Coordinates) Lng() float64 {
	return c.lng
}

// IsEqual compares two coordinate pairs component-wise.
func (c Coordinates) IsEqual(other Coordinates) bool {
	return c.lat == other.lat && c.lng == other.lng
}

// DistanceKmTo computes the great-circle distance in kilometers between the
// receiver and other using the haversine formula.
//
// Both values must be properly constructed; an error is returned otherwise.
func (c Coordinates) DistanceKmTo(other Coordinates) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	dLat := toRadians(other.lat - c.lat)
	dLng := toRadians(other.lng - c.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(c.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	arc := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * arc, nil
}

// String returns the coordinate pair formatted as "(lat,lng)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%f,%f)", c.lat, c.lng)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
