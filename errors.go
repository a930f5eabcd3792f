package geodesy

import "errors"

// Errors returned by the converters. They are wrapped with detail, so match
// them with errors.Is.
var (
	// ErrCoordinateOutOfRange is returned for latitudes beyond UTM coverage
	// (|lat| > 84), longitudes outside [-180, 180], and non-finite values.
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidZone is returned for a UTM zone outside [1, 60].
	ErrInvalidZone = errors.New("invalid UTM zone")

	// ErrUnsupportedCoordinateSystem is returned by conversions that are
	// recognised but not implemented, such as Township and Range.
	ErrUnsupportedCoordinateSystem = errors.New("unsupported coordinate system")

	// ErrMalformedCoordinate is returned when raw coordinate text cannot be
	// parsed.
	ErrMalformedCoordinate = errors.New("malformed coordinate")
)
