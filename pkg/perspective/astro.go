package perspective

import "github.com/contextviz/contextviz/pkg/measure"

// Astronomical constants for the orbit tier. These are compiled-in
// configuration, not user input: the third perspective level is always
// rendered from this dataset regardless of what the user entered.
//
// SunOrbitDiameterRatio is the ratio of earth's orbital diameter to the
// sun's diameter (~2 AU / 1.3927M km).
const (
	SunDiameterKm         = 1_392_700.0
	EarthDiameterKm       = 12_742.0
	SunOrbitDiameterRatio = 211.60
	OrbitDiameterKm       = SunDiameterKm * SunOrbitDiameterRatio
)

// WorldSurfaceArea is the reference constant for the "city in the world"
// level, in square kilometers. It is the Earth's total surface area; the
// composer exposes an override for callers that prefer a land-only figure.
const WorldSurfaceAreaKm2 = 510_072_000.0

// SunDiameter returns the sun's diameter as a linear Measurement.
func SunDiameter() measure.Measurement {
	return measure.Measurement{Value: SunDiameterKm, Unit: measure.Kilometers}
}

// EarthDiameter returns the earth's diameter as a linear Measurement.
func EarthDiameter() measure.Measurement {
	return measure.Measurement{Value: EarthDiameterKm, Unit: measure.Kilometers}
}

// OrbitDiameter returns the diameter of earth's orbit as a linear Measurement.
func OrbitDiameter() measure.Measurement {
	return measure.Measurement{Value: OrbitDiameterKm, Unit: measure.Kilometers}
}

// WorldSurfaceArea returns the world reference area as an areal Measurement.
func WorldSurfaceArea() measure.Measurement {
	return measure.Measurement{Value: WorldSurfaceAreaKm2, Unit: measure.SquareKilometers}
}
