// Package measure defines measurements with unit tags and the scale-ratio
// computation that underpins every perspective level.
//
// A Measurement is a positive magnitude tagged with a unit from a fixed
// enumerated set. Units come in two kinds, areal and linear, and only
// measurements of the same kind are comparable. ComputeRatio normalizes both
// operands to base units (square meters or meters) before dividing, so a
// house entered in square yards and a city entered in square miles compare
// correctly.
//
// The single most important rule lives here: when two areas are compared for
// linear pixel sizing ("house shrunk to one pixel"), the linear ratio is the
// square root of the area ratio. Shrinking a 2D shape uniformly scales its
// linear dimensions by √(areaRatio), not areaRatio itself.
package measure

import (
	"math"

	"github.com/contextviz/contextviz/pkg/errors"
)

// Kind classifies units as areal or linear.
type Kind int

const (
	KindAreal Kind = iota
	KindLinear
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindLinear {
		return "linear"
	}
	return "areal"
}

// Unit is a tag from the fixed enumerated set of supported units.
type Unit int

const (
	SquareMeters Unit = iota
	SquareFeet
	SquareYards
	SquareKilometers
	SquareMiles
	Meters
	Kilometers
)

// unitSpec records a unit's kind and its factor to the base unit
// (square meters for areal units, meters for linear units).
var unitSpecs = map[Unit]struct {
	name   string
	kind   Kind
	factor float64
}{
	SquareMeters:     {"m²", KindAreal, 1},
	SquareFeet:       {"ft²", KindAreal, 0.092903},
	SquareYards:      {"yd²", KindAreal, 0.836127},
	SquareKilometers: {"km²", KindAreal, 1e6},
	SquareMiles:      {"mi²", KindAreal, 2.58999e6},
	Meters:           {"m", KindLinear, 1},
	Kilometers:       {"km", KindLinear, 1e3},
}

// String returns the unit symbol (e.g. "km²").
func (u Unit) String() string {
	if s, ok := unitSpecs[u]; ok {
		return s.name
	}
	return "unknown"
}

// Kind returns whether the unit measures area or linear distance.
func (u Unit) Kind() Kind {
	return unitSpecs[u].kind
}

// Valid reports whether u belongs to the enumerated unit set.
func (u Unit) Valid() bool {
	_, ok := unitSpecs[u]
	return ok
}

// ParseUnit resolves a unit symbol or common alias to its Unit tag.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "m2", "m²", "sqm", "sq.meters", "sq.m":
		return SquareMeters, nil
	case "ft2", "ft²", "sqft", "sq.feet", "sq.ft":
		return SquareFeet, nil
	case "yd2", "yd²", "sqyd", "sq.yards", "sq.yd":
		return SquareYards, nil
	case "km2", "km²", "sqkm", "sq.kms", "sq.km":
		return SquareKilometers, nil
	case "mi2", "mi²", "sqmi", "sq.miles", "sq.mi":
		return SquareMiles, nil
	case "m", "meters":
		return Meters, nil
	case "km", "kms", "kilometers":
		return Kilometers, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownUnit, "unknown unit %q", s)
}

// Measurement is a positive real magnitude with a unit tag.
// The zero value is invalid; construct via New or a composite literal and
// rely on ComputeRatio's defensive re-validation.
type Measurement struct {
	Value float64
	Unit  Unit
}

// New constructs a validated Measurement.
func New(value float64, unit Unit) (Measurement, error) {
	m := Measurement{Value: value, Unit: unit}
	if err := m.Validate(); err != nil {
		return Measurement{}, err
	}
	return m, nil
}

// Validate checks the measurement invariants: a positive finite value and a
// unit from the enumerated set.
func (m Measurement) Validate() error {
	if !m.Unit.Valid() {
		return errors.New(errors.ErrCodeUnknownUnit, "invalid unit tag %d", int(m.Unit))
	}
	if err := errors.ValidateMagnitude(m.Value); err != nil {
		return err
	}
	return nil
}

// Base returns the magnitude normalized to the base unit of its kind
// (square meters for areal units, meters for linear units).
func (m Measurement) Base() float64 {
	return m.Value * unitSpecs[m.Unit].factor
}

// Ratio is the dimensionless result of comparing two measurements.
//
// Linear is the factor, always ≥ 1 and finite, by which the larger
// magnitude exceeds the smaller in linear terms. Raw is the plain quotient
// of the normalized magnitudes: for areal comparisons Linear = √Raw, for
// linear comparisons Linear == Raw. Inverted records that the second
// operand was the larger one.
type Ratio struct {
	Linear   float64
	Raw      float64
	Kind     Kind
	Inverted bool
}

// Equal reports whether the two compared magnitudes were identical.
func (r Ratio) Equal() bool { return r.Linear == 1 }

// ComputeRatio compares two measurements of the same kind and returns the
// derived scale ratio. The smaller magnitude is always the denominator, so
// the returned ratio is ≥ 1 regardless of argument order; Inverted reports
// which operand was larger.
//
// ComputeRatio is pure and safe for concurrent use. Inputs are re-validated
// defensively even though callers are expected to validate at the boundary:
// a zero or negative magnitude here would otherwise surface as degenerate
// geometry far from its cause.
func ComputeRatio(a, b Measurement) (Ratio, error) {
	if err := a.Validate(); err != nil {
		return Ratio{}, err
	}
	if err := b.Validate(); err != nil {
		return Ratio{}, err
	}
	if a.Unit.Kind() != b.Unit.Kind() {
		return Ratio{}, errors.New(errors.ErrCodeInvalidUnitKind,
			"cannot compare %s (%s) with %s (%s)", a.Unit, a.Unit.Kind(), b.Unit, b.Unit.Kind())
	}

	larger, smaller := a.Base(), b.Base()
	inverted := false
	if smaller > larger {
		larger, smaller = smaller, larger
		inverted = true
	}

	raw := larger / smaller
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Ratio{}, errors.New(errors.ErrCodeNonPositiveMeasurement,
			"ratio of %g to %g is not finite", larger, smaller)
	}

	r := Ratio{Raw: raw, Kind: a.Unit.Kind(), Inverted: inverted}
	if r.Kind == KindAreal {
		r.Linear = math.Sqrt(raw)
	} else {
		r.Linear = raw
	}
	return r, nil
}
