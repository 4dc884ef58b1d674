// Package perspective assembles the three fixed perspective levels from
// user measurements and compiled-in constants.
//
// The composer feeds each level's measurement pair through the ratio
// computation and the shape projector, and returns the levels in fixed
// ascending-scale order: house-in-city, city-in-world, orbit. The three
// computations are independent, so they run in parallel; the output order
// never depends on completion order. Any sub-error fails the whole call —
// a half-computed perspective is meaningless downstream.
package perspective

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/scale"
)

// LevelCount is the fixed number of perspective levels.
const LevelCount = 3

// Level indices in the composed output.
const (
	LevelHouseInCity = iota
	LevelCityInWorld
	LevelOrbit
)

// Default level labels, in output order.
var levelLabels = [LevelCount]string{
	"your-house-in-your-city",
	"your-city-in-the-world",
	"earth-orbit-sun-and-earth",
}

// Inset is an additional shape placed inside a level's reference shape:
// the country grid within the world level, or the earth within the orbit
// diagram. It shares the pair's clamp factor so proportions hold.
type Inset struct {
	Label    string
	Ratio    measure.Ratio
	Geometry scale.Geometry
}

// Level is one render-ready display tier: a label, the derived ratio, the
// projected shape pair and an optional inset. Levels are immutable values
// computed fresh per Compose call.
type Level struct {
	Label  string
	Ratio  measure.Ratio
	Shapes scale.Pair
	Bound  scale.Extent
	Inset  *Inset
}

// Geometries returns every shape in the level, reference first.
func (l Level) Geometries() []scale.Geometry {
	out := []scale.Geometry{l.Shapes.Reference, l.Shapes.Shrunk}
	if l.Inset != nil {
		out = append(out, l.Inset.Geometry)
	}
	return out
}

// Inputs carries the validated user measurements for a compose call.
// Country is optional; when empty, the world level renders without a
// country inset. The country name is also the display label — it plays no
// numeric role beyond the dataset lookup.
type Inputs struct {
	House   measure.Measurement
	City    measure.Measurement
	Country string
}

// Composer orchestrates the three perspective levels.
// The zero value is not usable; construct with New.
type Composer struct {
	bounds [LevelCount]scale.Extent
	aspect float64
	world  measure.Measurement
}

// Option configures a Composer.
type Option func(*Composer)

// WithBound overrides the canvas bound for one level. The three display
// windows may differ in size.
func WithBound(level int, bound scale.Extent) Option {
	return func(c *Composer) {
		if level >= 0 && level < LevelCount {
			c.bounds[level] = bound
		}
	}
}

// WithAspect sets the width:height ratio used for the rectangular levels.
func WithAspect(aspect float64) Option {
	return func(c *Composer) { c.aspect = aspect }
}

// WithWorldArea overrides the world reference area, for callers that
// prefer a land-only figure over the total-surface default.
func WithWorldArea(m measure.Measurement) Option {
	return func(c *Composer) { c.world = m }
}

// Default canvas bounds per level.
var defaultBounds = [LevelCount]scale.Extent{
	{Width: 800, Height: 600},
	{Width: 1024, Height: 768},
	{Width: 900, Height: 900},
}

// New creates a Composer with default bounds, a 4:3 aspect and the
// total-surface world constant.
func New(opts ...Option) *Composer {
	c := &Composer{
		bounds: defaultBounds,
		aspect: 4.0 / 3.0,
		world:  WorldSurfaceArea(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose derives all three perspective levels from the inputs. The
// returned slice always has exactly LevelCount elements in fixed order.
// Compose is pure: identical inputs yield identical output, and nothing is
// cached or mutated across calls.
func (c *Composer) Compose(ctx context.Context, in Inputs) ([]Level, error) {
	if err := in.House.Validate(); err != nil {
		return nil, err
	}
	if err := in.City.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Each level reads only its own measurements and constants, so the
	// fan-out needs no shared state. Cancellation is checked at entry;
	// the computations themselves finish in microseconds.
	var levels [LevelCount]Level
	var g errgroup.Group

	g.Go(func() error {
		lvl, err := c.houseLevel(in)
		if err != nil {
			return err
		}
		levels[LevelHouseInCity] = lvl
		return nil
	})
	g.Go(func() error {
		lvl, err := c.worldLevel(in)
		if err != nil {
			return err
		}
		levels[LevelCityInWorld] = lvl
		return nil
	})
	g.Go(func() error {
		lvl, err := c.orbitLevel()
		if err != nil {
			return err
		}
		levels[LevelOrbit] = lvl
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return levels[:], nil
}

// houseLevel compares the house area against the city area.
func (c *Composer) houseLevel(in Inputs) (Level, error) {
	ratio, err := measure.ComputeRatio(in.City, in.House)
	if err != nil {
		return Level{}, err
	}
	bound := c.bounds[LevelHouseInCity]
	pair, err := scale.Project(ratio, bound, scale.WithAspect(c.aspect))
	if err != nil {
		return Level{}, err
	}
	return Level{
		Label:  levelLabels[LevelHouseInCity],
		Ratio:  ratio,
		Shapes: pair,
		Bound:  bound,
	}, nil
}

// worldLevel compares the city area against the world reference area.
// A supplied country becomes an inset sub-ratio; its absence is not an
// error — the level falls back to the plain world comparison.
func (c *Composer) worldLevel(in Inputs) (Level, error) {
	ratio, err := measure.ComputeRatio(c.world, in.City)
	if err != nil {
		return Level{}, err
	}
	bound := c.bounds[LevelCityInWorld]
	pair, err := scale.Project(ratio, bound, scale.WithAspect(c.aspect))
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		Label:  levelLabels[LevelCityInWorld],
		Ratio:  ratio,
		Shapes: pair,
		Bound:  bound,
	}

	if in.Country != "" {
		countryArea, err := CountryArea(in.Country)
		if err != nil {
			return Level{}, err
		}
		subRatio, err := measure.ComputeRatio(countryArea, in.City)
		if err != nil {
			return Level{}, err
		}
		// The inset side is the country's linear extent relative to the
		// city's 1 px cell. Inverted means the country is the smaller
		// operand, so the side divides instead of multiplies.
		side := subRatio.Linear * pair.Factor
		if subRatio.Inverted {
			side = pair.Factor / subRatio.Linear
		}
		if side < 1 {
			side = 1
		}
		if side > pair.Reference.Width {
			side = pair.Reference.Width
		}
		if side > pair.Reference.Height {
			side = pair.Reference.Height
		}
		lvl.Inset = &Inset{
			Label:    in.Country,
			Ratio:    subRatio,
			Geometry: scale.Geometry{Kind: scale.KindRect, Width: side, Height: side},
		}
	}
	return lvl, nil
}

// orbitLevel compares earth's orbital diameter against the sun's diameter,
// with the earth itself as an inset. Built entirely from constants, so it
// is present regardless of user input.
func (c *Composer) orbitLevel() (Level, error) {
	ratio, err := measure.ComputeRatio(OrbitDiameter(), SunDiameter())
	if err != nil {
		return Level{}, err
	}
	bound := c.bounds[LevelOrbit]
	pair, err := scale.Project(ratio, bound, scale.WithCircles())
	if err != nil {
		return Level{}, err
	}

	sunEarth, err := measure.ComputeRatio(SunDiameter(), EarthDiameter())
	if err != nil {
		return Level{}, err
	}
	earthDiam := (2 * pair.Shrunk.Radius) / sunEarth.Linear
	if earthDiam < 1 {
		earthDiam = 1
	}

	return Level{
		Label:  levelLabels[LevelOrbit],
		Ratio:  ratio,
		Shapes: pair,
		Bound:  bound,
		Inset: &Inset{
			Label:    "earth",
			Ratio:    sunEarth,
			Geometry: scale.Geometry{Kind: scale.KindCircle, X: pair.Reference.X, Y: pair.Reference.Y, Radius: earthDiam / 2},
		},
	}, nil
}
