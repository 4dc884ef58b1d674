// Package pipeline provides the core visualization pipeline for contextviz.
//
// This package implements the complete compose → render flow used by the
// CLI. By centralizing this logic, the interactive form and the flag-driven
// command behave identically.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compose: derive the three perspective levels from the measurements
//  2. Render: generate artifacts per level in the requested formats
//
// Composition is pure and fast; rendering can be expensive for large
// grids, so rendered artifacts are cached keyed by a hash of the inputs
// and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    House:   measure.Measurement{Value: 100, Unit: measure.SquareMeters},
//	    City:    measure.Measurement{Value: 400, Unit: measure.SquareKilometers},
//	    Country: "Finland",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["your-house-in-your-city.svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/render"
	"github.com/contextviz/contextviz/pkg/scale"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAspect is the width:height ratio for rectangular levels.
	DefaultAspect = 4.0 / 3.0

	// DefaultScale is the PNG supersampling factor. The classic renderer
	// drew its grids at double resolution; we keep that default.
	DefaultScale = 2.0
)

// DefaultFormat is the default output format.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Compose options
	House   measure.Measurement `json:"house"`
	City    measure.Measurement `json:"city"`
	Country string              `json:"country,omitempty"`
	Bounds  []scale.Extent      `json:"bounds,omitempty"` // per-level canvas bounds
	Aspect  float64             `json:"aspect,omitempty"`
	World   measure.Measurement `json:"world,omitempty"` // world-area override

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this compose run in logs and JSON artifacts.
	RunID string

	// Levels are the three composed perspective levels in fixed order.
	Levels []perspective.Level

	// Artifacts contains rendered outputs keyed by "<label>.<format>".
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits across the pipeline stages.
type CacheInfo struct {
	ComposeHit   bool
	RenderHits   int
	RenderMisses int
}

// AllHits reports whether every artifact came from the cache.
func (c CacheInfo) AllHits() bool {
	return c.RenderMisses == 0 && c.RenderHits > 0
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.House.Validate(); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "house measurement")
	}
	if err := o.City.Validate(); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "city measurement")
	}
	if o.Country != "" {
		if err := errors.ValidateCountryName(o.Country); err != nil {
			return err
		}
	}
	for _, b := range o.Bounds {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	if len(o.Bounds) > perspective.LevelCount {
		return errors.New(errors.ErrCodeInvalidInput,
			"at most %d level bounds may be given, got %d", perspective.LevelCount, len(o.Bounds))
	}

	if o.Aspect == 0 {
		o.Aspect = DefaultAspect
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// composer builds the perspective composer for these options.
func (o *Options) composer() *perspective.Composer {
	copts := []perspective.Option{perspective.WithAspect(o.Aspect)}
	for i, b := range o.Bounds {
		copts = append(copts, perspective.WithBound(i, b))
	}
	if o.World.Value > 0 {
		copts = append(copts, perspective.WithWorldArea(o.World))
	}
	return perspective.New(copts...)
}

// inputs returns the compose inputs for these options.
func (o *Options) inputs() perspective.Inputs {
	return perspective.Inputs{House: o.House, City: o.City, Country: o.Country}
}
