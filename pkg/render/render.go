package render

import (
	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/perspective"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Render produces the artifact for one level in the given format.
func Render(level perspective.Level, format string, opts ...Option) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return RenderSVG(level, opts...), nil
	case FormatPNG:
		return RenderPNG(level, opts...)
	default:
		return RenderJSON(level, opts...)
	}
}

// Colors shared by the SVG and PNG sinks, matching the classic palette:
// a black/white checkerboard, a red shrunk-item marker, a green inset
// grid, and an orange-outlined red sun on the orbit diagram.
const (
	colorGridDark  = "#000000"
	colorGridLight = "#ffffff"
	colorMarker    = "#ff0000"
	colorInset     = "#008000"
	colorSunFill   = "#ff0000"
	colorSunEdge   = "#ffa500"
	colorEarth     = "#1e66c8"
	colorOrbit     = "#000000"
	colorCanvas    = "#ffffff"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	runID string
	scale float64
	title string
}

// WithRunID tags the artifact with the compose run identifier. It appears
// in the JSON payload and as metadata in the SVG header comment.
func WithRunID(id string) Option {
	return func(r *renderer) { r.runID = id }
}

// WithScale sets the PNG scale factor (default 1.0; 2.0 doubles the
// resolution the way the classic renderer drew its grids at 2x).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithTitle overrides the human-readable title derived from the level label.
func WithTitle(t string) Option {
	return func(r *renderer) { r.title = t }
}

func newRenderer(level perspective.Level, opts ...Option) renderer {
	r := renderer{scale: 1.0, title: level.Label}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
