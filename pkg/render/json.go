package render

import (
	"encoding/json"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/scale"
)

type jsonOutput struct {
	Label    string         `json:"label"`
	Title    string         `json:"title,omitempty"`
	RunID    string         `json:"run_id,omitempty"`
	Ratio    jsonRatio      `json:"ratio"`
	Bound    jsonExtent     `json:"bound"`
	Shapes   []jsonGeometry `json:"shapes"`
	Inset    *jsonInset     `json:"inset,omitempty"`
	ClampFit float64        `json:"clamp_factor"`
}

type jsonRatio struct {
	Linear   float64 `json:"linear"`
	Raw      float64 `json:"raw"`
	Kind     string  `json:"kind"`
	Inverted bool    `json:"inverted,omitempty"`
}

type jsonExtent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type jsonGeometry struct {
	Kind   string  `json:"kind"`
	Role   string  `json:"role"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`
}

type jsonInset struct {
	Label    string       `json:"label"`
	Ratio    jsonRatio    `json:"ratio"`
	Geometry jsonGeometry `json:"geometry"`
}

// RenderJSON exports a level as a pretty-printed JSON document. This is
// the data interchange format for external renderers and for the
// round-trip tests of the artifact cache.
func RenderJSON(level perspective.Level, opts ...Option) ([]byte, error) {
	r := newRenderer(level, opts...)

	out := jsonOutput{
		Label:    level.Label,
		Title:    r.title,
		RunID:    r.runID,
		Ratio:    toJSONRatio(level.Ratio),
		Bound:    jsonExtent{Width: level.Bound.Width, Height: level.Bound.Height},
		ClampFit: level.Shapes.Factor,
		Shapes: []jsonGeometry{
			toJSONGeometry(level.Shapes.Reference, "reference"),
			toJSONGeometry(level.Shapes.Shrunk, "shrunk"),
		},
	}
	if inset := level.Inset; inset != nil {
		out.Inset = &jsonInset{
			Label:    inset.Label,
			Ratio:    toJSONRatio(inset.Ratio),
			Geometry: toJSONGeometry(inset.Geometry, "inset"),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s as JSON", level.Label)
	}
	return data, nil
}

func toJSONRatio(r measure.Ratio) jsonRatio {
	return jsonRatio{Linear: r.Linear, Raw: r.Raw, Kind: r.Kind.String(), Inverted: r.Inverted}
}

func toJSONGeometry(g scale.Geometry, role string) jsonGeometry {
	return jsonGeometry{
		Kind:   g.Kind.String(),
		Role:   role,
		X:      g.X,
		Y:      g.Y,
		Width:  g.Width,
		Height: g.Height,
		Radius: g.Radius,
	}
}
