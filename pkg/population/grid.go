package population

import (
	"fmt"
	"math"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/scale"
)

// DefaultGridBound is the canvas used when a figure is drawn as a grid.
var DefaultGridBound = scale.Extent{Width: 800, Height: 600}

// Level projects a figure onto a canvas as a grid comparison: one grid
// cell stands for one person, the reference grid for the per-day count,
// and the per-hour figure rides along as an inset. The result feeds the
// same renderers as the spatial levels.
func (f Figure) Level(bound scale.Extent) (perspective.Level, error) {
	if f.PerDay < 1 {
		return perspective.Level{}, errors.New(errors.ErrCodeInvalidInput,
			"per-day figure must be at least 1, got %d", f.PerDay)
	}

	ratio := measure.Ratio{
		Linear: math.Sqrt(float64(f.PerDay)),
		Raw:    float64(f.PerDay),
		Kind:   measure.KindAreal,
	}
	pair, err := scale.Project(ratio, bound)
	if err != nil {
		return perspective.Level{}, err
	}

	lvl := perspective.Level{
		Label:  fmt.Sprintf("%s-per-day", f.Series),
		Ratio:  ratio,
		Shapes: pair,
		Bound:  bound,
	}

	if f.PerHour >= 1 {
		sub := measure.Ratio{
			Linear: math.Sqrt(float64(f.PerHour)),
			Raw:    float64(f.PerHour),
			Kind:   measure.KindAreal,
		}
		side := sub.Linear * pair.Factor
		if side < 1 {
			side = 1
		}
		if side > pair.Reference.Width {
			side = pair.Reference.Width
		}
		if side > pair.Reference.Height {
			side = pair.Reference.Height
		}
		lvl.Inset = &perspective.Inset{
			Label:    fmt.Sprintf("%s-per-hour", f.Series),
			Ratio:    sub,
			Geometry: scale.Geometry{Kind: scale.KindRect, Width: side, Height: side},
		}
	}
	return lvl, nil
}
