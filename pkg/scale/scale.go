// Package scale converts scale ratios into renderable pixel geometry.
//
// The projector pins the shrunk item to exactly one pixel, sizes the
// reference item proportionally, and clamps the pair to a canvas bound
// without ever distorting the ratio between them beyond the one-pixel
// floor. Geometry is a tagged variant with a fixed field set per kind;
// downstream renderers dispatch on Kind explicitly.
package scale

import (
	"math"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
)

// ShapeKind discriminates the geometry variants.
type ShapeKind int

const (
	KindRect ShapeKind = iota
	KindCircle
)

// String returns the kind name.
func (k ShapeKind) String() string {
	if k == KindCircle {
		return "circle"
	}
	return "rect"
}

// Extent is the maximum pixel extent available for rendering one level.
type Extent struct {
	Width  int
	Height int
}

// Validate rejects non-positive bounds.
func (e Extent) Validate() error {
	if e.Width <= 0 || e.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas bound %dx%d is not positive", e.Width, e.Height)
	}
	return nil
}

// minSide returns the smaller extent dimension in pixels.
func (e Extent) minSide() float64 {
	return float64(min(e.Width, e.Height))
}

// Geometry describes one renderable shape in pixel space.
//
// For KindRect, Width and Height are set and Radius is zero; for
// KindCircle, Radius is set and Width/Height are zero. X and Y anchor the
// shape's top-left corner (rect) or center (circle) on the canvas.
// Invariants: the smallest dimension is ≥ 1 px and the largest fits the
// canvas bound the pair was projected against.
type Geometry struct {
	Kind   ShapeKind
	X, Y   float64
	Width  float64
	Height float64
	Radius float64
}

// MaxDimension returns the largest pixel dimension of the shape.
func (g Geometry) MaxDimension() float64 {
	if g.Kind == KindCircle {
		return 2 * g.Radius
	}
	return math.Max(g.Width, g.Height)
}

// MinDimension returns the smallest pixel dimension of the shape.
func (g Geometry) MinDimension() float64 {
	if g.Kind == KindCircle {
		return 2 * g.Radius
	}
	return math.Min(g.Width, g.Height)
}

// Pair is the projector output: the reference shape first, the shrunk
// shape second. Both are always present; a failed projection returns no
// partial pair.
//
// Factor is the rescale applied to fit the canvas bound: 1 when the pair
// fit as-is, < 1 when both members were shrunk together. Callers placing
// additional shapes relative to the pair (insets) apply the same factor to
// stay proportional.
type Pair struct {
	Reference Geometry
	Shrunk    Geometry
	Factor    float64
}

// Option configures a projection.
type Option func(*projector)

type projector struct {
	kind   ShapeKind
	aspect float64 // width:height of the reference shape; 0 means derive from the bound
}

// WithCircles projects circle geometry instead of rectangles. The ratio is
// applied to radii, which suits inherently radial comparisons such as the
// orbit tier.
func WithCircles() Option {
	return func(p *projector) { p.kind = KindCircle }
}

// WithAspect sets the width:height ratio of the reference shape, when the
// original measurement pair carries real proportions rather than a bare
// scalar area. Non-positive values are ignored.
func WithAspect(aspect float64) Option {
	return func(p *projector) {
		if aspect > 0 && !math.IsInf(aspect, 0) && !math.IsNaN(aspect) {
			p.aspect = aspect
		}
	}
}

// Project converts a ratio into a clamped geometry pair for the given
// canvas bound.
//
// The shrunk item is pinned at 1 px. The reference item starts at
// ratio px; when that exceeds the bound, both members are rescaled by the
// same factor so the reference fits exactly, and the shrunk item is then
// floored back to 1 px. The floor is the only place the literal ratio is
// bent, and it preserves the intended visual impression: a sub-pixel shape
// would simply vanish.
//
// Project is pure and safe for concurrent use.
func Project(r measure.Ratio, bound Extent, opts ...Option) (Pair, error) {
	if err := bound.Validate(); err != nil {
		return Pair{}, err
	}
	if r.Linear < 1 || math.IsNaN(r.Linear) || math.IsInf(r.Linear, 0) {
		return Pair{}, errors.New(errors.ErrCodeInvalidInput, "ratio %g violates the ≥1 invariant", r.Linear)
	}

	p := projector{kind: KindRect}
	for _, opt := range opts {
		opt(&p)
	}

	if p.kind == KindCircle {
		return projectCircles(r, bound), nil
	}
	return projectRects(r, bound, p.aspect), nil
}

// projectRects sizes the reference rectangle at ratio px along its smaller
// side, shapes it by the aspect ratio, and clamps the pair together.
func projectRects(r measure.Ratio, bound Extent, aspect float64) Pair {
	if aspect <= 0 {
		aspect = float64(bound.Width) / float64(bound.Height)
	}

	// The shrunk item occupies 1x1 px; the reference spans ratio px of
	// linear extent distributed by the aspect ratio so the areas still
	// relate by ratio².
	refH := r.Linear / math.Sqrt(aspect)
	refW := aspect * refH

	scale := 1.0
	if s := float64(bound.Width) / refW; s < scale {
		scale = s
	}
	if s := float64(bound.Height) / refH; s < scale {
		scale = s
	}

	ref := Geometry{Kind: KindRect, Width: refW * scale, Height: refH * scale}
	shrunk := Geometry{Kind: KindRect, Width: math.Max(scale, 1), Height: math.Max(scale, 1)}

	// Equal magnitudes collapse onto the same minimal cell; the aspect
	// shaping must not tell identical inputs apart.
	if r.Equal() {
		return Pair{Reference: shrunk, Shrunk: shrunk, Factor: scale}
	}

	// Never let the reference fall below the shrunk floor.
	if ref.Width < shrunk.Width {
		ref.Width = shrunk.Width
	}
	if ref.Height < shrunk.Height {
		ref.Height = shrunk.Height
	}
	return Pair{Reference: ref, Shrunk: shrunk, Factor: scale}
}

// projectCircles applies the ratio to radii. The shrunk circle is pinned at
// a 1 px diameter; the reference diameter is clamped to the smaller canvas
// dimension so the disc always fits.
func projectCircles(r measure.Ratio, bound Extent) Pair {
	refDiam := r.Linear
	scale := 1.0
	if limit := bound.minSide(); refDiam > limit {
		scale = limit / refDiam
	}

	refDiam *= scale
	shrunkDiam := math.Max(scale, 1)
	if refDiam < shrunkDiam {
		refDiam = shrunkDiam
	}

	cx := float64(bound.Width) / 2
	cy := float64(bound.Height) / 2
	return Pair{
		Reference: Geometry{Kind: KindCircle, X: cx, Y: cy, Radius: refDiam / 2},
		Shrunk:    Geometry{Kind: KindCircle, X: cx, Y: cy, Radius: shrunkDiam / 2},
		Factor:    scale,
	}
}
