package scale

import (
	"math"
	"testing"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
)

func arealRatio(t *testing.T, linear float64) measure.Ratio {
	t.Helper()
	return measure.Ratio{Linear: linear, Raw: linear * linear, Kind: measure.KindAreal}
}

func TestProjectUnclamped(t *testing.T) {
	// Ratio 100 on a square 800x800 canvas: reference is 100x100, shrunk 1x1.
	pair, err := Project(arealRatio(t, 100), Extent{Width: 800, Height: 800})
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	if pair.Shrunk.Width != 1 || pair.Shrunk.Height != 1 {
		t.Errorf("Shrunk = %gx%g, want 1x1", pair.Shrunk.Width, pair.Shrunk.Height)
	}
	if math.Abs(pair.Reference.Width-100) > 1e-9 || math.Abs(pair.Reference.Height-100) > 1e-9 {
		t.Errorf("Reference = %gx%g, want 100x100", pair.Reference.Width, pair.Reference.Height)
	}
	if pair.Factor != 1 {
		t.Errorf("Factor = %g, want 1 when unclamped", pair.Factor)
	}
}

func TestProjectClampsToBound(t *testing.T) {
	// The worked scenario: a 100 m² house in a 400,000,000 m² city gives a
	// linear ratio of 2000. On an 800px canvas the pair rescales by 0.4 and
	// the shrunk side floors back up to 1px.
	pair, err := Project(arealRatio(t, 2000), Extent{Width: 800, Height: 800})
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	if math.Abs(pair.Reference.Width-800) > 1e-9 {
		t.Errorf("Reference.Width = %g, want 800 (clamped)", pair.Reference.Width)
	}
	if pair.Shrunk.Width != 1 {
		t.Errorf("Shrunk.Width = %g, want 1 (floored)", pair.Shrunk.Width)
	}
	if math.Abs(pair.Factor-0.4) > 1e-9 {
		t.Errorf("Factor = %g, want 0.4", pair.Factor)
	}
	if pair.Reference.MaxDimension() > 800 {
		t.Errorf("reference exceeds canvas: %g", pair.Reference.MaxDimension())
	}
}

func TestProjectAspectPreservesArea(t *testing.T) {
	bound := Extent{Width: 4000, Height: 4000}
	pair, err := Project(arealRatio(t, 100), bound, WithAspect(4.0/3.0))
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	// Width:height follows the aspect, while width*height still equals
	// ratio² so the pixel areas relate by the area ratio.
	gotAspect := pair.Reference.Width / pair.Reference.Height
	if math.Abs(gotAspect-4.0/3.0) > 1e-9 {
		t.Errorf("aspect = %g, want %g", gotAspect, 4.0/3.0)
	}
	gotArea := pair.Reference.Width * pair.Reference.Height
	if math.Abs(gotArea-10000) > 1e-6 {
		t.Errorf("reference area = %g, want 10000", gotArea)
	}
}

func TestProjectEqualRatio(t *testing.T) {
	// Ratio 1: both shapes collapse to the identical 1x1 cell, even on a
	// non-square canvas whose aspect would otherwise stretch the
	// reference.
	pair, err := Project(arealRatio(t, 1), Extent{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}
	if pair.Shrunk.Width != 1 || pair.Shrunk.Height != 1 {
		t.Errorf("Shrunk = %gx%g, want 1x1", pair.Shrunk.Width, pair.Shrunk.Height)
	}
	if pair.Reference != pair.Shrunk {
		t.Errorf("Reference = %+v, want identical to Shrunk %+v", pair.Reference, pair.Shrunk)
	}
}

func TestProjectRejectsSubUnitRatio(t *testing.T) {
	_, err := Project(arealRatio(t, 0.5), Extent{Width: 800, Height: 600})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Project(ratio<1) error = %v, want INVALID_INPUT", err)
	}
}

func TestProjectInvalidCanvas(t *testing.T) {
	tests := []struct {
		name  string
		bound Extent
	}{
		{"zero width", Extent{Width: 0, Height: 600}},
		{"zero height", Extent{Width: 800, Height: 0}},
		{"negative", Extent{Width: -800, Height: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(arealRatio(t, 10), tt.bound)
			if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
				t.Errorf("Project() error = %v, want INVALID_CANVAS", err)
			}
		})
	}
}

func TestProjectCircles(t *testing.T) {
	bound := Extent{Width: 900, Height: 900}
	pair, err := Project(measure.Ratio{Linear: 211.6, Raw: 211.6, Kind: measure.KindLinear}, bound, WithCircles())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	if pair.Reference.Kind != KindCircle || pair.Shrunk.Kind != KindCircle {
		t.Fatalf("kinds = %v/%v, want circle/circle", pair.Reference.Kind, pair.Shrunk.Kind)
	}
	if math.Abs(pair.Reference.Radius-211.6/2) > 1e-9 {
		t.Errorf("Reference.Radius = %g, want %g", pair.Reference.Radius, 211.6/2)
	}
	if pair.Shrunk.Radius != 0.5 {
		t.Errorf("Shrunk.Radius = %g, want 0.5 (1px diameter)", pair.Shrunk.Radius)
	}

	// Both circles share the canvas center.
	if pair.Reference.X != 450 || pair.Reference.Y != 450 {
		t.Errorf("Reference center = (%g, %g), want (450, 450)", pair.Reference.X, pair.Reference.Y)
	}
	if pair.Shrunk.X != pair.Reference.X || pair.Shrunk.Y != pair.Reference.Y {
		t.Error("shrunk circle should be concentric with the reference")
	}
}

func TestProjectCirclesClamped(t *testing.T) {
	// A huge ratio on a small canvas clamps the disc to the smaller side.
	pair, err := Project(measure.Ratio{Linear: 5000, Raw: 5000, Kind: measure.KindLinear},
		Extent{Width: 400, Height: 300}, WithCircles())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	if math.Abs(2*pair.Reference.Radius-300) > 1e-9 {
		t.Errorf("reference diameter = %g, want 300", 2*pair.Reference.Radius)
	}
	if 2*pair.Shrunk.Radius != 1 {
		t.Errorf("shrunk diameter = %g, want 1 (floored)", 2*pair.Shrunk.Radius)
	}
	if pair.Factor >= 1 {
		t.Errorf("Factor = %g, want < 1 when clamped", pair.Factor)
	}
}

func TestGeometryDimensions(t *testing.T) {
	rect := Geometry{Kind: KindRect, Width: 800, Height: 600}
	if rect.MaxDimension() != 800 || rect.MinDimension() != 600 {
		t.Errorf("rect dims = %g/%g, want 800/600", rect.MaxDimension(), rect.MinDimension())
	}

	circle := Geometry{Kind: KindCircle, Radius: 50}
	if circle.MaxDimension() != 100 || circle.MinDimension() != 100 {
		t.Errorf("circle dims = %g/%g, want 100/100", circle.MaxDimension(), circle.MinDimension())
	}
}
