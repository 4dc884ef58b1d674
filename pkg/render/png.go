package render

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/scale"
)

// RenderPNG rasterizes a level natively. The scene matches the SVG sink
// cell for cell; WithScale controls the supersampling factor.
func RenderPNG(level perspective.Level, opts ...Option) ([]byte, error) {
	r := newRenderer(level, opts...)

	ref := level.Shapes.Reference
	w := ref.MaxDimension()
	h := w
	if ref.Kind == scale.KindRect {
		w, h = ref.Width, ref.Height
	}

	dc := gg.NewContext(int(w*r.scale+0.5), int(h*r.scale+0.5))
	dc.Scale(r.scale, r.scale)

	switch ref.Kind {
	case scale.KindCircle:
		drawOrbitPNG(dc, level)
	default:
		drawGridPNG(dc, level)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s as PNG", level.Label)
	}
	return buf.Bytes(), nil
}

// drawGridPNG paints the checkerboard field, the green inset grid and the
// red marker pixel.
func drawGridPNG(dc *gg.Context, level perspective.Level) {
	ref := level.Shapes.Reference
	shrunk := level.Shapes.Shrunk

	dc.SetHexColor(colorGridLight)
	dc.DrawRectangle(0, 0, ref.Width, ref.Height)
	dc.Fill()
	drawChecker(dc, ref.Width, ref.Height, colorGridDark)

	if inset := level.Inset; inset != nil {
		dc.SetHexColor(colorGridLight)
		dc.DrawRectangle(0, 0, inset.Geometry.Width, inset.Geometry.Height)
		dc.Fill()
		drawChecker(dc, inset.Geometry.Width, inset.Geometry.Height, colorInset)
	}

	dc.SetHexColor(colorMarker)
	dc.DrawRectangle(0, 0, shrunk.Width, shrunk.Height)
	dc.Fill()
}

// drawChecker fills the even cells of a 1-pixel checkerboard over the
// given region.
func drawChecker(dc *gg.Context, w, h float64, color string) {
	dc.SetHexColor(color)
	width, height := int(w+0.5), int(h+0.5)
	for y := 0; y < height; y++ {
		for x := y % 2; x < width; x += 2 {
			dc.DrawRectangle(float64(x), float64(y), 1, 1)
		}
		dc.Fill()
	}
}

// drawOrbitPNG paints the orbit outline, the sun disc and the earth speck.
func drawOrbitPNG(dc *gg.Context, level perspective.Level) {
	orbit := level.Shapes.Reference
	sun := level.Shapes.Shrunk

	dc.SetHexColor(colorCanvas)
	dc.Clear()

	dc.SetHexColor(colorOrbit)
	dc.DrawCircle(orbit.Radius, orbit.Radius, orbit.Radius)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetHexColor(colorSunFill)
	dc.DrawCircle(orbit.Radius, orbit.Radius, sun.Radius)
	dc.FillPreserve()
	dc.SetHexColor(colorSunEdge)
	dc.Stroke()

	if inset := level.Inset; inset != nil {
		dc.SetHexColor(colorEarth)
		dc.DrawCircle(2*orbit.Radius-inset.Geometry.Radius, orbit.Radius, inset.Geometry.Radius)
		dc.Fill()
	}
}
