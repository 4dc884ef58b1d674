package render

import (
	"bytes"
	"fmt"

	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/scale"
)

// RenderSVG renders a level as an SVG document. Rect levels become a
// checkerboard grid with marker and inset; circle levels become the orbit
// diagram. RenderSVG never fails: a composed level always carries valid
// geometry.
func RenderSVG(level perspective.Level, opts ...Option) []byte {
	r := newRenderer(level, opts...)

	var buf bytes.Buffer
	w := level.Shapes.Reference.MaxDimension()
	h := w
	if level.Shapes.Reference.Kind == scale.KindRect {
		w = level.Shapes.Reference.Width
		h = level.Shapes.Reference.Height
	}

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if r.runID != "" {
		fmt.Fprintf(&buf, "<!-- %s run %s -->\n", r.title, r.runID)
	}
	fmt.Fprintf(&buf, `<title>%s - 1 in %s</title>`+"\n", r.title, formatCount(level.Ratio.Raw))

	switch level.Shapes.Reference.Kind {
	case scale.KindCircle:
		renderOrbitSVG(&buf, level)
	default:
		renderGridSVG(&buf, level)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGridSVG draws the checkerboard reference grid, the inset sub-grid
// and the 1-pixel marker. Checkerboards are emitted as patterns, not
// per-cell rects; the reference can span millions of cells.
func renderGridSVG(buf *bytes.Buffer, level perspective.Level) {
	ref := level.Shapes.Reference
	shrunk := level.Shapes.Shrunk

	writeCheckerPattern(buf, "grid", colorGridDark, colorGridLight)
	fmt.Fprintf(buf, `<rect x="0" y="0" width="%.2f" height="%.2f" fill="url(#grid)"/>`+"\n", ref.Width, ref.Height)

	if inset := level.Inset; inset != nil {
		writeCheckerPattern(buf, "inset", colorInset, colorGridLight)
		fmt.Fprintf(buf, `<rect x="0" y="0" width="%.2f" height="%.2f" fill="url(#inset)">`+"\n", inset.Geometry.Width, inset.Geometry.Height)
		fmt.Fprintf(buf, `<title>%s - 1 in %s</title>`+"\n", inset.Label, formatCount(inset.Ratio.Raw))
		buf.WriteString("</rect>\n")
	}

	fmt.Fprintf(buf, `<rect x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
		shrunk.Width, shrunk.Height, colorMarker, colorMarker)
}

// renderOrbitSVG draws the orbit outline, the sun at its center and the
// earth inset on the orbit path.
func renderOrbitSVG(buf *bytes.Buffer, level perspective.Level) {
	orbit := level.Shapes.Reference
	sun := level.Shapes.Shrunk

	fmt.Fprintf(buf, `<rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		2*orbit.Radius, 2*orbit.Radius, colorCanvas)
	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"/>`+"\n",
		orbit.Radius, orbit.Radius, orbit.Radius, colorOrbit)
	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s"/>`+"\n",
		orbit.Radius, orbit.Radius, sun.Radius, colorSunFill, colorSunEdge)

	if inset := level.Inset; inset != nil {
		// Earth sits on the rightmost point of the orbit path.
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s">`+"\n",
			2*orbit.Radius-inset.Geometry.Radius, orbit.Radius, inset.Geometry.Radius, colorEarth)
		fmt.Fprintf(buf, `<title>%s</title>`+"\n", inset.Label)
		buf.WriteString("</circle>\n")
	}
}

// writeCheckerPattern emits a 2x2 checkerboard pattern definition.
func writeCheckerPattern(buf *bytes.Buffer, id, dark, light string) {
	fmt.Fprintf(buf, `<pattern id="%s" width="2" height="2" patternUnits="userSpaceOnUse">`+"\n", id)
	fmt.Fprintf(buf, `<rect x="0" y="0" width="2" height="2" fill="%s"/>`+"\n", light)
	fmt.Fprintf(buf, `<rect x="0" y="0" width="1" height="1" fill="%s"/>`+"\n", dark)
	fmt.Fprintf(buf, `<rect x="1" y="1" width="1" height="1" fill="%s"/>`+"\n", dark)
	buf.WriteString("</pattern>\n")
}

// formatCount renders a ratio denominator with thousands separators,
// e.g. "4,000,000".
func formatCount(v float64) string {
	n := int64(v + 0.5)
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
