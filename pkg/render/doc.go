// Package render turns composed perspective levels into exportable
// artifacts.
//
// Three sinks are provided:
//   - SVG: vector output, the primary format
//   - PNG: native raster output
//   - JSON: machine-readable geometry for external tooling
//
// Rectangular levels are drawn as the classic checkerboard grid: the
// reference shape becomes a field of alternating pixels, a red marker
// shows the single pixel the shrunk item occupies, and a green sub-grid
// marks the country inset. Circle levels are drawn as an orbit diagram:
// the orbit as an outline, the sun filled at its center, and the earth as
// a speck on the orbit path.
package render
