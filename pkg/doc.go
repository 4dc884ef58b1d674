// Package pkg provides the core libraries for contextviz scale visualization.
//
// # Overview
//
// Contextviz compares measurements that differ by orders of magnitude and
// renders each comparison as a pair of shapes whose pixel areas carry the
// true ratio. The pkg directory is organized into four main areas:
//
//  1. [measure], [scale] - Domain logic (units, ratios, pixel geometry)
//  2. [perspective], [population] - Composition (levels, reference datasets)
//  3. [render] - Output sinks (SVG, PNG, JSON)
//  4. [pipeline], [cache], [observability] - Orchestration and infrastructure
//
// # Architecture
//
// The typical data flow through contextviz:
//
//	Measurements (house, city, country)
//	         ↓
//	    [measure] package (validate, convert, compute ratios)
//	         ↓
//	    [scale] package (project ratios onto pixel canvases)
//	         ↓
//	    [perspective] package (compose the three levels)
//	         ↓
//	    [render] package (SVG/PNG/JSON output)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    House: measure.Measurement{Value: 100, Unit: measure.SquareMeters},
//	    City:  measure.Measurement{Value: 400, Unit: measure.SquareKilometers},
//	})
package pkg
