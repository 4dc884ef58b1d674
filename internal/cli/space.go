package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/pipeline"
	"github.com/contextviz/contextviz/pkg/scale"
)

// spaceOpts holds the command-line flags for the space command.
type spaceOpts struct {
	house       float64  // house area magnitude
	houseUnit   string   // unit for the house area
	city        float64  // city area magnitude
	cityUnit    string   // unit for the city area
	country     string   // optional country for the world-level inset
	worldArea   float64  // world surface area override in km²
	bounds      []string // per-level canvas bounds as "WxH"
	output      string   // output file (single format) or base path
	formats     []string
	scale       float64 // PNG supersampling factor
	noCache     bool
	refresh     bool
	interactive bool
}

// newSpaceCmd creates the space command, which composes the three
// perspective levels and renders them to the requested formats.
//
// Default settings:
//   - house: 100 m², city: 400 km²
//   - format: svg
//   - scale: 2.0 (PNG supersampling)
func newSpaceCmd() *cobra.Command {
	var formatsStr string
	opts := spaceOpts{
		house:     100,
		houseUnit: "m2",
		city:      400,
		cityUnit:  "km2",
		scale:     pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "space",
		Short: "Render the perspective levels for your house, city, and the Earth",
		Long: `Render the three perspective levels as scale-true images.

Level 1 compares your house against your city. Level 2 compares your city
against the Earth's surface, with an optional country inset. Level 3 shows
the Earth's orbit around the Sun with the Sun and Earth drawn to scale.

Each comparison is drawn so that the pixel areas of the two shapes carry
the true ratio between the measurements. Rendered artifacts are cached
locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runSpace(cmd.Context(), &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.house, "house", opts.house, "house area magnitude")
	cmd.Flags().StringVar(&opts.houseUnit, "house-unit", opts.houseUnit, "house area unit: m2, ft2, yd2")
	cmd.Flags().Float64Var(&opts.city, "city", opts.city, "city area magnitude")
	cmd.Flags().StringVar(&opts.cityUnit, "city-unit", opts.cityUnit, "city area unit: km2, mi2, m2")
	cmd.Flags().StringVar(&opts.country, "country", "", "country for the world-level inset")
	cmd.Flags().Float64Var(&opts.worldArea, "world-area", 0, "world surface area override in km²")
	cmd.Flags().StringSliceVar(&opts.bounds, "bounds", nil, "per-level canvas bounds as WxH (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached artifacts and re-render")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "collect measurements through an interactive form")

	return cmd
}

// runSpace executes the compose → render pipeline and writes the artifacts.
func runSpace(ctx context.Context, opts *spaceOpts) error {
	logger := loggerFromContext(ctx)

	if opts.interactive {
		if err := promptSpaceInputs(opts); err != nil {
			return err
		}
	}

	popts, err := buildPipelineOptions(opts)
	if err != nil {
		return err
	}
	popts.Logger = logger

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Composing perspective levels...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("space: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Composed %d levels", len(result.Levels)))

	labels := make([]string, len(result.Levels))
	for i, level := range result.Levels {
		labels[i] = level.Label
		logger.Debugf("Level %d: %s (1 in %.2f)", i+1, level.Label, level.Ratio.Linear)
	}

	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: result.Artifacts,
		labels:    labels,
		formats:   popts.Formats,
		output:    opts.output,
		cached:    result.CacheInfo.AllHits(),
	})
}

// buildPipelineOptions converts flag values into validated pipeline options.
func buildPipelineOptions(opts *spaceOpts) (pipeline.Options, error) {
	houseUnit, err := measure.ParseUnit(opts.houseUnit)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("house unit: %w", err)
	}
	cityUnit, err := measure.ParseUnit(opts.cityUnit)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("city unit: %w", err)
	}

	house, err := measure.New(opts.house, houseUnit)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("house: %w", err)
	}
	city, err := measure.New(opts.city, cityUnit)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("city: %w", err)
	}

	bounds, err := parseBounds(opts.bounds)
	if err != nil {
		return pipeline.Options{}, err
	}

	popts := pipeline.Options{
		House:   house,
		City:    city,
		Country: opts.country,
		Bounds:  bounds,
		Formats: opts.formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
	}
	if opts.worldArea > 0 {
		world, err := measure.New(opts.worldArea, measure.SquareKilometers)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("world area: %w", err)
		}
		popts.World = world
	}
	return popts, nil
}

// parseBounds converts "WxH" strings into canvas extents.
func parseBounds(specs []string) ([]scale.Extent, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	if len(specs) > perspective.LevelCount {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"at most %d bounds may be given, got %d", perspective.LevelCount, len(specs))
	}
	bounds := make([]scale.Extent, 0, len(specs))
	for _, s := range specs {
		ext, err := parseExtent(s)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, ext)
	}
	return bounds, nil
}

// parseExtent parses a single "WxH" canvas specification like "800x600".
func parseExtent(s string) (scale.Extent, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return scale.Extent{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid bounds %q (expected WxH, e.g. 800x600)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return scale.Extent{}, errors.New(errors.ErrCodeInvalidInput, "invalid bounds width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return scale.Extent{}, errors.New(errors.ErrCodeInvalidInput, "invalid bounds height %q", parts[1])
	}
	ext := scale.Extent{Width: w, Height: h}
	if err := ext.Validate(); err != nil {
		return scale.Extent{}, err
	}
	return ext, nil
}
