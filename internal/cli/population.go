package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/pipeline"
	"github.com/contextviz/contextviz/pkg/population"
	"github.com/contextviz/contextviz/pkg/render"
)

// barWidth is the width of the longest population bar in characters.
const barWidth = 40

// newPopulationCmd creates the population command, which reports daily and
// hourly world birth and death figures.
func newPopulationCmd() *cobra.Command {
	var (
		seriesStr  string
		formatsStr string
		output     string
		scale      float64
		rates      = population.DefaultRates()
	)

	cmd := &cobra.Command{
		Use:   "population",
		Short: "Report daily and hourly world birth and death figures",
		Long: `Report how many people are born and how many die worldwide,
per day and per hour, to put the numbers into perspective.

By default the figures print as a bar chart. With --format each series
is drawn as a one-cell-per-person grid artifact instead, with the
per-hour figure as an inset.

The default rates reflect recent worldwide estimates and can be
overridden with flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := parseSeries(seriesStr)
			if err != nil {
				return err
			}
			figures, err := rates.Report(series...)
			if err != nil {
				return err
			}
			if formatsStr == "" {
				printFigures(figures)
				return nil
			}
			return writeFigureGrids(cmd.Context(), figures, parseFormats(formatsStr), output, scale)
		},
	}

	cmd.Flags().IntVar(&rates.BirthsPerDay, "births-per-day", rates.BirthsPerDay, "daily worldwide births")
	cmd.Flags().IntVar(&rates.DeathsPerDay, "deaths-per-day", rates.DeathsPerDay, "daily worldwide deaths")
	cmd.Flags().StringVar(&seriesStr, "series", "", "series to report: births, deaths (comma-separated, default both)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "render grid artifacts instead: svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path for grid artifacts")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG supersampling factor")

	return cmd
}

// writeFigureGrids renders each figure as a grid artifact and writes the
// files, one per figure and format.
func writeFigureGrids(ctx context.Context, figures []population.Figure, formats []string, output string, scale float64) error {
	if err := render.ValidateFormats(formats); err != nil {
		return err
	}

	runID := uuid.NewString()
	artifacts := make(map[string][]byte, len(figures)*len(formats))
	labels := make([]string, 0, len(figures))
	for _, f := range figures {
		lvl, err := f.Level(population.DefaultGridBound)
		if err != nil {
			return err
		}
		labels = append(labels, lvl.Label)
		for _, format := range formats {
			data, err := render.Render(lvl, format, render.WithRunID(runID), render.WithScale(scale))
			if err != nil {
				return err
			}
			artifacts[lvl.Label+"."+format] = data
		}
	}

	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: artifacts,
		labels:    labels,
		formats:   formats,
		output:    output,
		cached:    false,
	})
}

// parseSeries parses the --series flag. Empty selects both series.
func parseSeries(s string) ([]population.Series, error) {
	if s == "" {
		return []population.Series{population.SeriesBirths, population.SeriesDeaths}, nil
	}
	var series []population.Series
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "births":
			series = append(series, population.SeriesBirths)
		case "deaths":
			series = append(series, population.SeriesDeaths)
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"unknown series %q (must be 'births' or 'deaths')", part)
		}
	}
	return series, nil
}

// printFigures renders the figures as labeled bars scaled to the largest
// daily count.
func printFigures(figures []population.Figure) {
	fmt.Println(StyleTitle.Render("World population flow"))
	fmt.Println()

	maxPerDay := 0
	for _, f := range figures {
		if f.PerDay > maxPerDay {
			maxPerDay = f.PerDay
		}
	}

	for _, f := range figures {
		style := styleBarBirths
		if f.Series == population.SeriesDeaths {
			style = styleBarDeaths
		}
		fmt.Printf("  %-8s %s %s\n",
			string(f.Series),
			style.Render(bar(f.PerDay, maxPerDay)),
			StyleNumber.Render(formatCount(float64(f.PerDay))+"/day"))
		printDetail("%s every hour", formatCount(float64(f.PerHour)))
	}

	fmt.Println()
	printDetail("rates are worldwide estimates")
}

// bar returns a bar of width proportional to value/limit.
func bar(value, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := value * barWidth / limit
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// formatCount formats a count with thousands separators, e.g. 385000 → "385,000".
func formatCount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
