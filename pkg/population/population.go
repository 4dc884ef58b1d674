// Package population converts global demographic rates into per-day and
// per-hour figures for display. The conversion itself is pure arithmetic;
// a Figure can additionally be projected onto a canvas as a grid
// comparison so it renders through the same sinks as the spatial levels.
package population

import "github.com/contextviz/contextviz/pkg/errors"

// Global daily figures. Rounded estimates; exposed as defaults so callers
// can substitute fresher numbers.
const (
	DefaultBirthsPerDay = 385_000
	DefaultDeathsPerDay = 165_000
)

// Series identifies one demographic series.
type Series string

const (
	SeriesBirths Series = "births"
	SeriesDeaths Series = "deaths"
)

// Rates holds the daily figures a report is derived from.
type Rates struct {
	BirthsPerDay int
	DeathsPerDay int
}

// DefaultRates returns the compiled-in global estimates.
func DefaultRates() Rates {
	return Rates{BirthsPerDay: DefaultBirthsPerDay, DeathsPerDay: DefaultDeathsPerDay}
}

// Figure is one converted series: the per-day count and its per-hour
// equivalent (integer division, matching how the figures are quoted).
type Figure struct {
	Series  Series
	PerDay  int
	PerHour int
}

// Report converts the selected series. At least one series must be
// selected; an empty selection is a validation error so the caller can
// re-prompt, mirroring the spatial input contract.
func (r Rates) Report(series ...Series) ([]Figure, error) {
	if len(series) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "select at least one series (births, deaths)")
	}

	out := make([]Figure, 0, len(series))
	for _, s := range series {
		switch s {
		case SeriesBirths:
			out = append(out, Figure{Series: s, PerDay: r.BirthsPerDay, PerHour: r.BirthsPerDay / 24})
		case SeriesDeaths:
			out = append(out, Figure{Series: s, PerDay: r.DeathsPerDay, PerHour: r.DeathsPerDay / 24})
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown series %q", s)
		}
	}
	return out, nil
}
