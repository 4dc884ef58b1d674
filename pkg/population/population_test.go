package population

import (
	"testing"

	"github.com/contextviz/contextviz/pkg/errors"
)

func TestReportDefaults(t *testing.T) {
	figures, err := DefaultRates().Report(SeriesBirths, SeriesDeaths)
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if len(figures) != 2 {
		t.Fatalf("len(figures) = %d, want 2", len(figures))
	}

	births := figures[0]
	if births.Series != SeriesBirths {
		t.Errorf("figures[0].Series = %q, want births", births.Series)
	}
	if births.PerDay != DefaultBirthsPerDay {
		t.Errorf("births PerDay = %d, want %d", births.PerDay, DefaultBirthsPerDay)
	}
	if births.PerHour != DefaultBirthsPerDay/24 {
		t.Errorf("births PerHour = %d, want %d", births.PerHour, DefaultBirthsPerDay/24)
	}

	deaths := figures[1]
	if deaths.PerDay != DefaultDeathsPerDay {
		t.Errorf("deaths PerDay = %d, want %d", deaths.PerDay, DefaultDeathsPerDay)
	}
	if deaths.PerHour != DefaultDeathsPerDay/24 {
		t.Errorf("deaths PerHour = %d, want %d", deaths.PerHour, DefaultDeathsPerDay/24)
	}
}

func TestReportSingleSeries(t *testing.T) {
	figures, err := DefaultRates().Report(SeriesDeaths)
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if len(figures) != 1 || figures[0].Series != SeriesDeaths {
		t.Errorf("Report(deaths) = %+v, want one deaths figure", figures)
	}
}

func TestReportCustomRates(t *testing.T) {
	r := Rates{BirthsPerDay: 48, DeathsPerDay: 24}
	figures, err := r.Report(SeriesBirths, SeriesDeaths)
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if figures[0].PerHour != 2 {
		t.Errorf("births PerHour = %d, want 2", figures[0].PerHour)
	}
	if figures[1].PerHour != 1 {
		t.Errorf("deaths PerHour = %d, want 1", figures[1].PerHour)
	}
}

func TestReportEmptySelection(t *testing.T) {
	_, err := DefaultRates().Report()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Report() error = %v, want INVALID_INPUT", err)
	}
}

func TestReportUnknownSeries(t *testing.T) {
	_, err := DefaultRates().Report(Series("marriages"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Report(marriages) error = %v, want INVALID_INPUT", err)
	}
}
