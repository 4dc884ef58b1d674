package perspective

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
)

// The country dataset is embedded so lookups need no file or network
// dependency. Areas are stored in square kilometers.

//go:embed countries.toml
var countriesTOML []byte

var (
	countryAreas map[string]float64
	countryNames []string
	countryOnce  sync.Once
	countryErr   error
)

func loadCountries() {
	countryOnce.Do(func() {
		if err := toml.Unmarshal(countriesTOML, &countryAreas); err != nil {
			countryErr = errors.Wrap(errors.ErrCodeInternal, err, "decode embedded country dataset")
			return
		}
		countryNames = make([]string, 0, len(countryAreas))
		for name := range countryAreas {
			countryNames = append(countryNames, name)
		}
		sort.Strings(countryNames)
	})
}

// CountryArea returns the area of the named country as an areal
// Measurement. The lookup is case-insensitive on exact names; unknown
// countries fail with UNKNOWN_COUNTRY so the caller can re-prompt.
func CountryArea(name string) (measure.Measurement, error) {
	if err := errors.ValidateCountryName(name); err != nil {
		return measure.Measurement{}, err
	}
	loadCountries()
	if countryErr != nil {
		return measure.Measurement{}, countryErr
	}

	if area, ok := countryAreas[name]; ok {
		return measure.Measurement{Value: area, Unit: measure.SquareKilometers}, nil
	}
	for candidate, area := range countryAreas {
		if strings.EqualFold(candidate, name) {
			return measure.Measurement{Value: area, Unit: measure.SquareKilometers}, nil
		}
	}
	return measure.Measurement{}, errors.New(errors.ErrCodeUnknownCountry, "no area data for country %q", name)
}

// Countries returns all known country names in sorted order.
func Countries() []string {
	loadCountries()
	out := make([]string, len(countryNames))
	copy(out, countryNames)
	return out
}

// FilterCountries returns the country names starting with the given prefix,
// case-insensitively. An empty prefix returns the full list. This backs the
// interactive country picker.
func FilterCountries(prefix string) []string {
	loadCountries()
	if prefix == "" {
		return Countries()
	}
	lower := strings.ToLower(prefix)
	var out []string
	for _, name := range countryNames {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			out = append(out, name)
		}
	}
	return out
}
