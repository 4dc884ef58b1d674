package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/perspective"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// maxSuggestions limits how many country matches the form shows.
const maxSuggestions = 5

// =============================================================================
// SpaceFormModel - Interactive measurement entry
// =============================================================================

// form field indices, in tab order.
const (
	fieldHouse = iota
	fieldHouseUnit
	fieldCity
	fieldCityUnit
	fieldCountry
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"House area",
	"House unit",
	"City area",
	"City unit",
	"Country (optional)",
}

var (
	houseUnits = []string{"m2", "ft2", "yd2"}
	cityUnits  = []string{"km2", "mi2", "m2"}
)

// SpaceFormModel is the bubbletea model for collecting the space command's
// measurements interactively.
type SpaceFormModel struct {
	inputs    [fieldCount]string // text fields; unit fields hold the selected unit
	houseUnit int                // index into houseUnits
	cityUnit  int                // index into cityUnits
	cursor    int                // active field
	errMsg    string             // last validation failure
	Submitted bool
	Cancelled bool
}

// NewSpaceFormModel creates a form pre-filled with the current flag values.
func NewSpaceFormModel(house, city float64, country string) SpaceFormModel {
	m := SpaceFormModel{}
	m.inputs[fieldHouse] = formatMagnitude(house)
	m.inputs[fieldCity] = formatMagnitude(city)
	m.inputs[fieldCountry] = country
	return m
}

func (m SpaceFormModel) Init() tea.Cmd {
	return nil
}

func (m SpaceFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit

	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		m.errMsg = ""

	case "down", "tab":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}
		m.errMsg = ""

	case "left", "right":
		m.cycleUnit(key.String() == "right")

	case "enter":
		if m.cursor < fieldCount-1 {
			if err := m.validateField(m.cursor); err != nil {
				m.errMsg = errors.UserMessage(err)
				return m, nil
			}
			m.cursor++
			return m, nil
		}
		if err := m.validateAll(); err != nil {
			m.errMsg = errors.UserMessage(err)
			return m, nil
		}
		m.Submitted = true
		return m, tea.Quit

	case "backspace":
		if m.isTextField(m.cursor) && len(m.inputs[m.cursor]) > 0 {
			m.inputs[m.cursor] = m.inputs[m.cursor][:len(m.inputs[m.cursor])-1]
		}

	default:
		if m.isTextField(m.cursor) && len(key.String()) == 1 {
			m.inputs[m.cursor] += key.String()
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m SpaceFormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Put your space into perspective"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("tab/enter next  ←/→ change unit  esc cancel"))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		value := m.fieldDisplay(i)
		line := fmt.Sprintf("%s%-20s %s", cursor, fieldLabels[i], value)

		if i == m.cursor {
			b.WriteString(formSelectedStyle.Render(line))
		} else {
			b.WriteString(formNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor == fieldCountry {
		for _, s := range m.countrySuggestions() {
			b.WriteString(formDimStyle.Render("      " + s))
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrorStyle.Render("  " + iconError + " " + m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// House returns the entered house magnitude and unit name.
func (m SpaceFormModel) House() (float64, string) {
	v, _ := errors.ParseMagnitude(m.inputs[fieldHouse])
	return v, houseUnits[m.houseUnit]
}

// City returns the entered city magnitude and unit name.
func (m SpaceFormModel) City() (float64, string) {
	v, _ := errors.ParseMagnitude(m.inputs[fieldCity])
	return v, cityUnits[m.cityUnit]
}

// Country returns the entered country, resolved to its canonical name when
// exactly one suggestion matches.
func (m SpaceFormModel) Country() string {
	entered := strings.TrimSpace(m.inputs[fieldCountry])
	if entered == "" {
		return ""
	}
	if matches := perspective.FilterCountries(entered); len(matches) == 1 {
		return matches[0]
	}
	return entered
}

// =============================================================================
// Model internals
// =============================================================================

func (m SpaceFormModel) isTextField(i int) bool {
	return i == fieldHouse || i == fieldCity || i == fieldCountry
}

func (m *SpaceFormModel) cycleUnit(forward bool) {
	step := 1
	if !forward {
		step = -1
	}
	switch m.cursor {
	case fieldHouseUnit:
		m.houseUnit = (m.houseUnit + step + len(houseUnits)) % len(houseUnits)
	case fieldCityUnit:
		m.cityUnit = (m.cityUnit + step + len(cityUnits)) % len(cityUnits)
	}
}

func (m SpaceFormModel) fieldDisplay(i int) string {
	switch i {
	case fieldHouseUnit:
		return unitChoiceDisplay(houseUnits, m.houseUnit)
	case fieldCityUnit:
		return unitChoiceDisplay(cityUnits, m.cityUnit)
	default:
		v := m.inputs[i]
		if i == m.cursor {
			v += "_"
		}
		return v
	}
}

// unitChoiceDisplay renders a unit picker like "‹ km2 ›".
func unitChoiceDisplay(units []string, selected int) string {
	return fmt.Sprintf("‹ %s ›", units[selected])
}

func (m SpaceFormModel) validateField(i int) error {
	switch i {
	case fieldHouse, fieldCity:
		_, err := errors.ParseMagnitude(m.inputs[i])
		return err
	case fieldCountry:
		return m.validateCountry()
	}
	return nil
}

func (m SpaceFormModel) validateAll() error {
	for i := 0; i < fieldCount; i++ {
		if err := m.validateField(i); err != nil {
			return err
		}
	}
	return nil
}

func (m SpaceFormModel) validateCountry() error {
	entered := strings.TrimSpace(m.inputs[fieldCountry])
	if entered == "" {
		return nil
	}
	if err := errors.ValidateCountryName(entered); err != nil {
		return err
	}
	if len(perspective.FilterCountries(entered)) == 0 {
		if _, err := perspective.CountryArea(entered); err != nil {
			return err
		}
	}
	return nil
}

func (m SpaceFormModel) countrySuggestions() []string {
	entered := strings.TrimSpace(m.inputs[fieldCountry])
	if entered == "" {
		return nil
	}
	matches := perspective.FilterCountries(entered)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// formatMagnitude renders a pre-filled magnitude in compact form.
func formatMagnitude(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%g", v)
}

// =============================================================================
// Entry point
// =============================================================================

// promptSpaceInputs runs the interactive form and copies the results onto
// the space command options.
func promptSpaceInputs(opts *spaceOpts) error {
	model := NewSpaceFormModel(opts.house, opts.city, opts.country)

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive form: %w", err)
	}

	form, ok := final.(SpaceFormModel)
	if !ok || form.Cancelled || !form.Submitted {
		return errors.New(errors.ErrCodeInvalidInput, "cancelled")
	}

	opts.house, opts.houseUnit = form.House()
	opts.city, opts.cityUnit = form.City()
	opts.country = form.Country()
	return nil
}
