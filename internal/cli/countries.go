package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/contextviz/contextviz/pkg/perspective"
)

// newCountriesCmd creates the countries command for listing the embedded
// country surface areas.
func newCountriesCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the built-in country surface areas",
		Long: `List the countries available for the world-level inset along with
their surface areas in km². Use --prefix to filter by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := perspective.FilterCountries(prefix)
			if len(names) == 0 {
				printInfo("No countries match %q", prefix)
				return nil
			}
			return printCountries(names)
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "filter countries by name prefix")

	return cmd
}

// printCountries renders the country list as a bordered table.
func printCountries(names []string) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		area, err := perspective.CountryArea(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{name, formatCount(area.Value) + " km²"})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Country", "Surface area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printDetail("%d countries", len(names))
	return nil
}
