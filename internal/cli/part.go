package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

// partOpts holds the command-line flags for the part command.
type partOpts struct {
	mfgID  uint64 // manufacturer id; only used when the flag was given
	format string // detail, table or json
}

// partCommand creates the "part" command.
func (c *CLI) partCommand() *cobra.Command {
	opts := partOpts{format: formatDetail}

	cmd := &cobra.Command{
		Use:   "part <part_number>",
		Short: "Search for a part by part number",
		Long: `Search for a part by Mouser or manufacturer part number.

Examples:
  mouser part SN74HC595N                  # Any manufacturer
  mouser part SN74HC595N --mfg-id 8420    # Scoped to one manufacturer
  mouser part SN74HC595N --format table   # One row per match`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mfgID *uint64
			if cmd.Flags().Changed("mfg-id") {
				mfgID = &opts.mfgID
			}
			return c.runPart(cmd, args[0], mfgID, opts.format)
		},
	}

	cmd.Flags().Uint64VarP(&opts.mfgID, "mfg-id", "m", 0, "restrict the search to a manufacturer id (see 'mouser mfg')")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: detail, table or json")
	return cmd
}

func (c *CLI) runPart(cmd *cobra.Command, partNumber string, mfgID *uint64, format string) error {
	switch format {
	case formatDetail, formatTable, formatJSON:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown format %q (want detail, table or json)", format)
	}
	if err := apperrors.ValidatePartNumber(partNumber); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	search, err := c.newSearch(ctx)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := c.startSpinner(ctx, fmt.Sprintf("Searching %s...", partNumber))
	parts, err := search.Part(ctx, partNumber, mfgID)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d parts", len(parts)))

	if format == formatJSON {
		return writeJSON(c.out, parts)
	}
	if len(parts) == 0 {
		printInfo(c.errOut, "No parts matched %q", partNumber)
		return nil
	}
	if format == formatTable {
		fmt.Fprintln(c.out, renderPartTable(parts))
		return nil
	}
	for i, p := range parts {
		if i > 0 {
			fmt.Fprintln(c.out)
		}
		printPart(c.out, p)
	}
	return nil
}

// printPart writes the full field set of p as a titled key/value block.
func printPart(w io.Writer, p mouser.Part) {
	fmt.Fprintln(w, StyleTitle.Render(partTitle(p)))
	printKeyValue(w, "Mouser #", p.MouserPartNumber, StyleValue)
	printKeyValue(w, "Mfr Part #", p.ManufacturerPartNumber, StyleValue)
	printKeyValue(w, "Manufacturer", p.Manufacturer, StyleValue)
	printKeyValue(w, "Description", p.Description, StyleValue)
	printKeyValue(w, "Category", p.Category, StyleValue)
	printKeyValue(w, "Availability", p.Availability, StyleValue)
	printKeyValue(w, "In Stock", stockString(p.AvailabilityInStock), StyleNumber)
	printKeyValue(w, "Factory Stock", p.FactoryStock, StyleNumber)
	printKeyValue(w, "Lead Time", p.LeadTime, StyleValue)
	printKeyValue(w, "Lifecycle", p.LifecycleStatus, lifecycleStyle(p.LifecycleStatus))
	printKeyValue(w, "RoHS", p.ROHSStatus, StyleValue)
	printKeyValue(w, "Datasheet", p.DataSheetURL, StyleLink)
	printKeyValue(w, "Image", p.ImagePath, StyleLink)
}

// renderPartTable renders one summary row per part.
func renderPartTable(parts []mouser.Part) string {
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, []string{
			orEmpty(p.MouserPartNumber),
			orEmpty(p.ManufacturerPartNumber),
			orEmpty(p.Manufacturer),
			orEmpty(stockString(p.AvailabilityInStock)),
			orEmpty(p.LifecycleStatus),
			orEmpty(p.ROHSStatus),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Mouser #", "Mfr Part #", "Manufacturer", "In Stock", "Lifecycle", "RoHS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func partTitle(p mouser.Part) string {
	switch {
	case p.MouserPartNumber != "":
		return p.MouserPartNumber
	case p.ManufacturerPartNumber != "":
		return p.ManufacturerPartNumber
	default:
		return "(unnamed part)"
	}
}

func stockString(n *uint32) string {
	if n == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*n), 10)
}

func orEmpty(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

// lifecycleStyle highlights parts that should not be designed in.
func lifecycleStyle(status string) lipgloss.Style {
	s := strings.ToLower(status)
	if strings.Contains(s, "obsolete") || strings.Contains(s, "end of life") || strings.Contains(s, "not recommended") {
		return StyleWarning
	}
	return StyleValue
}
