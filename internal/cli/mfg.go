package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

const (
	formatText   = "text"
	formatDetail = "detail"
	formatTable  = "table"
	formatJSON   = "json"
)

// mfgCommand creates the "mfg" command listing all manufacturers.
func (c *CLI) mfgCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "mfg",
		Short: "List manufacturers as name: id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown format %q (want text or json)", format)
			}

			ctx := cmd.Context()
			search, err := c.newSearch(ctx)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			spinner := c.startSpinner(ctx, "Fetching manufacturers...")
			mfgs, err := search.ManufacturerList(ctx)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d manufacturers", len(mfgs)))

			if format == formatJSON {
				return writeJSON(c.out, mfgs)
			}
			printManufacturers(c.out, mfgs)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	return cmd
}

// printManufacturers writes one "name: id" line per manufacturer.
func printManufacturers(w io.Writer, mfgs []mouser.Manufacturer) {
	for _, m := range mfgs {
		id := emptyValue
		if m.ManufacturerID != nil {
			id = strconv.FormatUint(*m.ManufacturerID, 10)
		}
		fmt.Fprintf(w, "%s: %s\n", m.ManufacturerName, id)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
