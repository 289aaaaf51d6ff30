package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

// maxRawLines bounds how much of an undecodable body is echoed back.
const maxRawLines = 40

// ReportError writes a human-readable account of err to w. Vendor error
// records are listed one per line and undecodable bodies are echoed.
func ReportError(w io.Writer, err error) {
	var mErr mouser.Error
	if !errors.As(err, &mErr) {
		printError(w, "%s", apperrors.UserMessage(err))
		return
	}

	switch e := mErr.(type) {
	case *mouser.VendorError:
		printError(w, "Mouser API returned %d error(s)", len(e.Records))
		for _, rec := range e.Records {
			line := rec.String()
			if rec.PropertyName != "" {
				line += fmt.Sprintf(" (property %s)", rec.PropertyName)
			}
			printDetail(w, "%s", line)
		}
	case *mouser.DecodeError:
		printError(w, "%v", e)
		printDetail(w, "raw response:")
		for _, line := range truncateLines(e.Text, maxRawLines) {
			printDetail(w, "  %s", line)
		}
	case *mouser.TransportError:
		printError(w, "request failed: %v", e)
	case *mouser.MessageError:
		printError(w, "%s", e.Message)
	}
}

func truncateLines(text string, limit int) []string {
	if text == "" {
		return []string{"(empty body)"}
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > limit {
		omitted := len(lines) - limit
		lines = append(lines[:limit], fmt.Sprintf("... %d more lines", omitted))
	}
	return lines
}
