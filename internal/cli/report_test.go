package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "vendor records one per line",
			err: &mouser.VendorError{Records: []mouser.ErrorRecord{
				{Code: "InvalidCharacters", Message: "bad part number", PropertyName: "mouserPartNumber"},
				{Code: "Required", Message: "missing field"},
			}},
			want: []string{
				"returned 2 error(s)",
				"InvalidCharacters: bad part number (property mouserPartNumber)",
				"Required: missing field",
			},
		},
		{
			name: "decode error echoes raw body",
			err:  &mouser.DecodeError{Err: errors.New("invalid character 'o'"), Text: "not json\nsecond line"},
			want: []string{"decode response", "raw response:", "not json", "second line"},
		},
		{
			name: "transport error",
			err:  &mouser.TransportError{Op: "GET search/manufacturerlist", Err: errors.New("connection refused")},
			want: []string{"request failed", "connection refused"},
		},
		{
			name: "message error",
			err:  &mouser.MessageError{ErrCode: apperrors.ErrCodeEmptyResponse, Message: "response carried no search results"},
			want: []string{"response carried no search results"},
		},
		{
			name: "wrapped variant",
			err:  fmt.Errorf("part MX123: %w", &mouser.VendorError{Records: []mouser.ErrorRecord{{Code: "X", Message: "y"}}}),
			want: []string{"returned 1 error(s)", "X: y"},
		},
		{
			name: "config error",
			err:  apperrors.New(apperrors.ErrCodeUnauthorized, "MOUSER_API_KEY not set"),
			want: []string{"MOUSER_API_KEY not set"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ReportError(&buf, tt.err)
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestReportErrorEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, &mouser.DecodeError{Err: errors.New("unexpected end of JSON input")})
	if !strings.Contains(buf.String(), "(empty body)") {
		t.Errorf("empty body not marked:\n%s", buf.String())
	}
}

func TestTruncateLines(t *testing.T) {
	text := strings.Repeat("line\n", 50)
	lines := truncateLines(text, 10)
	if len(lines) != 11 {
		t.Fatalf("len(lines) = %d, want 11", len(lines))
	}
	if lines[10] != "... 40 more lines" {
		t.Errorf("last line = %q", lines[10])
	}

	if got := truncateLines("one\ntwo\n", 10); len(got) != 2 {
		t.Errorf("truncateLines(short) = %q", got)
	}
}
