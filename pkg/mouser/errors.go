package mouser

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mouser/pkg/errors"
)

// Error is implemented by every error the client returns.
// The set of implementations is closed: [*TransportError], [*DecodeError],
// [*VendorError] and [*MessageError].
type Error interface {
	error
	Code() errors.Code
	mouserError()
}

// TransportError reports a failure to complete the HTTP exchange.
type TransportError struct {
	Op  string // e.g. "POST search/partnumber"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error { return e.Err }

// Code returns [errors.ErrCodeNetwork].
func (e *TransportError) Code() errors.Code { return errors.ErrCodeNetwork }

func (*TransportError) mouserError() {}

// DecodeError reports a response body that did not match the expected
// schema. Text holds the body verbatim except that whole-token occurrences
// of the API key are replaced with "[REDACTED]" (see [Secret.Redact]).
type DecodeError struct {
	Err  error
	Text string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

// Unwrap returns the JSON decoding error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Code returns [errors.ErrCodeInvalidResponse].
func (e *DecodeError) Code() errors.Code { return errors.ErrCodeInvalidResponse }

func (*DecodeError) mouserError() {}

// VendorError carries the error records the API embedded in a response.
// Records is never empty.
type VendorError struct {
	Records []ErrorRecord
}

func (e *VendorError) Error() string {
	msgs := make([]string, len(e.Records))
	for i, r := range e.Records {
		msgs[i] = r.String()
	}
	return "mouser api error: " + strings.Join(msgs, "; ")
}

// Code returns [errors.ErrCodeVendor].
func (e *VendorError) Code() errors.Code { return errors.ErrCodeVendor }

func (*VendorError) mouserError() {}

// MessageError is a failure described only by a message, such as a response
// with neither errors nor payload.
type MessageError struct {
	ErrCode errors.Code
	Message string
}

func (e *MessageError) Error() string { return e.Message }

// Code returns the code the error was created with.
func (e *MessageError) Code() errors.Code { return e.ErrCode }

func (*MessageError) mouserError() {}

func newMessageError(code errors.Code, format string, args ...any) *MessageError {
	return &MessageError{ErrCode: code, Message: fmt.Sprintf(format, args...)}
}

var (
	_ Error = (*TransportError)(nil)
	_ Error = (*DecodeError)(nil)
	_ Error = (*VendorError)(nil)
	_ Error = (*MessageError)(nil)
)
