package teco

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is a three-letter TECO error code, following the flat enumeration in
// the reference implementation's errors.h.
type Code string

// Error codes. Names mirror the reference implementation (errors.h); a
// handful of additional codes beyond the minimal set are carried forward
// from the same source.
const (
	ErrARG Code = "ARG" // improper arguments
	ErrCHR Code = "CHR" // invalid character for command
	ErrCPQ Code = "CPQ" // can't pop Q-register
	ErrDIV Code = "DIV" // division by zero
	ErrIEC Code = "IEC" // illegal character after E
	ErrIFC Code = "IFC" // illegal character after F
	ErrILL Code = "ILL" // illegal command
	ErrIQN Code = "IQN" // illegal Q-register name
	ErrIUC Code = "IUC" // illegal character following ^
	ErrMLA Code = "MLA" // missing left angle bracket
	ErrMLP Code = "MLP" // missing left parenthesis
	ErrMMX Code = "MMX" // maximum macro depth exceeded
	ErrMQX Code = "MQX" // maximum Q-register depth exceeded
	ErrMRP Code = "MRP" // missing right parenthesis
	ErrNAB Code = "NAB" // no argument before 1's complement operator
	ErrNAC Code = "NAC" // no argument before comma
	ErrNAP Code = "NAP" // no argument before right parenthesis
	ErrNAQ Code = "NAQ" // no argument before quote
	ErrNAS Code = "NAS" // no argument before semi-colon
	ErrNAU Code = "NAU" // no argument before U command
	ErrPDO Code = "PDO" // push-down list overflow
	ErrSNI Code = "SNI" // semi-colon not in iteration
	ErrSRH Code = "SRH" // search failure
	ErrSYS Code = "SYS" // system error
	ErrUTC Code = "UTC" // unterminated command string
	ErrUTL Code = "UTL" // unterminated loop
	ErrUTM Code = "UTM" // unterminated macro
	ErrUTQ Code = "UTQ" // unterminated quote
	ErrXAB Code = "XAB" // execution aborted
)

// catalog maps error codes to their one-line summary, following the
// {code, text} record shape of the reference implementation's errlist.
var catalog = map[Code]string{
	ErrARG: "Improper arguments",
	ErrCHR: "Invalid character for command",
	ErrCPQ: "Can't pop into Q-register",
	ErrDIV: "Division by zero",
	ErrIEC: "Illegal character after E",
	ErrIFC: "Illegal character after F",
	ErrILL: "Illegal command",
	ErrIQN: "Illegal Q-register name",
	ErrIUC: "Illegal character following ^",
	ErrMLA: "Missing left angle bracket",
	ErrMLP: "Missing left parenthesis",
	ErrMMX: "Maximum macro depth exceeded",
	ErrMQX: "Maximum Q-register depth exceeded",
	ErrMRP: "Missing right parenthesis",
	ErrNAB: "No argument before 1's complement operator",
	ErrNAC: "No argument before comma",
	ErrNAP: "No argument before right parenthesis",
	ErrNAQ: "No argument before quote",
	ErrNAS: "No argument before semi-colon",
	ErrNAU: "No argument before U command",
	ErrPDO: "Push-down list overflow",
	ErrSNI: "Semi-colon not in iteration",
	ErrSRH: "Search failure",
	ErrSYS: "System error",
	ErrUTC: "Unterminated command string",
	ErrUTL: "Unterminated loop",
	ErrUTM: "Unterminated macro",
	ErrUTQ: "Unterminated quote",
	ErrXAB: "Execution aborted",
}

// Error is the value thrown by scan/exec code and caught at the top-level
// trap boundary (see Interp.Execute). Arg carries the offending character or
// string, when the error text calls for one.
type Error struct {
	Code Code
	Arg  string
}

func (e *Error) Error() string {
	msg, ok := catalog[e.Code]
	if !ok {
		msg = "Unknown error"
	}
	if e.Arg != "" {
		return fmt.Sprintf("?%s  %s %q", e.Code, msg, e.Arg)
	}
	return fmt.Sprintf("?%s  %s", e.Code, msg)
}

// Summary returns the one-line catalog text for the error's code, without
// the leading "?CODE" prefix used by Error().
func (e *Error) Summary() string {
	return catalog[e.Code]
}

// throw constructs and returns an *Error for code, with no payload. It is
// named after the reference implementation's throw() primitive; Go callers
// propagate the result as a normal error return rather than unwinding via
// longjmp.
func throw(code Code) error {
	return &Error{Code: code}
}

// throwArg is throw with a character payload (e.g. the illegal character
// itself), mirroring printc_err/prints_err in the reference implementation.
func throwArg(code Code, arg string) error {
	return &Error{Code: code, Arg: arg}
}

// wrapSys lifts a collaborator-level error (file I/O, terminal setup) into
// an E_SYS *Error, preserving the original error as its cause via
// github.com/pkg/errors so that -debug builds can print the full chain.
func wrapSys(err error, context string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, context)
	return &Error{Code: ErrSYS, Arg: wrapped.Error()}
}

// AsError reports whether err is (or wraps) a *teco.Error, returning it if
// so.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
