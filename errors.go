package parsegen

import (
	"fmt"

	"github.com/pkg/errors"
)

// errNoMatch and errEOFReached are the two internal failure signals that
// drive backtracking. Neither is ever returned to a caller of Parser.Run;
// see driver.go, which normalizes both into a plain (false, nil, start).
var (
	errNoMatch    = errors.New("parsegen: no match")
	errEOFReached = errors.New("parsegen: reached end of input")
)

// isControlFailure reports whether err is one of the two internal
// backtracking signals every combinator is expected to catch and recover
// from (as opposed to a propagated SyntaxError or programmer error, which
// always unwind the whole match attempt).
//
// This deliberately checks identity rather than using errors.Is: a
// *SyntaxError carries its triggering errNoMatch/errEOFReached as its
// Unwrap cause purely so callers can still inspect it, and errors.Is
// would walk straight through that wrapping and misclassify a
// user-facing SyntaxError as ordinary backtracking control flow, which
// every optional/choice/repeating/negative wrapper would then silently
// swallow instead of propagating.
func isControlFailure(err error) bool {
	return err == errNoMatch || err == errEOFReached
}

// ErrorOnFail is the configuration carried by a modifier flag that converts
// an inner NoMatch into a user-facing SyntaxError.
type ErrorOnFail struct {
	// Production names the rule that was expected to succeed.
	Production string
	// Message is a user-facing, free-form diagnostic.
	Message string
	// Expected names what was expected at the failing position.
	Expected []string
}

// SyntaxError is the only user-facing error this engine raises. It is
// produced exclusively by an element token carrying an ErrorOnFail
// descriptor, and carries everything needed to report a precise,
// position-anchored diagnostic.
type SyntaxError struct {
	Position   Position
	Production string
	Expected   []string
	Message    string

	cause error
}

func (e *SyntaxError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "syntax error"
	}
	if len(e.Expected) > 0 {
		return fmt.Sprintf("%s: %s (expected %v) at %s", e.Production, msg, e.Expected, e.Position.String())
	}
	return fmt.Sprintf("%s: %s at %s", e.Production, msg, e.Position.String())
}

// Unwrap exposes the internal NoMatch/EOFReached that triggered this error,
// so callers can still errors.Is against them if they choose to.
func (e *SyntaxError) Unwrap() error { return e.cause }

func newSyntaxError(desc *ErrorOnFail, pos Position, cause error) *SyntaxError {
	return &SyntaxError{
		Position:   pos,
		Production: desc.Production,
		Expected:   desc.Expected,
		Message:    desc.Message,
		cause:      cause,
	}
}

// NameError is a non-recoverable programmer error: a Name or
// LibraryElement token referenced a production absent from its registry
// and every fallback source.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("parsegen: undefined production %q", e.Name)
}

func newNameError(name string) error {
	return errors.WithStack(&NameError{Name: name})
}

// DuplicateNameError is raised by Registry.Add when a name is already
// registered.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("parsegen: production %q already registered", e.Name)
}

func newDuplicateNameError(name string) error {
	return errors.WithStack(&DuplicateNameError{Name: name})
}

// RangeError reports a malformed character-range construction (e.g. a
// high bound lower than its low bound).
type RangeError struct {
	Low, High rune
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("parsegen: invalid range [%q, %q]", e.Low, e.High)
}

// errCallDepthExceeded and errLoopLimitExceeded are non-recoverable:
// the first signals Name/LibraryElement nesting deeper than the
// parser's call-depth limit (unbounded recursion), the second a
// repeating element that matched as many times as the parser's
// loop-iteration limit. Neither is an ordinary parse failure, and
// neither is caught by optional/choice/repeating wrappers.
var (
	errCallDepthExceeded = errors.New("parsegen: maximum call depth exceeded (left recursion or runaway grammar?)")
	errLoopLimitExceeded = errors.New("parsegen: maximum loop iteration count exceeded")
)
