package parsegen

import (
	"github.com/rs/zerolog"
)

const (
	defaultMaxCallDepth      = 500
	defaultMaxLoopIterations = 500
)

// Config bundles the per-parser limits and toggles the teacher threads
// through every match call as a single value, rather than one option at
// a time: MaxCallDepth and MaxLoopIterations guard against pathological
// grammars, DisablePositionTracking skips line/column bookkeeping on the
// hot path when a caller only needs the byte offset. It has no on-disk
// format, since there's nothing to load it from; it's just a struct literal.
type Config struct {
	MaxCallDepth            int
	MaxLoopIterations       int
	DisablePositionTracking bool
}

// Parser drives a single grammar's root element against input buffers,
// owning the defaults (call-depth guard, loop-iteration guard, newline
// predicate, logger) every Run/RunRange invocation shares.
type Parser[T comparable] struct {
	root                    *Element[T]
	maxDepth                int
	loopLimit               int
	newlineFn               newlinePredicateFn[T]
	disablePositionTracking bool
	log                     zerolog.Logger
}

// ParserOption configures a Parser at construction time.
type ParserOption[T comparable] func(*Parser[T])

// WithMaxCallDepth overrides the default recursion-depth guard (the
// number of nested Name/LibraryElement resolutions a single match
// attempt may chain through before errCallDepthExceeded aborts it). A
// value <= 0 disables the guard entirely.
func WithMaxCallDepth[T comparable](n int) ParserOption[T] {
	return func(p *Parser[T]) { p.maxDepth = n }
}

// WithMaxLoopIterations overrides the default repeating-element
// iteration guard. A value <= 0 disables the guard entirely.
func WithMaxLoopIterations[T comparable](n int) ParserOption[T] {
	return func(p *Parser[T]) { p.loopLimit = n }
}

// WithNewlinePredicate supplies the function used to turn a SyntaxError
// offset into a line/column Position. Without one, positions carry only
// a raw Offset.
func WithNewlinePredicate[T comparable](fn func(buf Buffer[T], i int) (bool, int)) ParserOption[T] {
	return func(p *Parser[T]) { p.newlineFn = newlinePredicateFn[T](fn) }
}

// WithLogger sets the zerolog.Logger stored on the Parser. Debug-level
// tracing of name resolution and warn-level reporting of undefined
// productions do not go to this logger: they are written to the logger
// of the Registry the Name or LibraryElement resolves through.
func WithLogger[T comparable](log zerolog.Logger) ParserOption[T] {
	return func(p *Parser[T]) { p.log = log }
}

// WithDisablePositionTracking skips building a posCalc for each RunRange
// call, even when a newline predicate is configured. SyntaxError.Position
// then carries only a raw Offset (Line and Column stay zero); use this
// when a caller never inspects them and wants to skip the bookkeeping.
func WithDisablePositionTracking[T comparable](disable bool) ParserOption[T] {
	return func(p *Parser[T]) { p.disablePositionTracking = disable }
}

// WithConfig applies every field of cfg at once, equivalent to calling
// WithMaxCallDepth, WithMaxLoopIterations and WithDisablePositionTracking
// individually.
func WithConfig[T comparable](cfg Config) ParserOption[T] {
	return func(p *Parser[T]) {
		p.maxDepth = cfg.MaxCallDepth
		p.loopLimit = cfg.MaxLoopIterations
		p.disablePositionTracking = cfg.DisablePositionTracking
	}
}

// NewParser builds a Parser matching against root.
func NewParser[T comparable](root *Element[T], opts ...ParserOption[T]) *Parser[T] {
	p := &Parser[T]{
		root:      root,
		maxDepth:  defaultMaxCallDepth,
		loopLimit: defaultMaxLoopIterations,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewByteParser builds a Parser over Buffer[byte], wiring up ASCII-only
// newline detection unless overridden by a later WithNewlinePredicate
// option.
func NewByteParser(root *Element[byte], opts ...ParserOption[byte]) *Parser[byte] {
	all := append([]ParserOption[byte]{WithNewlinePredicate[byte](byteNewlines)}, opts...)
	return NewParser(root, all...)
}

// NewRuneParser builds a Parser over Buffer[rune], wiring up newline
// detection for "\n", "\r" and "\r\n" unless overridden by a later WithNewlinePredicate
// option.
func NewRuneParser(root *Element[rune], opts ...ParserOption[rune]) *Parser[rune] {
	all := append([]ParserOption[rune]{WithNewlinePredicate[rune](runeNewlines)}, opts...)
	return NewParser(root, all...)
}

// Run attempts to match the parser's root element against the whole of
// buf, starting at offset 0. It is shorthand for
// RunRange(buf, 0, len(buf)).
func (p *Parser[T]) Run(buf Buffer[T]) (matched bool, children []Match, end int, err error) {
	return p.RunRange(buf, 0, len(buf))
}

// RunRange attempts to match the parser's root element against buf,
// honoring start/stop normalization: a negative start or stop counts
// back from len(buf); stop beyond len(buf) clamps to len(buf); stop
// below the normalized start clamps to start.
//
// matched reports whether the root element succeeded at start. When it
// did, children is whatever it reported (possibly empty, since
// report=false productions report nothing) and end is the cursor
// position immediately after the match; the caller decides whether
// end < len(buf) constitutes an incomplete parse. When it did not, an
// ordinary NoMatch or EOFReached, matched is false, children is nil,
// end equals the normalized start, and err is nil: a plain parse
// failure is not an error, it's backtracking's normal outcome at the
// top level. err is non-nil only for a propagated *SyntaxError (from an
// errorOnFail element) or a programmer error (*NameError,
// call-depth/loop-iteration exhaustion).
func (p *Parser[T]) RunRange(buf Buffer[T], start, stop int) (matched bool, children []Match, end int, err error) {
	n := len(buf)
	if start < 0 {
		start = n + start
	}
	if start < 0 {
		start = 0
	}
	if stop < 0 {
		stop = n + stop
	}
	if stop < 0 {
		stop = 0
	}
	if stop > n {
		stop = n
	}
	if stop < start {
		stop = start
	}

	rc := &runCtx[T]{
		buf:       buf,
		stop:      stop,
		maxDepth:  p.maxDepth,
		loopLimit: p.loopLimit,
	}
	if p.newlineFn != nil && !p.disablePositionTracking {
		rc.posCalc = newPosCalc(buf, p.newlineFn)
	}

	matcher, err := compileElement(p.root)
	if err != nil {
		return false, nil, start, err
	}

	end, children, err = matcher(rc, start)
	if err != nil {
		if isControlFailure(err) {
			return false, nil, start, nil
		}
		return false, nil, start, err
	}
	return true, children, end, nil
}
