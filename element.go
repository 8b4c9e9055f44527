package parsegen

import "sync"

// Buffer is the indexable input sequence the engine matches against,
// generalized over any comparable element type: byte strings, rune
// strings and integer-token streams all parse identically as long as T
// supports == (for Literal) and a caller-supplied membership predicate
// (for Range).
type Buffer[T comparable] []T

// Kind identifies which of the eight primitive matchers an Element
// embodies.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindCILiteral
	KindRange
	KindSequence
	KindChoice
	KindName
	KindEOF
	KindLibraryElement
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindCILiteral:
		return "CILiteral"
	case KindRange:
		return "Range"
	case KindSequence:
		return "SequentialGroup"
	case KindChoice:
		return "FirstOfGroup"
	case KindName:
		return "Name"
	case KindEOF:
		return "EOF"
	case KindLibraryElement:
		return "LibraryElement"
	default:
		return "Unknown"
	}
}

// Flags are the seven modifier bits, each composing against every
// primitive Kind. Report defaults to true (every production is
// reportable unless explicitly silenced with NoReport).
type Flags struct {
	Negative    bool
	Optional    bool
	Repeating   bool
	Lookahead   bool
	Report      bool
	Expanded    bool
	ErrorOnFail *ErrorOnFail
}

// Element is one node of a compiled grammar tree: immutable once first
// matched against, carrying a memoized compiled matcher and, for
// Name/LibraryElement, a memoized, lazily-resolved target. The flag
// setters (Negative, Optional, ...) are meant to be called only during
// construction, before the element is ever passed to a Parser; calling
// them afterwards has no effect because the compiled matcher is already
// memoized.
type Element[T comparable] struct {
	kind  Kind
	flags Flags

	literal []T
	fold    func(T) T // non-nil only for CILiteral

	pred func(T) bool // Range membership predicate

	children []*Element[T] // SequentialGroup / FirstOfGroup

	name      string      // Name / LibraryElement
	registry  *Registry[T] // resolver: enclosing grammar for Name, library's own for LibraryElement
	isLibrary bool

	compileOnce sync.Once
	compiled    matcherFunc[T]
	compileErr  error

	resolveOnce sync.Once
	target      *Element[T]
	reportChild bool
	expandChild bool
	resolveErr  error
}

// NewLiteral builds a Literal element token matching value exactly.
func NewLiteral[T comparable](value []T) *Element[T] {
	return &Element[T]{kind: KindLiteral, flags: Flags{Report: true}, literal: append([]T(nil), value...)}
}

// NewCILiteral builds a CILiteral element token, comparing under fold
// (e.g. foldRune for Buffer[rune], foldByte for Buffer[byte]).
func NewCILiteral[T comparable](value []T, fold func(T) T) *Element[T] {
	folded := make([]T, len(value))
	for i, v := range value {
		folded[i] = fold(v)
	}
	return &Element[T]{kind: KindCILiteral, flags: Flags{Report: true}, literal: folded, fold: fold}
}

// NewRange builds a Range element token matching a single element
// satisfying pred.
func NewRange[T comparable](pred func(T) bool) *Element[T] {
	return &Element[T]{kind: KindRange, flags: Flags{Report: true}, pred: pred}
}

// NewSequence builds a SequentialGroup running children in order against
// the same cursor.
func NewSequence[T comparable](children ...*Element[T]) *Element[T] {
	return &Element[T]{kind: KindSequence, flags: Flags{Report: true}, children: children}
}

// NewChoice builds a FirstOfGroup (ordered choice) trying children in
// order and returning the first success.
func NewChoice[T comparable](children ...*Element[T]) *Element[T] {
	return &Element[T]{kind: KindChoice, flags: Flags{Report: true}, children: children}
}

// NewEOF builds an EOF element token, matching only at end of input.
func NewEOF[T comparable]() *Element[T] {
	return &Element[T]{kind: KindEOF, flags: Flags{Report: true}}
}

// NewName builds a Name element token: a reference to another
// production resolved lazily, on first match, through registry.
func NewName[T comparable](name string, registry *Registry[T]) *Element[T] {
	return &Element[T]{kind: KindName, flags: Flags{Report: true}, name: name, registry: registry}
}

// NewLibraryElement builds a LibraryElement token: like Name, but
// resolved through a separate, pre-built library registry, and always
// reported as if the target were expanded (children inlined under the
// referrer, never wrapped in a LibraryElement-tagged node).
func NewLibraryElement[T comparable](name string, library *Registry[T]) *Element[T] {
	return &Element[T]{kind: KindLibraryElement, flags: Flags{Report: true}, name: name, registry: library, isLibrary: true}
}

// Negative marks the element with the negative flag: match succeeds,
// consuming exactly one element, exactly where the unmodified element
// would fail.
func (e *Element[T]) Negative() *Element[T] { e.flags.Negative = true; return e }

// Optional marks the element optional: it never raises NoMatch.
func (e *Element[T]) Optional() *Element[T] { e.flags.Optional = true; return e }

// Repeating marks the element as matching one-or-more times greedily
// (zero-or-more if combined with Optional).
func (e *Element[T]) Repeating() *Element[T] { e.flags.Repeating = true; return e }

// Lookahead marks the element so a success restores the cursor (the
// match is observed but not consumed); failure still propagates.
func (e *Element[T]) Lookahead() *Element[T] { e.flags.Lookahead = true; return e }

// NoReport suppresses emission of a Match node for this element,
// unconditionally.
func (e *Element[T]) NoReport() *Element[T] { e.flags.Report = false; return e }

// Expanded marks a top-level production as expanded: referrers inline
// its children instead of wrapping them under its tag. Meaningful only
// on a production registered in a Registry and referenced via Name or
// LibraryElement; it has no effect on how the production matches
// itself, only on how referrers report it.
func (e *Element[T]) Expanded() *Element[T] { e.flags.Expanded = true; return e }

// WithErrorOnFail attaches an error-on-fail descriptor: NoMatch from
// this element converts to a SyntaxError. Mutually exclusive with
// Optional (an optional match can't "require" success); compiling an
// element with both set fails.
func (e *Element[T]) WithErrorOnFail(desc *ErrorOnFail) *Element[T] {
	e.flags.ErrorOnFail = desc
	return e
}

// Kind reports which primitive matcher this element embodies.
func (e *Element[T]) Kind() Kind { return e.kind }

// Flags returns a copy of the element's modifier flags.
func (e *Element[T]) Flags() Flags { return e.flags }
