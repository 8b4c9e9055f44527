// Package parsegen is a backtracking parsing engine built from eight
// primitive element tokens (Literal, CILiteral, Range, SequentialGroup,
// FirstOfGroup, Name, EOF, LibraryElement) and seven orthogonal
// modifier flags (negative, optional, repeating, lookahead, report,
// expanded, errorOnFail) composed over them.
//
// Grammars are built programmatically: construct Elements with the
// NewXxx constructors, register named productions in a Registry, and
// drive matching with a Parser. Mutually recursive productions resolve
// lazily and are memoized on first use, so registration order doesn't
// matter.
//
// The engine is generic over any comparable buffer element type: byte
// strings, rune strings, or a caller's own token type all parse the
// same way, differing only in how Range predicates and CILiteral
// folding are supplied.
package parsegen
