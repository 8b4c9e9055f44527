package parsegen

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry holds a grammar's named productions and resolves Name
// references against them lazily, on first match. It also serves as the
// target of a LibraryElement reference when passed as a shared,
// prebuilt library registry rather than the grammar's own.
//
// A Registry is safe for concurrent Add/Get calls but is meant to be
// fully populated before the first Parser.Run against any element that
// references it; Add after a name has already been resolved does not
// retroactively fix up elements that cached a resolution failure.
type Registry[T comparable] struct {
	mu      sync.RWMutex
	entries map[string]*Element[T]
	sources []*Registry[T]
	log     zerolog.Logger
}

// NewRegistry builds an empty registry. Pass zerolog.Nop() (the default
// zero value) to disable logging entirely.
func NewRegistry[T comparable](log zerolog.Logger) *Registry[T] {
	return &Registry[T]{entries: make(map[string]*Element[T]), log: log}
}

func (r *Registry[T]) logger() *zerolog.Logger { return &r.log }

// Add registers element under name. Returns a *DuplicateNameError if
// the name is already taken.
func (r *Registry[T]) Add(name string, element *Element[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		r.log.Warn().Str("name", name).Msg("duplicate production name")
		return newDuplicateNameError(name)
	}
	r.entries[name] = element
	r.log.Debug().Str("name", name).Str("kind", element.kind.String()).Msg("registered production")
	return nil
}

// AddSource appends another registry as a fallback lookup source,
// consulted in the order added whenever Get misses on this registry's
// own entries. This lets a grammar compose several partial registries
// (e.g. a shared set of lexical productions plus a per-file grammar)
// without copying entries between them.
func (r *Registry[T]) AddSource(source *Registry[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
}

// Get resolves name against this registry's own entries, then each
// fallback source in order.
func (r *Registry[T]) Get(name string) (*Element[T], bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	sources := r.sources
	r.mu.RUnlock()
	if ok {
		return e, true
	}
	for _, src := range sources {
		if e, ok := src.Get(name); ok {
			return e, true
		}
	}
	return nil, false
}

// Build returns a Parser whose root is a fresh Name reference to name,
// so the top-level match is tagged and shaped exactly as any other
// referrer would see it (see Element's Name/LibraryElement match-tree
// assembly). Build resolves name and compiles its production, so an
// undefined name (*NameError) or a misconfigured production (such as
// optional combined with errorOnFail) is reported here. Name references
// inside the production stay lazy, resolved at the Parser's first Run;
// call Precompile first if a grammar should be fully validated before
// it ever sees input.
func (r *Registry[T]) Build(name string, opts ...ParserOption[T]) (*Parser[T], error) {
	root := NewName[T](name, r)
	if _, err := compileElement(root); err != nil {
		return nil, err
	}
	root.resolveOnce.Do(func() { resolveName(root) })
	if root.resolveErr != nil {
		return nil, root.resolveErr
	}
	if _, err := compileElement(root.target); err != nil {
		return nil, err
	}
	return NewParser(root, opts...), nil
}

// Precompile compiles every production currently registered directly on
// this registry (not its fallback sources) and eagerly resolves every
// Name and LibraryElement reference reachable from them, surfacing a
// *NameError up front instead of at first match against any of them.
// Implementations are encouraged to call this once after a grammar is
// fully assembled so concurrent parses against it never race on the
// one-time memoization of a compiled matcher or resolved target. Safe
// against mutually recursive productions: each element is visited for
// resolution at most once.
func (r *Registry[T]) Precompile() error {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	elems := make([]*Element[T], 0, len(r.entries))
	for name, e := range r.entries {
		names = append(names, name)
		elems = append(elems, e)
	}
	r.mu.RUnlock()

	visited := make(map[*Element[T]]bool)
	for i, e := range elems {
		if _, err := compileElement(e); err != nil {
			return err
		}
		if err := resolveTree(e, visited); err != nil {
			return err
		}
		r.log.Debug().Str("name", names[i]).Msg("compiled production")
	}
	return nil
}

// resolveTree walks e and its descendants, forcing Name/LibraryElement
// resolution so a missing production surfaces during Precompile rather
// than at first match.
func resolveTree[T comparable](e *Element[T], visited map[*Element[T]]bool) error {
	if visited[e] {
		return nil
	}
	visited[e] = true

	switch e.kind {
	case KindName, KindLibraryElement:
		e.resolveOnce.Do(func() { resolveName(e) })
		if e.resolveErr != nil {
			return e.resolveErr
		}
		return resolveTree(e.target, visited)
	case KindSequence, KindChoice:
		for _, c := range e.children {
			if err := resolveTree(c, visited); err != nil {
				return err
			}
		}
	}
	return nil
}
