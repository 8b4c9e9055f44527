package parsegen

import "github.com/pkg/errors"

// matcherFunc is the single, branch-light contract every compiled
// element reduces to: given the run's shared state and a cursor
// position, either succeed with an advanced position and a (possibly
// shared-empty) children list, or fail with errNoMatch / errEOFReached
// / a propagated SyntaxError / programmer error.
type matcherFunc[T comparable] func(rc *runCtx[T], current int) (next int, children []Match, err error)

// runCtx threads the state shared across one Parser.Run invocation: the
// buffer, its upper bound, the recursion-depth and loop-iteration
// guards, and the lazily-built position calculator used only when an
// ErrorOnFail wrapper actually needs to report a SyntaxError.
type runCtx[T comparable] struct {
	buf       Buffer[T]
	stop      int
	depth     int
	maxDepth  int
	loopLimit int
	posCalc   *posCalc[T]
}

func (rc *runCtx[T]) position(offset int) Position {
	if rc.posCalc == nil {
		return Position{Offset: offset}
	}
	return rc.posCalc.calculate(offset)
}

// compileElement memoizes and returns element's compiled matcher,
// assembling it exactly once per element.
func compileElement[T comparable](e *Element[T]) (matcherFunc[T], error) {
	e.compileOnce.Do(func() {
		e.compiled, e.compileErr = buildMatcher(e)
	})
	return e.compiled, e.compileErr
}

// buildMatcher composes the base matcher with the modifier flags in a
// fixed order: base -> negative/repeating/optional variant -> lookahead
// wrap -> errorOnFail wrap.
func buildMatcher[T comparable](e *Element[T]) (matcherFunc[T], error) {
	if e.flags.Optional && e.flags.ErrorOnFail != nil {
		return nil, errors.Errorf("parsegen: element %s: optional and errorOnFail are mutually exclusive", e.kind)
	}

	base, err := baseMatcher(e)
	if err != nil {
		return nil, err
	}

	wrapped := selectVariant(base, e.flags.Negative, e.flags.Repeating, e.flags.Optional)

	if e.flags.Lookahead {
		wrapped = wrapLookahead(wrapped)
	}
	if e.flags.ErrorOnFail != nil {
		wrapped = wrapErrorOnFail(wrapped, e.flags.ErrorOnFail)
	}
	return wrapped, nil
}

// baseMatcher dispatches on Kind to build the single-attempt matcher,
// unmodified by any flag. Sequence/Choice children are compiled eagerly
// here; structural composition can't cycle, only Name/LibraryElement
// resolution can, and that's deferred to first use.
func baseMatcher[T comparable](e *Element[T]) (matcherFunc[T], error) {
	switch e.kind {
	case KindLiteral:
		return literalMatcher[T](e.literal, nil), nil
	case KindCILiteral:
		if e.fold == nil {
			return nil, errors.New("parsegen: CILiteral requires a fold function")
		}
		return literalMatcher[T](e.literal, e.fold), nil
	case KindRange:
		if e.pred == nil {
			return nil, errors.New("parsegen: Range requires a membership predicate")
		}
		return rangeMatcher[T](e.pred), nil
	case KindSequence:
		ms, err := compileChildren(e.children)
		if err != nil {
			return nil, err
		}
		return sequenceMatcher(ms), nil
	case KindChoice:
		ms, err := compileChildren(e.children)
		if err != nil {
			return nil, err
		}
		return choiceMatcher(ms), nil
	case KindEOF:
		return eofMatcher[T](), nil
	case KindName, KindLibraryElement:
		return nameMatcher(e), nil
	default:
		return nil, errors.Errorf("parsegen: unknown element kind %d", e.kind)
	}
}

func compileChildren[T comparable](children []*Element[T]) ([]matcherFunc[T], error) {
	ms := make([]matcherFunc[T], len(children))
	for i, c := range children {
		m, err := compileElement(c)
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		ms[i] = m
	}
	return ms, nil
}

// literalMatcher implements Literal/CILiteral: exact (or folded) slice
// equality over any comparable element type, raising EOFReached instead
// of NoMatch when the mismatch happens within len(lit) of the buffer's
// end, the signal a negative-repeating wrapper relies on to terminate
// cleanly at end of input.
func literalMatcher[T comparable](lit []T, fold func(T) T) matcherFunc[T] {
	n := len(lit)
	if n == 0 {
		return func(rc *runCtx[T], current int) (int, []Match, error) {
			return current, noChildren, nil
		}
	}
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		avail := rc.stop - current
		matched := avail >= n
		if matched {
			for i := 0; i < n; i++ {
				a, b := rc.buf[current+i], lit[i]
				if fold != nil {
					a, b = fold(a), fold(b)
				}
				if a != b {
					matched = false
					break
				}
			}
		}
		if matched {
			return current + n, noChildren, nil
		}
		if current+n >= rc.stop {
			return current, nil, errEOFReached
		}
		return current, nil, errNoMatch
	}
}

// rangeMatcher implements Range: single-element membership test,
// EOFReached exactly at the buffer's upper bound.
func rangeMatcher[T comparable](pred func(T) bool) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		if current >= rc.stop {
			return current, nil, errEOFReached
		}
		if pred(rc.buf[current]) {
			return current + 1, noChildren, nil
		}
		return current, nil, errNoMatch
	}
}

// sequenceMatcher implements SequentialGroup: run children in order
// against the same cursor, concatenating reported children; any child
// failure propagates immediately.
func sequenceMatcher[T comparable](ms []matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		cur := current
		var children []Match
		for _, m := range ms {
			next, c, err := m(rc, cur)
			if err != nil {
				return current, nil, err
			}
			cur = next
			children = concatChildren(children, c)
		}
		return cur, children, nil
	}
}

// choiceMatcher implements FirstOfGroup (ordered choice): try each child
// in order, restarting from current each time, returning the first
// success. A child's NoMatch/EOFReached is swallowed and the next child
// tried; any other error propagates immediately without trying the
// remaining children.
func choiceMatcher[T comparable](ms []matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		for _, m := range ms {
			next, c, err := m(rc, current)
			if err == nil {
				return next, c, nil
			}
			if isControlFailure(err) {
				continue
			}
			return current, nil, err
		}
		return current, nil, errNoMatch
	}
}

// eofMatcher implements EOF: succeeds iff current >= stop.
func eofMatcher[T comparable]() matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		if current >= rc.stop {
			return current, noChildren, nil
		}
		return current, nil, errNoMatch
	}
}

// nameMatcher implements both Name and LibraryElement: lazy first-use
// resolution through e.registry (the enclosing grammar for Name, the
// library's own registry for LibraryElement), latched report/expand
// bits, and the match-tree assembly policy deciding whether this
// reference wraps, inlines, or discards its target's result.
func nameMatcher[T comparable](e *Element[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		e.resolveOnce.Do(func() { resolveName(e) })
		if e.resolveErr != nil {
			return current, nil, e.resolveErr
		}

		if rc.maxDepth > 0 && rc.depth >= rc.maxDepth {
			return current, nil, errCallDepthExceeded
		}
		targetMatcher, err := compileElement(e.target)
		if err != nil {
			return current, nil, err
		}

		rc.depth++
		next, children, err := targetMatcher(rc, current)
		rc.depth--
		if err != nil {
			return current, nil, err
		}

		if !e.reportChild {
			return next, children, nil
		}
		if e.expandChild {
			return next, children, nil
		}
		if next == current && !e.flags.Lookahead {
			// Zero-length, non-lookahead match: don't wrap it, or a
			// repeating-optional reference would grow the tree forever.
			return next, noChildren, nil
		}
		return next, []Match{{Tag: e.name, Start: current, Stop: next, Children: children}}, nil
	}
}

func resolveName[T comparable](e *Element[T]) {
	target, ok := e.registry.Get(e.name)
	if !ok {
		e.resolveErr = newNameError(e.name)
		e.registry.logger().Warn().Str("name", e.name).Msg("undefined production referenced")
		return
	}
	e.target = target
	e.reportChild = e.flags.Report && target.flags.Report
	e.expandChild = target.flags.Expanded || e.isLibrary
	e.registry.logger().Debug().Str("name", e.name).Bool("reportChild", e.reportChild).Bool("expandChild", e.expandChild).Msg("resolved name reference")
}
