package parsegen

// selectVariant implements the 8-way cross-product of the negative,
// repeating, and optional flags over a single base matcher. Each
// combination reduces to one of four distinct strategies (plain,
// optional, repeating, negative), since optional and repeating each
// compose orthogonally once negation has picked which single-attempt
// matcher they wrap.
func selectVariant[T comparable](base matcherFunc[T], negative, repeating, optional bool) matcherFunc[T] {
	m := base
	if negative {
		m = negativeVariant(m)
	}
	if repeating {
		m = repeatingVariant(m)
	}
	if optional {
		m = optionalVariant(m)
	}
	return m
}

// negativeVariant implements the negative flag: succeeds, consuming
// exactly one element, when the wrapped matcher fails with an ordinary
// NoMatch/EOFReached at the current position, and fails with NoMatch
// when the wrapped matcher succeeds. At end of input there is nothing
// to consume, so a wrapped failure there still fails, as EOFReached,
// the same signal a negative-repeating loop relies on to stop cleanly.
func negativeVariant[T comparable](inner matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		_, _, err := inner(rc, current)
		if err == nil {
			return current, nil, errNoMatch
		}
		if !isControlFailure(err) {
			return current, nil, err
		}
		if current >= rc.stop {
			return current, nil, errEOFReached
		}
		return current + 1, noChildren, nil
	}
}

// repeatingVariant implements the repeating flag: apply inner greedily,
// one or more times, concatenating reported children, stopping at the
// first attempt that fails with NoMatch/EOFReached (an ordinary stop
// condition, since at least one successful match has already been
// consumed by then). Fails with NoMatch if the very first attempt fails
// that way; any other error propagates. A guard against zero-length
// iterations (which would otherwise loop forever) breaks out as soon as
// an attempt doesn't advance the cursor, and a loop-iteration ceiling
// guards against runaway grammars.
func repeatingVariant[T comparable](inner matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		cur := current
		var children []Match
		count := 0
		for {
			next, c, err := inner(rc, cur)
			if err != nil {
				if !isControlFailure(err) {
					return current, nil, err
				}
				if count == 0 {
					return current, nil, errNoMatch
				}
				break
			}
			children = concatChildren(children, c)
			count++
			if next == cur {
				// zero-width match: one iteration is enough, further
				// attempts would never terminate.
				cur = next
				break
			}
			cur = next
			if rc.loopLimit > 0 && count >= rc.loopLimit {
				return current, nil, errLoopLimitExceeded
			}
		}
		return cur, children, nil
	}
}

// optionalVariant implements the optional flag: never fails. A failed
// attempt (NoMatch or EOFReached) reduces to a zero-length success; any
// other error still propagates.
func optionalVariant[T comparable](inner matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		next, children, err := inner(rc, current)
		if err == nil {
			return next, children, nil
		}
		if isControlFailure(err) {
			return current, noChildren, nil
		}
		return current, nil, err
	}
}

// wrapLookahead implements the lookahead flag: a success is observed but
// never consumed: the cursor is restored to its pre-attempt position
// while the success/failure outcome of inner still propagates normally.
// Reported children of a lookahead match are kept (the caller may still
// want to inspect what would have matched) even though the span they
// describe is no longer "consumed" by the surrounding sequence.
func wrapLookahead[T comparable](inner matcherFunc[T]) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		_, children, err := inner(rc, current)
		if err != nil {
			return current, nil, err
		}
		return current, children, nil
	}
}

// wrapErrorOnFail implements the errorOnFail flag: an ordinary NoMatch
// from inner becomes a *SyntaxError anchored at the current position.
// EOFReached is treated the same way: both mean "expected production
// did not match here". Any other error (a propagated SyntaxError from
// deeper in the tree, or a programmer error) passes through unchanged,
// so only the innermost errorOnFail site converts a given failure.
func wrapErrorOnFail[T comparable](inner matcherFunc[T], desc *ErrorOnFail) matcherFunc[T] {
	return func(rc *runCtx[T], current int) (int, []Match, error) {
		next, children, err := inner(rc, current)
		if err == nil {
			return next, children, nil
		}
		if isControlFailure(err) {
			return current, nil, newSyntaxError(desc, rc.position(current), err)
		}
		return current, nil, err
	}
}
