package parsegen

// Match is the structured tuple a reporting production emits: a tag
// (the production name), the buffer span it matched, and its ordered,
// possibly-empty list of nested Matches.
//
// Match supports positional index access (0..3) so generic tree walkers
// external to this module, written against a tuple-like
// (tag, start, stop, children) shape, work unchanged regardless of
// language. Use At for that; use the named fields for everything
// written against this package directly.
type Match struct {
	Tag      string
	Start    int
	Stop     int
	Children []Match
}

// At implements stable 0..3 positional access over the match record
// shape: 0=tag, 1=start, 2=stop, 3=children.
func (m Match) At(i int) interface{} {
	switch i {
	case 0:
		return m.Tag
	case 1:
		return m.Start
	case 2:
		return m.Stop
	case 3:
		return m.Children
	default:
		panic("parsegen: Match.At index out of range [0,3]")
	}
}

// noChildren is the shared empty-children sentinel: most productions
// emit no children, so share a single nil slice rather than allocating
// a fresh empty one per success.
var noChildren []Match

// concatChildren concatenates b's matches after a's, short-circuiting to
// a shared slice when either side is empty and always copying into a
// fresh backing array otherwise. Sibling Match nodes may independently
// hold references into the same child slice (e.g. two repeat iterations
// each returning a one-element slice), so growing in place via append
// would risk one sibling's result clobbering another's.
func concatChildren(a, b []Match) []Match {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]Match, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}
