package schema

import (
	"iter"
	"slices"

	"github.com/erraggy/reportio/ioerrors"
)

// Lineage yields v and then each of its predecessors, newest first.
func (v *Version) Lineage() iter.Seq[*Version] {
	return func(yield func(*Version) bool) {
		for cur := v; cur != nil; cur = cur.previous {
			if !yield(cur) {
				return
			}
		}
	}
}

// History returns the lineage of v oldest first, ending with v.
func (v *Version) History() []*Version {
	h := slices.Collect(v.Lineage())
	slices.Reverse(h)
	return h
}

// IsAncestorOf reports whether v appears in the lineage of o. A version is
// its own ancestor.
func (v *Version) IsAncestorOf(o *Version) bool {
	for cur := range o.Lineage() {
		if cur == v {
			return true
		}
	}
	return false
}

// Compare orders v and o along their common lineage: -1 if v is an
// ancestor of o, 1 if o is an ancestor of v, 0 if they are the same
// version. Versions on different branches have no order and yield an
// *ioerrors.IncomparableError.
func (v *Version) Compare(o *Version) (int, error) {
	switch {
	case v == o:
		return 0, nil
	case v.IsAncestorOf(o):
		return -1, nil
	case o.IsAncestorOf(v):
		return 1, nil
	}
	return 0, &ioerrors.IncomparableError{First: v.String(), Second: o.String()}
}

// Newer returns whichever of a and b descends from the other.
func Newer(a, b *Version) (*Version, error) {
	c, err := a.Compare(b)
	if err != nil {
		return nil, err
	}
	if c < 0 {
		return b, nil
	}
	return a, nil
}
