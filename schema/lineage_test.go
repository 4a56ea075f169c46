package schema

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/ioerrors"
)

func TestLineage(t *testing.T) {
	l := lineage(t)

	assert.Equal(t, []*Version{l.v3, l.v2_1, l.v2, l.v1_1, l.v1}, slices.Collect(l.v3.Lineage()))
	assert.Equal(t, []*Version{l.v1, l.v1_1, l.v2, l.v2_1, l.v3}, l.v3.History())
	assert.Equal(t, []*Version{l.v1}, l.v1.History())
	assert.Equal(t, []*Version{l.v1, l.v1_1, l.sibling}, l.sibling.History())

	// Early termination
	var first []*Version
	for v := range l.v3.Lineage() {
		first = append(first, v)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []*Version{l.v3, l.v2_1}, first)
}

func TestIsAncestorOf(t *testing.T) {
	l := lineage(t)

	assert.True(t, l.v1.IsAncestorOf(l.v3))
	assert.True(t, l.v3.IsAncestorOf(l.v3))
	assert.False(t, l.v3.IsAncestorOf(l.v1))
	assert.True(t, l.v1_1.IsAncestorOf(l.sibling))
	assert.False(t, l.v2.IsAncestorOf(l.sibling))
	assert.False(t, l.sibling.IsAncestorOf(l.v2_1))
}

func TestVersionCompare(t *testing.T) {
	l := lineage(t)

	tests := []struct {
		name string
		a, b *Version
		want int
	}{
		{"same", l.v2, l.v2, 0},
		{"ancestor", l.v1, l.v2_1, -1},
		{"descendant", l.v3, l.v1_1, 1},
		{"sibling to common ancestor", l.sibling, l.v1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("different branches", func(t *testing.T) {
		_, err := l.v2.Compare(l.sibling)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ioerrors.ErrIncomparable))
		var incErr *ioerrors.IncomparableError
		require.True(t, errors.As(err, &incErr))
		assert.Equal(t, "v2.0", incErr.First)
		assert.Equal(t, "v2.0", incErr.Second)

		_, err = l.v3.Compare(l.sibling)
		assert.True(t, errors.Is(err, ioerrors.ErrIncomparable))
	})
}

func TestNewer(t *testing.T) {
	l := lineage(t)

	v, err := Newer(l.v1, l.v2)
	require.NoError(t, err)
	assert.Same(t, l.v2, v)

	v, err = Newer(l.v3, l.v1_1)
	require.NoError(t, err)
	assert.Same(t, l.v3, v)

	v, err = Newer(l.v2, l.v2)
	require.NoError(t, err)
	assert.Same(t, l.v2, v)

	_, err = Newer(l.sibling, l.v2_1)
	assert.True(t, errors.Is(err, ioerrors.ErrIncomparable))
}
