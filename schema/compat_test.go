package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaredVersion(t *testing.T) {
	l := lineage(t)

	tests := []struct {
		name         string
		doc          Document
		major, minor int
		ok           bool
	}{
		{"declared", doc(t, versioned(2, 1, "")), 2, 1, true},
		{"plain ints", Document{"version": map[string]any{"major": 3, "minor": 0}}, 3, 0, true},
		{"missing stanza", Document{}, 0, 0, false},
		{"stanza not an object", Document{"version": "2.1"}, 0, 0, false},
		{"missing minor", doc(t, `{"version": {"major": 1}}`), 0, 0, false},
		{"float major", doc(t, `{"version": {"major": 1.0, "minor": 0}}`), 0, 0, false},
		{"string minor", doc(t, `{"version": {"major": 1, "minor": "0"}}`), 0, 0, false},
		{"negative minor", doc(t, `{"version": {"major": 1, "minor": -1}}`), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, minor, ok := l.v1.DeclaredVersion(tt.doc)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
		})
	}
}

func TestCompatibility(t *testing.T) {
	l := lineage(t)
	v10 := doc(t, versioned(1, 0, ""))
	v11 := doc(t, versioned(1, 1, ""))
	v20 := doc(t, versioned(2, 0, ""))
	v21 := doc(t, versioned(2, 1, ""))
	v22 := doc(t, versioned(2, 2, ""))
	v90 := doc(t, versioned(9, 0, ""))

	assert.True(t, l.v2_1.IsCompatibleExactly(v21))
	assert.False(t, l.v2_1.IsCompatibleExactly(v20))
	assert.False(t, l.v2.IsCompatibleExactly(v21))

	assert.True(t, l.v2_1.IsCompatibleDirectly(v21))
	assert.True(t, l.v2_1.IsCompatibleDirectly(v20))
	assert.False(t, l.v2_1.IsCompatibleDirectly(v22))
	assert.False(t, l.v2.IsCompatibleDirectly(v21))
	assert.False(t, l.v2_1.IsCompatibleDirectly(v11))

	assert.True(t, l.v3.IsCompatible(v10))
	assert.True(t, l.v3.IsCompatible(v21))
	assert.False(t, l.v3.IsCompatible(v22))
	assert.False(t, l.v3.IsCompatible(v90))
	assert.False(t, l.v1_1.IsCompatible(v20))
	assert.False(t, l.v1.IsCompatible(Document{}))
}

func TestResolve(t *testing.T) {
	l := lineage(t)

	v, ok := l.v3.ResolveExact(doc(t, versioned(1, 1, "")))
	assert.True(t, ok)
	assert.Same(t, l.v1_1, v)

	v, ok = l.v3.ResolveExact(doc(t, versioned(3, 0, "")))
	assert.True(t, ok)
	assert.Same(t, l.v3, v)

	// The sibling branch resolves its own v2.0
	v, ok = l.sibling.ResolveExact(doc(t, versioned(2, 0, "")))
	assert.True(t, ok)
	assert.Same(t, l.sibling, v)

	_, ok = l.v1_1.ResolveExact(doc(t, versioned(2, 0, "")))
	assert.False(t, ok)

	v, ok = l.v3.ResolveDirect(doc(t, versioned(2, 0, "")))
	assert.True(t, ok)
	assert.Same(t, l.v2_1, v, "newest directly compatible version wins")

	v, ok = l.v2.ResolveDirect(doc(t, versioned(1, 0, "")))
	assert.True(t, ok)
	assert.Same(t, l.v1_1, v)

	_, ok = l.v3.ResolveDirect(doc(t, versioned(4, 0, "")))
	assert.False(t, ok)
}
