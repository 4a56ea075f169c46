package schema

// DeclaredVersion returns the version numbers doc declares, read with this
// version's stanza accessor. ok is false when the stanza is missing or
// malformed.
func (v *Version) DeclaredVersion(doc Document) (major, minor int, ok bool) {
	return v.stanza.Get(doc)
}

// IsCompatibleExactly reports whether doc declares exactly this version.
func (v *Version) IsCompatibleExactly(doc Document) bool {
	major, minor, ok := v.DeclaredVersion(doc)
	return ok && major == v.major && minor == v.minor
}

// IsCompatibleDirectly reports whether doc can be used as this version
// without any transformation: it declares the same major version and a
// minor version no greater than this one's.
func (v *Version) IsCompatibleDirectly(doc Document) bool {
	major, minor, ok := v.DeclaredVersion(doc)
	return ok && major == v.major && minor <= v.minor
}

// ResolveExact returns the first version in the lineage of v, starting
// with v itself, that doc is exactly compatible with.
func (v *Version) ResolveExact(doc Document) (*Version, bool) {
	for cur := range v.Lineage() {
		if cur.IsCompatibleExactly(doc) {
			return cur, true
		}
	}
	return nil, false
}

// ResolveDirect returns the first version in the lineage of v, starting
// with v itself, that doc is directly compatible with.
func (v *Version) ResolveDirect(doc Document) (*Version, bool) {
	for cur := range v.Lineage() {
		if cur.IsCompatibleDirectly(doc) {
			return cur, true
		}
	}
	return nil, false
}

// IsCompatible reports whether doc declares v or one of its predecessors.
func (v *Version) IsCompatible(doc Document) bool {
	_, ok := v.ResolveExact(doc)
	return ok
}
