package lockfile

// Locator is an Ident paired with a resolved reference; unlike a
// Descriptor it names exactly one package.
type Locator struct {
	Ident     Ident
	Reference string
}

// String renders the locator the way it appears in a "resolution"
// field, e.g. "debug@npm:4.0.0".
func (l Locator) String() string {
	return l.Ident.String() + "@" + l.Reference
}

// AsDescriptor views the locator as a descriptor whose range equals
// the reference. The reverse only holds when the descriptor's range
// is already pinned (spec.md §3).
func (l Locator) AsDescriptor() Descriptor {
	return Descriptor{Ident: l.Ident, Range: NewRange(l.Reference)}
}

// parseLocator parses a "name@reference" string, same grammar as a
// single descriptor key.
func parseLocator(s string) (Locator, error) {
	d, err := parseSingleDescriptor(s)
	if err != nil {
		return Locator{}, err
	}
	return Locator{Ident: d.Ident, Reference: d.Range.Raw()}, nil
}
