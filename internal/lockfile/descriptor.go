package lockfile

import "strings"

// Descriptor is an Ident paired with a Range. A descriptor may match
// several candidate packages; only a Locator names exactly one.
type Descriptor struct {
	Ident Ident
	Range Range
}

// String renders the descriptor the way it appears as (part of) a
// package block header key, e.g. "debug@npm:^4.0.0".
func (d Descriptor) String() string {
	return d.Ident.String() + "@" + d.Range.Raw()
}

// parseDescriptorKeys splits the content of a package block header
// (the text inside the outer quotes, before the trailing ':') on
// every ',' (plus any spaces after it) and parses each piece as a single
// descriptor, preserving source order (spec.md §4.4, §4.1).
func parseDescriptorKeys(header string) ([]Descriptor, error) {
	pieces := splitDescriptorKeys(header)
	descriptors := make([]Descriptor, 0, len(pieces))
	for _, piece := range pieces {
		d, err := parseSingleDescriptor(piece)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// splitDescriptorKeys splits on commas followed by zero or more
// spaces, the way multi-key package headers are joined
// (`"c@*, c@workspace:packages/c"`). A descriptor's own Range text
// never contains a literal comma in any corpus this parser targets,
// so a single left-to-right scan for ", *" boundaries is exact and
// avoids the backtracking cost of a general regex split.
func splitDescriptorKeys(header string) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(header); i++ {
		if header[i] != ',' {
			continue
		}
		pieces = append(pieces, header[start:i])
		j := i + 1
		for j < len(header) && header[j] == ' ' {
			j++
		}
		start = j
		i = j - 1
	}
	pieces = append(pieces, header[start:])
	return pieces
}

// parseSingleDescriptor parses one "name@[protocol:]selector" piece.
func parseSingleDescriptor(key string) (Descriptor, error) {
	ident, rest, err := parseIdent(key)
	if err != nil {
		return Descriptor{}, errMalformedDescriptor
	}
	if rest == "" || rest[0] != '@' {
		return Descriptor{}, errMalformedDescriptor
	}
	rangeText := rest[1:]
	if rangeText == "" {
		return Descriptor{}, errMalformedDescriptor
	}
	return Descriptor{Ident: ident, Range: NewRange(rangeText)}, nil
}

// parseDependencyName parses a dependency-line name, which may be
// quoted ("@babel/code-frame") or bare (ms) but otherwise has the same
// shape as a descriptor Ident.
func parseDependencyName(name string) (Ident, error) {
	name = strings.TrimSpace(name)
	name = unquote(name)
	ident, rest, err := parseIdent(name)
	if err != nil || rest != "" {
		return Ident{}, errMalformedDescriptor
	}
	return ident, nil
}
