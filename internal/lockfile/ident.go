package lockfile

import "strings"

// Ident is the identity of a package: an optional scope plus a name.
// Two idents are equal iff their (scope, name) pairs are equal, which
// is why Ident is a plain comparable struct usable directly as a map
// key everywhere a Descriptor or Locator key is needed.
type Ident struct {
	// Scope without the leading "@", empty if the package is unscoped.
	Scope string
	// Name of the package.
	Name string
}

// String renders the ident the way it appears in a lockfile key, e.g.
// "debug" or "@babel/code-frame".
func (i Ident) String() string {
	if i.Scope == "" {
		return i.Name
	}
	return "@" + i.Scope + "/" + i.Name
}

// parseIdent consumes a package name off the front of s, returning the
// parsed Ident and the unconsumed remainder. Name has shape:
//
//	segment              (unscoped)
//	@segment1/segment2   (scoped)
//
// where segment is [A-Za-z0-9_-]+.
func parseIdent(s string) (Ident, string, error) {
	if s == "" {
		return Ident{}, s, errUnexpectedEOF
	}

	if s[0] == '@' {
		slash := strings.IndexByte(s, '/')
		if slash < 0 {
			return Ident{}, s, errMalformedDescriptor
		}
		scope := s[1:slash]
		if !isIdentSegment(scope) {
			return Ident{}, s, errMalformedDescriptor
		}
		rest := s[slash+1:]
		name, tail := takeIdentSegment(rest)
		if name == "" {
			return Ident{}, s, errMalformedDescriptor
		}
		return Ident{Scope: scope, Name: name}, tail, nil
	}

	name, tail := takeIdentSegment(s)
	if name == "" {
		return Ident{}, s, errMalformedDescriptor
	}
	return Ident{Name: name}, tail, nil
}

// takeIdentSegment greedily consumes an identifier segment
// ([A-Za-z0-9_-]+) off the front of s.
func takeIdentSegment(s string) (segment, rest string) {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isIdentSegment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
