// Package lockfile parses the textual lockfile format produced by the
// Berry family of JavaScript package managers into a typed package
// graph: Ident, Range, Descriptor, Locator and Package values wired
// together under a single Lockfile. The parser is a pure function: no
// I/O, no global state, safe to call concurrently over independent
// inputs.
package lockfile

import "unicode/utf8"

// Lockfile is the parsed representation of an entire lockfile: its
// metadata block plus every package entry, in source order.
type Lockfile struct {
	Metadata Metadata
	Entries  []Package
	// Remaining holds any unparsed suffix. It is empty on a fully
	// consumed file; a non-whitespace Remaining is a recoverable
	// condition, not a parse failure (spec.md §4.1).
	Remaining string
}

// Parse parses the full contents of a Berry lockfile. This is the
// package's single entry point; every other exported type exists to
// describe the shape of its result.
func Parse(data []byte) (*Lockfile, error) {
	if off, ok := firstInvalidUTF8(data); !ok {
		return nil, newParseError(string(data), off, ErrInvalidUTF8, "")
	}

	text := string(data)
	s := newScanner(text)

	metadata, err := parseHeaderAndMetadata(s)
	if err != nil {
		return nil, err
	}

	s.skipBlankLines()

	var entries []Package
	for !s.eof() {
		line, _ := s.peekLine()
		if isBlankLine(line) {
			s.skipBlankLines()
			continue
		}
		if len(line) == 0 || line[0] != '"' {
			// Not shaped like a package block header: stop and surface
			// the rest as a non-fatal remainder rather than failing.
			break
		}
		pkg, err := parsePackageBlock(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *pkg)
		s.skipBlankLines()
	}

	return &Lockfile{
		Metadata:  metadata,
		Entries:   entries,
		Remaining: s.input[s.pos:],
	}, nil
}

// firstInvalidUTF8 reports the byte offset of the first invalid UTF-8
// sequence in data, or ok == true if data is entirely valid.
func firstInvalidUTF8(data []byte) (offset int, ok bool) {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, false
		}
		i += size
	}
	return 0, true
}
