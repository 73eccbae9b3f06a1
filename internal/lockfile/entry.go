package lockfile

import "strings"

// splitKeyValue splits a "key: value" or "key:" line (content already
// has its leading indentation stripped) into key and the raw text
// following the colon. The key may be a bare identifier or a
// double-quoted string (dependency and bin names permit '@', '/', '-'
// and '_' which a bare identifier charset would otherwise reject).
func splitKeyValue(content string) (key, afterColon string, ok bool) {
	if len(content) > 0 && content[0] == '"' {
		k, rest, qok := parseQuoted(content)
		if !qok || !strings.HasPrefix(rest, ":") {
			return "", "", false
		}
		return k, rest[1:], true
	}
	idx := strings.IndexByte(content, ':')
	if idx < 0 {
		return "", "", false
	}
	return content[:idx], content[idx+1:], true
}

// valueOrBare interprets the text following a key's ':'. An empty
// afterColon means the key introduces a sub-block or a bare meta
// entry (isBare == true); otherwise the leading space required by the
// grammar is stripped and the remainder is treated as the value.
func valueOrBare(afterColon string) (value string, isBare bool) {
	if afterColon == "" {
		return "", true
	}
	return trimTrailingSpace(strings.TrimPrefix(afterColon, " ")), false
}

// parsePropertyValue finishes turning a simple-KV value into its
// stored form: quotes are stripped (if present) after right-trimming.
func parsePropertyValue(raw string) string {
	return unquote(trimTrailingSpace(raw))
}

func isSimpleKeyChars(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// validIndent reports whether indent is one of the four levels the
// grammar ever expects (spec.md §4.2, §7 MalformedIndent).
func validIndent(indent int) bool {
	return indent == 0 || indent == 2 || indent == 4 || indent == 6
}

// skipDeeper consumes every line more indented than aboveIndent,
// which is how an unrecognized sub-block (forward compatibility) is
// swallowed without misinterpreting its children as sibling
// properties.
func skipDeeper(s *scanner, aboveIndent int) {
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			return
		}
		indent, _ := lineIndent(line)
		if indent <= aboveIndent {
			return
		}
		s.pos += size
	}
}

// parsePackageBlock parses one quoted key line and its indented
// property body (spec.md §4.1 PackageBlock, §4.5).
func parsePackageBlock(s *scanner) (*Package, error) {
	line, size := s.peekLine()
	if len(line) < 3 || line[0] != '"' || !strings.HasSuffix(line, "\":") {
		return nil, newParseError(s.input, s.offset(), ErrMalformedPackageHeader, "expected a quoted key line ending in \":\"")
	}
	headerOffset := s.offset()
	header := line[1 : len(line)-2]
	s.pos += size

	descriptors, err := parseDescriptorKeys(header)
	if err != nil {
		return nil, newParseError(s.input, headerOffset, ErrMalformedDescriptor, header)
	}

	pkg := newPackage()
	pkg.Descriptors = descriptors

	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, newParseError(s.input, s.offset(), ErrMalformedIndent, "")
		}
		if indent != 2 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		key, afterColon, ok := splitKeyValue(content)
		if !ok || !isSimpleKeyChars(key) {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed property line")
		}
		value, isBare := valueOrBare(afterColon)

		if isBare {
			switch key {
			case "dependencies":
				deps, err := parseDependencyBlock(s)
				if err != nil {
					return nil, err
				}
				pkg.Dependencies = deps
			case "peerDependencies":
				deps, err := parseDependencyBlock(s)
				if err != nil {
					return nil, err
				}
				pkg.PeerDependencies = deps
			case "bin":
				bin, err := parseBinBlock(s)
				if err != nil {
					return nil, err
				}
				pkg.Bin = bin
			case "dependenciesMeta":
				meta, err := parseDependenciesMetaBlock(s)
				if err != nil {
					return nil, err
				}
				pkg.DependenciesMeta = meta
			case "peerDependenciesMeta":
				meta, err := parsePeerDependenciesMetaBlock(s)
				if err != nil {
					return nil, err
				}
				pkg.PeerDependenciesMeta = meta
			default:
				// Unrecognized sub-block: forward-compatible, ignored.
				skipDeeper(s, 2)
			}
			continue
		}

		switch key {
		case "version":
			pkg.Version, pkg.HasVersion = parsePropertyValue(value), true
		case "resolution":
			pkg.Resolution, pkg.HasResolution = parsePropertyValue(value), true
		case "languageName":
			pkg.LanguageName = parsePropertyValue(value)
		case "linkType":
			lt, err := parseLinkType(parsePropertyValue(value))
			if err != nil {
				return nil, newParseError(s.input, lineOffset, ErrInvalidLinkType, value)
			}
			pkg.LinkType = lt
		case "checksum":
			pkg.Checksum, pkg.HasChecksum = parsePropertyValue(value), true
		case "conditions":
			pkg.Conditions, pkg.HasConditions = parsePropertyValue(value), true
		default:
			// Unrecognized simple keys are silently accepted and ignored.
		}
	}

	return pkg, nil
}

// parseDependencyBlock reads a "dependencies:" or "peerDependencies:"
// sub-block: depth-2 entries of "name: range".
func parseDependencyBlock(s *scanner) (map[Ident]Descriptor, error) {
	deps := map[Ident]Descriptor{}
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, newParseError(s.input, s.offset(), ErrMalformedIndent, "")
		}
		if indent != 4 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		name, afterColon, ok := splitKeyValue(content)
		if !ok {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed dependency line")
		}
		value, isBare := valueOrBare(afterColon)
		if isBare {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "dependency entry missing a range")
		}
		ident, err := parseDependencyName(name)
		if err != nil {
			return nil, newParseError(s.input, lineOffset, ErrMalformedDescriptor, name)
		}
		// Last-wins on duplicate Ident within the same block (spec.md §3, §9).
		deps[ident] = Descriptor{Ident: ident, Range: NewRange(parsePropertyValue(value))}
	}
	return deps, nil
}

// parseBinBlock reads a "bin:" sub-block: depth-2 entries of
// "name: path".
func parseBinBlock(s *scanner) (map[string]string, error) {
	bin := map[string]string{}
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, newParseError(s.input, s.offset(), ErrMalformedIndent, "")
		}
		if indent != 4 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		name, afterColon, ok := splitKeyValue(content)
		if !ok {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed bin line")
		}
		value, isBare := valueOrBare(afterColon)
		if isBare {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "bin entry missing a path")
		}
		bin[unquote(name)] = parsePropertyValue(value)
	}
	return bin, nil
}

// parseDependenciesMetaBlock reads a "dependenciesMeta:" sub-block.
func parseDependenciesMetaBlock(s *scanner) (map[Ident]*DependencyMeta, error) {
	meta := map[Ident]*DependencyMeta{}
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, newParseError(s.input, s.offset(), ErrMalformedIndent, "")
		}
		if indent != 4 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		name, afterColon, ok := splitKeyValue(content)
		if !ok {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed dependenciesMeta line")
		}
		ident, err := parseDependencyName(name)
		if err != nil {
			return nil, newParseError(s.input, lineOffset, ErrMalformedDescriptor, name)
		}

		value, isBare := valueOrBare(afterColon)
		var fields map[string]bool
		if isBare {
			fields, err = readIndentedBoolFields(s)
		} else {
			fields, err = parseInlineMetaObject(value)
		}
		if err != nil {
			return nil, newParseError(s.input, lineOffset, ErrMalformedMetaObject, name)
		}
		meta[ident] = buildDependencyMeta(fields)
	}
	return meta, nil
}

// parsePeerDependenciesMetaBlock reads a "peerDependenciesMeta:"
// sub-block.
func parsePeerDependenciesMetaBlock(s *scanner) (map[Ident]PeerDependencyMeta, error) {
	meta := map[Ident]PeerDependencyMeta{}
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, newParseError(s.input, s.offset(), ErrMalformedIndent, "")
		}
		if indent != 4 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		name, afterColon, ok := splitKeyValue(content)
		if !ok {
			return nil, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed peerDependenciesMeta line")
		}
		ident, err := parseDependencyName(name)
		if err != nil {
			return nil, newParseError(s.input, lineOffset, ErrMalformedDescriptor, name)
		}

		value, isBare := valueOrBare(afterColon)
		var fields map[string]bool
		if isBare {
			fields, err = readIndentedBoolFields(s)
		} else {
			fields, err = parseInlineMetaObject(value)
		}
		if err != nil {
			return nil, newParseError(s.input, lineOffset, ErrMalformedMetaObject, name)
		}
		meta[ident] = buildPeerDependencyMeta(fields)
	}
	return meta, nil
}

// readIndentedBoolFields reads depth-3 "field: true|false" lines that
// follow a bare meta-entry key (the "indented" form of a meta object).
func readIndentedBoolFields(s *scanner) (map[string]bool, error) {
	fields := map[string]bool{}
	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if !validIndent(indent) {
			return nil, errMalformedMetaObject
		}
		if indent != 6 {
			break
		}
		s.pos += size

		key, afterColon, ok := splitKeyValue(content)
		if !ok {
			return nil, errMalformedMetaObject
		}
		value, isBare := valueOrBare(afterColon)
		if isBare {
			return nil, errMalformedMetaObject
		}
		b, err := parseBoolLiteral(value)
		if err != nil {
			return nil, err
		}
		fields[key] = b
	}
	return fields, nil
}

// parseInlineMetaObject parses the "{ field: bool, ... }" form of a
// meta object.
func parseInlineMetaObject(value string) (map[string]bool, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '{' || value[len(value)-1] != '}' {
		return nil, errMalformedMetaObject
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	fields := map[string]bool{}
	if inner == "" {
		return fields, nil
	}
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		idx := strings.IndexByte(part, ':')
		if idx < 0 {
			return nil, errMalformedMetaObject
		}
		key := strings.TrimSpace(part[:idx])
		b, err := parseBoolLiteral(strings.TrimSpace(part[idx+1:]))
		if err != nil {
			return nil, err
		}
		fields[key] = b
	}
	return fields, nil
}

func parseBoolLiteral(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errMalformedMetaObject
	}
}

func buildDependencyMeta(fields map[string]bool) *DependencyMeta {
	dm := &DependencyMeta{}
	if v, ok := fields["built"]; ok {
		vv := v
		dm.Built = &vv
	}
	if v, ok := fields["optional"]; ok {
		vv := v
		dm.Optional = &vv
	}
	if v, ok := fields["unplugged"]; ok {
		vv := v
		dm.Unplugged = &vv
	}
	return dm
}

func buildPeerDependencyMeta(fields map[string]bool) PeerDependencyMeta {
	return PeerDependencyMeta{Optional: fields["optional"]}
}
