package lockfile

const metadataHeader = "__metadata:"

// parseHeaderAndMetadata skips the banner (comment and blank lines)
// and reads the required "__metadata:" block (spec.md §4.3).
func parseHeaderAndMetadata(s *scanner) (Metadata, error) {
	s.skipBlankAndCommentLines()

	if s.eof() {
		return Metadata{}, newParseError(s.input, s.offset(), ErrExpectedMetadataBlock, "reached end of input before __metadata block")
	}

	line, size := s.peekLine()
	if line != metadataHeader {
		return Metadata{}, newParseError(s.input, s.offset(), ErrExpectedMetadataBlock, "expected \"__metadata:\"")
	}
	s.pos += size

	var meta Metadata
	haveVersion, haveCacheKey := false, false

	for !s.eof() {
		line, size := s.peekLine()
		if isBlankLine(line) {
			break
		}
		indent, content := lineIndent(line)
		if indent != 2 {
			break
		}
		lineOffset := s.offset()
		s.pos += size

		key, afterColon, ok := splitKeyValue(content)
		if !ok || !isSimpleKeyChars(key) {
			return Metadata{}, newParseError(s.input, lineOffset, ErrMalformedIndent, "malformed metadata property line")
		}
		value, isBare := valueOrBare(afterColon)
		if isBare {
			return Metadata{}, newParseError(s.input, lineOffset, ErrMalformedIndent, "metadata property missing a value")
		}

		switch key {
		case "version":
			meta.Version = parsePropertyValue(value)
			haveVersion = true
		case "cacheKey":
			meta.CacheKey = parsePropertyValue(value)
			haveCacheKey = true
		default:
			// Extra metadata keys are accepted and ignored.
		}
	}

	if !haveVersion || !haveCacheKey {
		return Metadata{}, newParseError(s.input, s.offset(), ErrMissingMetadata, "")
	}

	return meta, nil
}
