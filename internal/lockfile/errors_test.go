package lockfile

import "testing"

func Test_ParseError_Position(t *testing.T) {
	input := "line one\nline two\nline three"
	offset := len("line one\nline ")
	err := newParseError(input, offset, ErrMalformedIndent, "")
	line, col := err.Position()
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}
	if col != len("line ")+1 {
		t.Errorf("col = %d, want %d", col, len("line ")+1)
	}
}

func Test_ParseError_Error(t *testing.T) {
	err := newParseError("abc", 3, ErrMissingMetadata, "")
	if got, want := err.Error(), "MissingMetadata at byte 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	withMsg := newParseError("abc", 3, ErrMissingMetadata, "cacheKey")
	if got, want := withMsg.Error(), "MissingMetadata at byte 3: cacheKey"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func Test_ErrorKind_String(t *testing.T) {
	kinds := []ErrorKind{
		ErrUnexpectedEndOfInput, ErrExpectedMetadataBlock, ErrMissingMetadata,
		ErrMalformedPackageHeader, ErrMalformedDescriptor, ErrMalformedIndent,
		ErrInvalidLinkType, ErrMalformedMetaObject, ErrInvalidUTF8,
	}
	for _, k := range kinds {
		if k.String() == "" || k.String() == "Unknown" {
			t.Errorf("unexpected String() for kind %d: %q", k, k.String())
		}
	}
}
