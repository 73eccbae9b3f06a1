package lockfile

import "strings"

// ProtocolKind classifies the prefix of a Range. Unknown exists so
// that future protocols parse successfully and round-trip their raw
// text; callers must handle it gracefully.
type ProtocolKind int

// Protocol kinds recognized by the classifier (spec.md §4.4).
const (
	ProtocolUnknown ProtocolKind = iota
	ProtocolNpm
	ProtocolWorkspace
	ProtocolPatch
	ProtocolGit
	ProtocolFile
	ProtocolPortal
	ProtocolExec
	ProtocolLink
)

func (p ProtocolKind) String() string {
	switch p {
	case ProtocolNpm:
		return "npm"
	case ProtocolWorkspace:
		return "workspace"
	case ProtocolPatch:
		return "patch"
	case ProtocolGit:
		return "git"
	case ProtocolFile:
		return "file"
	case ProtocolPortal:
		return "portal"
	case ProtocolExec:
		return "exec"
	case ProtocolLink:
		return "link"
	default:
		return "unknown"
	}
}

// Range is the raw right-hand side of a Descriptor, e.g. "npm:^1.2.3",
// "workspace:packages/a", or a bare selector like "*". It stores the
// raw text plus the byte index of the first ':' so Protocol and
// Selector are recovered as views with no further allocation.
type Range struct {
	raw string
	// colon is the index of the first ':' in raw, or -1 if absent.
	colon int
}

// NewRange builds a Range from its raw textual form. Per spec.md §3:
// if no ':' appears, the whole string is the selector and the
// protocol classification is Unknown.
func NewRange(raw string) Range {
	return Range{raw: raw, colon: strings.IndexByte(raw, ':')}
}

// Raw returns the exact text the Range was built from.
func (r Range) Raw() string { return r.raw }

// hasProtocol reports whether raw carries a "proto:" prefix.
func (r Range) hasProtocol() bool { return r.colon > 0 }

// Protocol returns the prefix before the first ':', or "" if none.
func (r Range) Protocol() string {
	if !r.hasProtocol() {
		return ""
	}
	return r.raw[:r.colon]
}

// Selector returns the text after the protocol prefix, or the whole
// raw string when there is no protocol.
func (r Range) Selector() string {
	if !r.hasProtocol() {
		return r.raw
	}
	return r.raw[r.colon+1:]
}

// Kind classifies the protocol prefix. Matching is case-sensitive:
// "NPM:" is Unknown, not Npm (spec.md §8 invariant 7). A prefix
// beginning with "git" (git, git+ssh, git+https, ...) is always Git.
func (r Range) Kind() ProtocolKind {
	proto := r.Protocol()
	switch {
	case proto == "":
		return ProtocolUnknown
	case proto == "npm":
		return ProtocolNpm
	case proto == "workspace":
		return ProtocolWorkspace
	case strings.HasPrefix(proto, "patch"):
		return ProtocolPatch
	case strings.HasPrefix(proto, "git"):
		return ProtocolGit
	case proto == "file":
		return ProtocolFile
	case proto == "portal":
		return ProtocolPortal
	case proto == "exec":
		return ProtocolExec
	case proto == "link":
		return ProtocolLink
	default:
		return ProtocolUnknown
	}
}

// AsNpmRange returns the semver range text for an npm: range.
func (r Range) AsNpmRange() (string, bool) {
	if r.Kind() != ProtocolNpm {
		return "", false
	}
	return r.Selector(), true
}

// AsWorkspacePath returns the workspace path (possibly "." or
// "./packages/x") for a workspace: range.
func (r Range) AsWorkspacePath() (string, bool) {
	if r.Kind() != ProtocolWorkspace {
		return "", false
	}
	return r.Selector(), true
}

// AsLinkPath returns the path for a link: range.
func (r Range) AsLinkPath() (string, bool) {
	if r.Kind() != ProtocolLink {
		return "", false
	}
	return r.Selector(), true
}

// AsFilePath returns the path for a file: range.
func (r Range) AsFilePath() (string, bool) {
	if r.Kind() != ProtocolFile {
		return "", false
	}
	return r.Selector(), true
}

// AsPortalPath returns the path for a portal: range.
func (r Range) AsPortalPath() (string, bool) {
	if r.Kind() != ProtocolPortal {
		return "", false
	}
	return r.Selector(), true
}

// AsExecCommand returns the command for an exec: range.
func (r Range) AsExecCommand() (string, bool) {
	if r.Kind() != ProtocolExec {
		return "", false
	}
	return r.Selector(), true
}

// AsGitURLAndFragment decomposes a git range at the first '#' into
// (url, fragment). The raw text (including scheme) is returned as the
// URL, not the selector, so callers see schemes like "git+ssh://".
func (r Range) AsGitURLAndFragment() (string, string, bool) {
	if r.Kind() != ProtocolGit {
		return "", "", false
	}
	raw := r.raw
	if hash := strings.IndexByte(raw, '#'); hash >= 0 {
		return raw[:hash], raw[hash+1:], true
	}
	return raw, "", true
}

// AsPatchInnerAndSource decomposes a patch selector at the first '#'
// into (inner, source). source is empty when absent.
func (r Range) AsPatchInnerAndSource() (string, string, bool) {
	if r.Kind() != ProtocolPatch {
		return "", "", false
	}
	sel := r.Selector()
	if hash := strings.IndexByte(sel, '#'); hash >= 0 {
		return sel[:hash], sel[hash+1:], true
	}
	return sel, "", true
}
