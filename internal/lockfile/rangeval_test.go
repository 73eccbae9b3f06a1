package lockfile

import "testing"

// Test_Range_RawInvariant covers spec.md §8 invariant 3:
// R.raw == (R.protocol ? R.protocol + ":" + R.selector : R.selector).
func Test_Range_RawInvariant(t *testing.T) {
	cases := []string{
		"npm:^1.2.3",
		"workspace:packages/a",
		"*",
		"patch:is-odd@npm%3A3.0.1#~/.yarn/patches/is-odd-npm-3.0.1.patch",
		"git+ssh://host/repo.git#v1",
	}
	for _, raw := range cases {
		r := NewRange(raw)
		if r.Raw() != raw {
			t.Fatalf("Raw() = %q, want %q", r.Raw(), raw)
		}
		var reconstructed string
		if proto := r.Protocol(); proto != "" {
			reconstructed = proto + ":" + r.Selector()
		} else {
			reconstructed = r.Selector()
		}
		if reconstructed != raw {
			t.Errorf("protocol+selector reconstruction = %q, want %q", reconstructed, raw)
		}
	}
}

func Test_Range_Classification(t *testing.T) {
	cases := []struct {
		raw  string
		kind ProtocolKind
	}{
		{"npm:^1.0.0", ProtocolNpm},
		{"workspace:packages/a", ProtocolWorkspace},
		{"patch:foo#bar", ProtocolPatch},
		{"patch-legacy:foo", ProtocolPatch},
		{"git:github.com/foo/bar", ProtocolGit},
		{"git+ssh://host/repo.git#v1", ProtocolGit},
		{"git+https://host/repo.git", ProtocolGit},
		{"file:./local", ProtocolFile},
		{"portal:../sibling", ProtocolPortal},
		{"exec:./build.js", ProtocolExec},
		{"link:../linked", ProtocolLink},
		{"*", ProtocolUnknown},
		{"^1.2.3", ProtocolUnknown},
		{"NPM:^1.0.0", ProtocolUnknown},
	}
	for _, c := range cases {
		if got := NewRange(c.raw).Kind(); got != c.kind {
			t.Errorf("NewRange(%q).Kind() = %v, want %v", c.raw, got, c.kind)
		}
	}
}

func Test_Range_AsGitURLAndFragment(t *testing.T) {
	r := NewRange("git+ssh://host/repo.git#v1")
	url, fragment, ok := r.AsGitURLAndFragment()
	if !ok {
		t.Fatal("expected ok for a git range")
	}
	if url != "git+ssh://host/repo.git" {
		t.Errorf("url = %q, want %q", url, "git+ssh://host/repo.git")
	}
	if fragment != "v1" {
		t.Errorf("fragment = %q, want %q", fragment, "v1")
	}
}

func Test_Range_AsPatchInnerAndSource_NoSource(t *testing.T) {
	r := NewRange("patch:is-odd@npm%3A3.0.1")
	inner, source, ok := r.AsPatchInnerAndSource()
	if !ok {
		t.Fatal("expected ok for a patch range")
	}
	if inner != "is-odd@npm%3A3.0.1" || source != "" {
		t.Errorf("got inner=%q source=%q", inner, source)
	}
}

func Test_Range_TypedAccessorsRejectWrongKind(t *testing.T) {
	r := NewRange("npm:^1.0.0")
	if _, ok := r.AsWorkspacePath(); ok {
		t.Error("expected AsWorkspacePath to fail for an npm range")
	}
	if _, ok := r.AsFilePath(); ok {
		t.Error("expected AsFilePath to fail for an npm range")
	}
	if v, ok := r.AsNpmRange(); !ok || v != "^1.0.0" {
		t.Errorf("AsNpmRange() = %q, %v", v, ok)
	}
}
