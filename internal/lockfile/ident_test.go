package lockfile

import "testing"

func Test_Ident_String(t *testing.T) {
	cases := []struct {
		name string
		in   Ident
		want string
	}{
		{"unscoped", Ident{Name: "debug"}, "debug"},
		{"scoped", Ident{Scope: "babel", Name: "code-frame"}, "@babel/code-frame"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func Test_Ident_Equality(t *testing.T) {
	a := Ident{Scope: "babel", Name: "core"}
	b := Ident{Scope: "babel", Name: "core"}
	c := Ident{Name: "core"}
	if a != b {
		t.Error("expected structurally equal idents to compare equal")
	}
	if a == c {
		t.Error("expected idents with different scope to compare unequal")
	}

	m := map[Ident]int{a: 1}
	if _, ok := m[b]; !ok {
		t.Error("expected Ident to be usable as a map key by structural equality")
	}
}

func Test_ParseIdent(t *testing.T) {
	cases := []struct {
		in       string
		want     Ident
		wantRest string
	}{
		{"debug@npm:1.0.0", Ident{Name: "debug"}, "@npm:1.0.0"},
		{"@babel/code-frame@npm:7.12.11", Ident{Scope: "babel", Name: "code-frame"}, "@npm:7.12.11"},
		{"ms", Ident{Name: "ms"}, ""},
	}
	for _, c := range cases {
		ident, rest, err := parseIdent(c.in)
		if err != nil {
			t.Fatalf("parseIdent(%q) returned error: %v", c.in, err)
		}
		if ident != c.want {
			t.Errorf("parseIdent(%q) ident = %+v, want %+v", c.in, ident, c.want)
		}
		if rest != c.wantRest {
			t.Errorf("parseIdent(%q) rest = %q, want %q", c.in, rest, c.wantRest)
		}
	}
}

func Test_ParseIdent_MalformedScope(t *testing.T) {
	if _, _, err := parseIdent("@babel"); err == nil {
		t.Error("expected error for scope without a '/'")
	}
}
