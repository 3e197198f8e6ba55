package semver

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	v, err := Parse("1.2.3")
	if err != nil {
		t.Fatalf("parse 1.2.3: %v", err)
	}
	if v != (Version{Major: 1, Minor: 2, Patch: 3}) {
		t.Fatalf("unexpected version: %+v", v)
	}
	if got := v.String(); got != "1.2.3" {
		t.Fatalf("expected round trip 1.2.3, got %q", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "1", "1.2", "1.2.x", "a.b.c", "1.2.3-rc1", "-1.2.3", "1.2.3.4", "1.02.3"} {
		if _, err := Parse(input); err == nil {
			t.Fatalf("expected parse error for %q", input)
		}
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		kind Kind
		want Version
	}{
		{Major, Version{Major: 2}},
		{Minor, Version{Major: 1, Minor: 3}},
		{Patch, Version{Major: 1, Minor: 2, Patch: 4}},
	}
	base := Version{Major: 1, Minor: 2, Patch: 3}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := base.Bump(tt.kind)
			if err != nil {
				t.Fatalf("bump %s: %v", tt.kind, err)
			}
			if got != tt.want {
				t.Fatalf("bump %s: expected %s, got %s", tt.kind, tt.want, got)
			}
		})
	}
	if base != (Version{Major: 1, Minor: 2, Patch: 3}) {
		t.Fatalf("bump mutated receiver: %+v", base)
	}
}

func TestBumpInvalidKind(t *testing.T) {
	if _, err := (Version{}).Bump("bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"major", "minor", "patch"} {
		kind, err := ParseKind(valid)
		if err != nil {
			t.Fatalf("parse kind %q: %v", valid, err)
		}
		if string(kind) != valid {
			t.Fatalf("expected kind %q, got %q", valid, kind)
		}
	}
	if _, err := ParseKind("bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}
