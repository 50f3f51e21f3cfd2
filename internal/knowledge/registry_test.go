package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"cascade/internal/syntax"
)

func TestBuiltinLookups(t *testing.T) {
	r := Default()
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"at-rule", r.IsKnownAtRule, "media", true},
		{"at-rule with sigil", r.IsKnownAtRule, "@Media", true},
		{"vendor at-rule", r.IsKnownAtRule, "-webkit-keyframes", true},
		{"unknown at-rule", r.IsKnownAtRule, "unknown-thing", false},
		{"property", r.IsKnownProperty, "Color", true},
		{"vendor property", r.IsKnownProperty, "-moz-appearance", true},
		{"custom property", r.IsKnownProperty, "--brand", true},
		{"unknown property", r.IsKnownProperty, "colour", false},
		{"pseudo-class", r.IsKnownPseudoClass, "hover", true},
		{"pseudo-element", r.IsKnownPseudoElement, "::before", true},
		{"pseudo-element as class", r.IsKnownPseudoClass, "selection", false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s: %q = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "é" как e + combining acute
	if got := Normalize("cafe\u0301"); got != "caf\u00e9" {
		t.Errorf("Normalize = %q", got)
	}
	if got := Normalize("-webkit-Transition"); got != "transition" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestCustomDataMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	body := `{"version": 1.1,
		"properties": [{"name": "my-prop", "description": "x"}],
		"atDirectives": [{"name": "@tailwind"}],
		"pseudoClasses": [{"name": ":my-state"}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cd, err := LoadCustomData(path)
	if err != nil {
		t.Fatalf("LoadCustomData: %v", err)
	}
	r := NewRegistry(Builtin(), cd)
	if !r.IsKnownAtRule("tailwind") || !r.IsKnownProperty("my-prop") || !r.IsKnownPseudoClass("my-state") {
		t.Error("custom data not merged")
	}
	if e, ok := r.Property("my-prop"); !ok || e.Description != "x" {
		t.Errorf("Property = %+v, %v", e, ok)
	}
	if _, err := LoadCustomData(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestForDialect(t *testing.T) {
	scss := ForDialect(nil, syntax.DialectSCSS)
	if !scss.IsKnownAtRule("mixin") || !scss.IsKnownAtRule("media") {
		t.Error("SCSS oracle should know @mixin and @media")
	}
	css := ForDialect(Default(), syntax.DialectCSS)
	if css.IsKnownAtRule("mixin") {
		t.Error("CSS oracle must not know @mixin")
	}
}
