// Package knowledge answers "is this name known" for properties, at-rules
// and pseudo selectors. Providers supply raw entries; a Registry merges
// them into a read-only Oracle that the parser and the projection consult.
package knowledge

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is one named item a provider knows about.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"` // standard, experimental, nonstandard, obsolete
}

// Provider is a pluggable source of names.
type Provider interface {
	ProvideProperties() []Entry
	ProvideAtDirectives() []Entry
	ProvidePseudoClasses() []Entry
	ProvidePseudoElements() []Entry
}

// Oracle is the read-only lookup surface. Names are given without sigils:
// "media" not "@media", "hover" not ":hover".
type Oracle interface {
	IsKnownAtRule(name string) bool
	IsKnownProperty(name string) bool
	IsKnownPseudoClass(name string) bool
	IsKnownPseudoElement(name string) bool
}

// Normalize folds a name for lookup: NFC, ASCII lowercase, sigils and
// vendor prefix dropped.
func Normalize(name string) string {
	name = strings.TrimLeft(name, "@:")
	if !norm.NFC.IsNormalString(name) {
		name = norm.NFC.String(name)
	}
	name = strings.ToLower(name)
	return stripVendor(name)
}

func stripVendor(name string) string {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return name
	}
	if i := strings.IndexByte(name[1:], '-'); i >= 0 && i+2 < len(name) {
		return name[i+2:]
	}
	return name
}
