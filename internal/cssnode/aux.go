package cssnode

// AuxKind is the tag of an auxiliary annotation.
type AuxKind uint8

const (
	// AuxReferences: the name a reference node points at (variable, mixin,
	// extended selector).
	AuxReferences AuxKind = iota + 1
	// AuxCustomProperty: the declared custom property name.
	AuxCustomProperty
	// AuxVendorPrefix: "-webkit-" etc. of a property.
	AuxVendorPrefix
	// AuxKnownProperty: Flag says whether the knowledge oracle knows the property.
	AuxKnownProperty
	// AuxSemicolonOffset: offset of the ';' that terminates a declaration.
	AuxSemicolonOffset
)

func (k AuxKind) String() string {
	switch k {
	case AuxReferences:
		return "references"
	case AuxCustomProperty:
		return "custom-property"
	case AuxVendorPrefix:
		return "vendor-prefix"
	case AuxKnownProperty:
		return "known-property"
	case AuxSemicolonOffset:
		return "semicolon-offset"
	}
	return "aux(?)"
}

// AuxData is one annotation. Which payload field is meaningful depends on
// Kind: Name for references, custom property and vendor prefix, Flag for
// known-property, Offset for semicolon-offset.
type AuxData struct {
	Kind   AuxKind
	Name   string
	Flag   bool
	Offset int
}

// SetAux stores d on id, replacing an annotation of the same kind.
func (t *Tree) SetAux(id NodeID, d AuxData) {
	n := t.Node(id)
	if n == nil {
		return
	}
	for i := range n.Aux {
		if n.Aux[i].Kind == d.Kind {
			n.Aux[i] = d
			return
		}
	}
	n.Aux = append(n.Aux, d)
}

// Aux returns the annotation of kind k on id.
func (t *Tree) Aux(id NodeID, k AuxKind) (AuxData, bool) {
	n := t.Node(id)
	if n == nil {
		return AuxData{}, false
	}
	for _, d := range n.Aux {
		if d.Kind == k {
			return d, true
		}
	}
	return AuxData{}, false
}
