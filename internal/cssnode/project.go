package cssnode

import (
	"strings"

	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/knowledge"
	"cascade/internal/syntax"
)

type ProjectOptions struct {
	// Levels overrides diag.DefaultLevel per kind.
	Levels diag.Levels
	// Oracle feeds AuxKnownProperty; nil means knowledge.Default().
	Oracle knowledge.Oracle
}

// Project builds the diagnostic tree of a finished CST and attaches every
// syntax error to the deepest node enclosing it.
func Project(tree *cst.Tree, opts ProjectOptions) *Tree {
	if opts.Oracle == nil {
		opts.Oracle = knowledge.Default()
	}
	pr := &projector{t: New(), opts: opts}
	root := tree.Root()
	pr.t.Root = pr.t.NewNode(TagStylesheet)
	rn := pr.t.Node(pr.t.Root)
	rn.Offset, rn.Length = root.Offset(), root.Len()
	pr.children(root, pr.t.Root, naming{mode: nameNone})

	for _, e := range tree.Errors() {
		msg := e.Message
		if msg == "" {
			msg = e.Kind.Issue().Message
		}
		m := diag.Marker{
			Kind:    e.Kind,
			Level:   opts.Levels.For(e.Kind),
			Message: msg,
			Offset:  e.Offset,
			Length:  e.Length,
		}
		pr.t.AddIssue(pr.t.Enclosing(m.Offset, m.Length), m)
	}
	return pr.t
}

type projector struct {
	t    *Tree
	opts ProjectOptions
}

// nameMode says which direct name tokens of a node become Identifier nodes.
type nameMode uint8

const (
	nameNone  nameMode = iota
	nameFirst          // первый Ident/FunctionToken
	nameAll            // каждый Ident/DollarName (show/hide списки)
)

type naming struct {
	mode nameMode
	refs ReferenceType
}

func namingFor(k syntax.Kind) naming {
	switch k {
	case syntax.Property:
		return naming{nameFirst, RefProperty}
	case syntax.Function:
		return naming{nameFirst, RefFunction}
	case syntax.MixinDeclaration, syntax.MixinReference:
		return naming{nameFirst, RefMixin}
	case syntax.FunctionDeclaration:
		return naming{nameFirst, RefFunction}
	case syntax.ModuleMember, syntax.Use:
		return naming{nameFirst, RefModule}
	case syntax.Forward:
		return naming{nameFirst, RefForward}
	case syntax.ForwardVisibility:
		return naming{nameAll, RefForwardVisibility}
	}
	return naming{}
}

// refsOf classifies an Identifier node of the CST by its nearest mapped ancestor.
func refsOf(n *cst.Node) ReferenceType {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case syntax.Keyframes:
			return RefKeyframe
		case syntax.Layer, syntax.Container, syntax.ImportOptions:
			return RefUnknown
		case syntax.ExtendDirective:
			return RefRule
		}
		if _, mapped := tagOf[p.Kind()]; mapped {
			return 0
		}
	}
	return 0
}

// children projects the children of n under parent and reports whether n
// ends without closing a delimiter it opened.
func (pr *projector) children(n *cst.Node, parent NodeID, nm naming) bool {
	open := false
	lastNodeOpen := false
	named := false
	var pendingSemi NodeID
	for e := range n.ChildrenWithTokens() {
		if tok := e.Token; tok != nil {
			k := tok.Kind()
			if k.IsTrivia() {
				continue
			}
			switch k {
			case syntax.LBrace, syntax.LParen, syntax.LBracket, syntax.HashLBrace, syntax.AtLBrace:
				open = true
			case syntax.RBrace, syntax.RParen, syntax.RBracket:
				open = false
			case syntax.Semicolon:
				if pendingSemi != NoNode {
					pr.t.SetAux(pendingSemi, AuxData{Kind: AuxSemicolonOffset, Offset: tok.Offset()})
				}
			}
			pendingSemi = NoNode
			lastNodeOpen = false
			if nm.mode == nameAll || (nm.mode == nameFirst && !named) {
				if k == syntax.Ident || k == syntax.FunctionToken || (nm.mode == nameAll && k == syntax.DollarName) {
					pr.identifier(tok, parent, nm.refs)
					named = true
				}
			}
			continue
		}
		id, childOpen := pr.node(e.Node, parent)
		lastNodeOpen = childOpen
		pendingSemi = NoNode
		if id != NoNode {
			switch pr.t.Node(id).Type.Tag {
			case TagDeclaration, TagCustomPropertyDeclaration, TagVariableDeclaration:
				pendingSemi = id
			}
		}
	}
	return open || lastNodeOpen
}

// node projects one CST node. Unmapped kinds are hoisted and yield NoNode.
func (pr *projector) node(c *cst.Node, parent NodeID) (NodeID, bool) {
	tag, ok := tagOf[c.Kind()]
	if !ok {
		return NoNode, pr.children(c, parent, namingFor(c.Kind()))
	}
	id := pr.t.NewNode(tag)
	n := pr.t.Node(id)
	n.Offset, n.Length = c.Offset(), c.Len()
	if tag == TagIdentifier {
		n.Type.Refs = refsOf(c)
	}
	pr.t.AddChild(parent, id)
	pr.annotate(c, id)
	open := pr.children(c, id, namingFor(c.Kind()))
	pr.t.Node(id).openEnd = open
	return id, open
}

func (pr *projector) identifier(tok *cst.Token, parent NodeID, refs ReferenceType) {
	id := pr.t.NewNode(TagIdentifier)
	n := pr.t.Node(id)
	n.Offset, n.Length = tok.Offset(), tok.Len()
	n.Type.Refs = refs
	n.Type.CustomProperty = refs == RefProperty && strings.HasPrefix(tok.Text(), "--")
	pr.t.AddChild(parent, id)
}

func (pr *projector) annotate(c *cst.Node, id NodeID) {
	switch c.Kind() {
	case syntax.Property:
		name, ok := plainName(c)
		if !ok || strings.HasPrefix(name, "--") {
			return
		}
		if vp := syntax.VendorPrefix(name); vp != "" {
			pr.t.SetAux(id, AuxData{Kind: AuxVendorPrefix, Name: vp})
		}
		pr.t.SetAux(id, AuxData{Kind: AuxKnownProperty, Flag: pr.opts.Oracle.IsKnownProperty(name)})
	case syntax.CustomPropertyDeclaration:
		if p := c.ChildOfKind(syntax.Property); p != nil {
			pr.t.SetAux(id, AuxData{Kind: AuxCustomProperty, Name: strings.TrimSpace(p.Text())})
		}
	case syntax.VariableRef:
		pr.t.SetAux(id, AuxData{Kind: AuxReferences, Name: c.Text()})
	case syntax.MixinReference:
		if name := mixinName(c); name != "" {
			pr.t.SetAux(id, AuxData{Kind: AuxReferences, Name: name})
		}
	case syntax.ExtendDirective:
		for ch := range c.Children() {
			if ch.Kind() == syntax.SelectorList || ch.Kind() == syntax.Selector {
				pr.t.SetAux(id, AuxData{Kind: AuxReferences, Name: ch.Text()})
				break
			}
		}
	}
}

// plainName returns the property name when it has no interpolation.
// The IE star hack ("*zoom") is dropped.
func plainName(c *cst.Node) (string, bool) {
	var b strings.Builder
	for e := range c.ChildrenWithTokens() {
		if e.Node != nil {
			return "", false
		}
		if e.Token.Kind().IsTrivia() {
			continue
		}
		b.WriteString(e.Token.Text())
	}
	return strings.TrimPrefix(b.String(), "*"), b.Len() > 0
}

// mixinName joins the name path of a mixin call: "mx", "ns.mx", "#ns>.m".
func mixinName(c *cst.Node) string {
	var b strings.Builder
scan:
	for e := range c.ChildrenWithTokens() {
		if e.Node != nil {
			break
		}
		switch k := e.Token.Kind(); {
		case k.IsTrivia(), k == syntax.AtKeyword:
		case k == syntax.Ident, k == syntax.FunctionToken, k == syntax.HashToken, k == syntax.Dot, k == syntax.Gt:
			b.WriteString(e.Token.Text())
		default:
			break scan
		}
	}
	return b.String()
}
