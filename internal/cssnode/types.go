package cssnode

import "cascade/internal/syntax"

// Tag is the node type discriminant. It is a reduced view of the CST node
// kinds: wrappers that carry no meaning of their own (preludes, argument
// lists, parameter lists) are not represented.
type Tag uint8

const (
	TagUndefined Tag = iota
	TagStylesheet
	TagRuleset
	TagSelector
	TagSimpleSelector
	TagElementNameSelector
	TagClassSelector
	TagIdentifierSelector
	TagAttributeSelector
	TagPseudoSelector
	TagSelectorCombinator
	TagNestingSelector
	TagPlaceholderSelector
	TagDeclarations
	TagDeclaration
	TagCustomPropertyDeclaration
	TagCustomPropertyValue
	TagProperty
	TagPrio
	TagExpression
	TagTerm
	TagOperator
	TagFunction
	TagIdentifier
	TagNumericValue
	TagHexColorValue
	TagStringLiteral
	TagURILiteral
	TagUnicodeRange
	TagRatioValue
	TagGenericAtRule
	TagUnknownAtRule
	TagCharset
	TagImport
	TagNamespace
	TagMedia
	TagMediaQuery
	TagMediaCondition
	TagMediaFeature
	TagSupports
	TagSupportsCondition
	TagFontFace
	TagKeyframe
	TagKeyframeSelector
	TagPage
	TagPageBoxMarginBox
	TagLayer
	TagContainer
	TagPropertyAtRule
	TagVariableDeclaration
	TagVariableName
	TagVariableRef
	TagInterpolation
	TagMixinDeclaration
	TagMixinReference
	TagFunctionParameter
	TagExtendsReference
	TagMixinContentReference
	TagFunctionDeclaration
	TagReturnStatement
	TagIf
	TagElse
	TagEach
	TagFor
	TagWhile
	TagUse
	TagForward
	TagForwardVisibility
	TagModuleConfiguration
	TagAtRoot
	TagDebug
	TagNestedProperties
	TagModuleMember
	TagEscapedValue
	TagGuard
	TagGuardCondition
	TagPlugin
	TagDetachedRuleset
	TagDetachedRulesetCall
	tagCount
)

var tagNames = [tagCount]string{
	TagUndefined:                 "Undefined",
	TagStylesheet:                "Stylesheet",
	TagRuleset:                   "Ruleset",
	TagSelector:                  "Selector",
	TagSimpleSelector:            "SimpleSelector",
	TagElementNameSelector:       "ElementNameSelector",
	TagClassSelector:             "ClassSelector",
	TagIdentifierSelector:        "IdentifierSelector",
	TagAttributeSelector:         "AttributeSelector",
	TagPseudoSelector:            "PseudoSelector",
	TagSelectorCombinator:        "SelectorCombinator",
	TagNestingSelector:           "NestingSelector",
	TagPlaceholderSelector:       "PlaceholderSelector",
	TagDeclarations:              "Declarations",
	TagDeclaration:               "Declaration",
	TagCustomPropertyDeclaration: "CustomPropertyDeclaration",
	TagCustomPropertyValue:       "CustomPropertyValue",
	TagProperty:                  "Property",
	TagPrio:                      "Prio",
	TagExpression:                "Expression",
	TagTerm:                      "Term",
	TagOperator:                  "Operator",
	TagFunction:                  "Function",
	TagIdentifier:                "Identifier",
	TagNumericValue:              "NumericValue",
	TagHexColorValue:             "HexColorValue",
	TagStringLiteral:             "StringLiteral",
	TagURILiteral:                "URILiteral",
	TagUnicodeRange:              "UnicodeRange",
	TagRatioValue:                "RatioValue",
	TagGenericAtRule:             "GenericAtRule",
	TagUnknownAtRule:             "UnknownAtRule",
	TagCharset:                   "Charset",
	TagImport:                    "Import",
	TagNamespace:                 "Namespace",
	TagMedia:                     "Media",
	TagMediaQuery:                "MediaQuery",
	TagMediaCondition:            "MediaCondition",
	TagMediaFeature:              "MediaFeature",
	TagSupports:                  "Supports",
	TagSupportsCondition:         "SupportsCondition",
	TagFontFace:                  "FontFace",
	TagKeyframe:                  "Keyframe",
	TagKeyframeSelector:          "KeyframeSelector",
	TagPage:                      "Page",
	TagPageBoxMarginBox:          "PageBoxMarginBox",
	TagLayer:                     "Layer",
	TagContainer:                 "Container",
	TagPropertyAtRule:            "PropertyAtRule",
	TagVariableDeclaration:       "VariableDeclaration",
	TagVariableName:              "VariableName",
	TagVariableRef:               "VariableRef",
	TagInterpolation:             "Interpolation",
	TagMixinDeclaration:          "MixinDeclaration",
	TagMixinReference:            "MixinReference",
	TagFunctionParameter:         "FunctionParameter",
	TagExtendsReference:          "ExtendsReference",
	TagMixinContentReference:     "MixinContentReference",
	TagFunctionDeclaration:       "FunctionDeclaration",
	TagReturnStatement:           "ReturnStatement",
	TagIf:                        "If",
	TagElse:                      "Else",
	TagEach:                      "Each",
	TagFor:                       "For",
	TagWhile:                     "While",
	TagUse:                       "Use",
	TagForward:                   "Forward",
	TagForwardVisibility:         "ForwardVisibility",
	TagModuleConfiguration:       "ModuleConfiguration",
	TagAtRoot:                    "AtRoot",
	TagDebug:                     "Debug",
	TagNestedProperties:          "NestedProperties",
	TagModuleMember:              "ModuleMember",
	TagEscapedValue:              "EscapedValue",
	TagGuard:                     "Guard",
	TagGuardCondition:            "GuardCondition",
	TagPlugin:                    "Plugin",
	TagDetachedRuleset:           "DetachedRuleset",
	TagDetachedRulesetCall:       "DetachedRulesetCall",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return "Tag(?)"
}

// tagOf maps CST node kinds onto tags. Kinds missing here are hoisted:
// their children are attached to the nearest mapped ancestor.
var tagOf = map[syntax.Kind]Tag{
	syntax.SourceFile:                TagStylesheet,
	syntax.Error:                     TagUndefined,
	syntax.RuleSet:                   TagRuleset,
	syntax.Selector:                  TagSelector,
	syntax.CompoundSelector:          TagSimpleSelector,
	syntax.TypeSelector:              TagElementNameSelector,
	syntax.UniversalSelector:         TagElementNameSelector,
	syntax.ClassSelector:             TagClassSelector,
	syntax.IdSelector:                TagIdentifierSelector,
	syntax.AttributeSelector:         TagAttributeSelector,
	syntax.PseudoClass:               TagPseudoSelector,
	syntax.PseudoElement:             TagPseudoSelector,
	syntax.Combinator:                TagSelectorCombinator,
	syntax.NestingSelector:           TagNestingSelector,
	syntax.PlaceholderSelector:       TagPlaceholderSelector,
	syntax.Block:                     TagDeclarations,
	syntax.Declaration:               TagDeclaration,
	syntax.CustomPropertyDeclaration: TagCustomPropertyDeclaration,
	syntax.CustomPropertyValue:       TagCustomPropertyValue,
	syntax.Property:                  TagProperty,
	syntax.Prio:                      TagPrio,
	syntax.Expression:                TagExpression,
	syntax.Term:                      TagTerm,
	syntax.Operator:                  TagOperator,
	syntax.Function:                  TagFunction,
	syntax.Identifier:                TagIdentifier,
	syntax.NumericValue:              TagNumericValue,
	syntax.HexColorValue:             TagHexColorValue,
	syntax.StringLiteral:             TagStringLiteral,
	syntax.UrlValue:                  TagURILiteral,
	syntax.UnicodeRangeValue:         TagUnicodeRange,
	syntax.Ratio:                     TagRatioValue,
	syntax.AtRule:                    TagGenericAtRule,
	syntax.UnknownAtRule:             TagUnknownAtRule,
	syntax.Charset:                   TagCharset,
	syntax.Import:                    TagImport,
	syntax.Namespace:                 TagNamespace,
	syntax.Media:                     TagMedia,
	syntax.MediaQuery:                TagMediaQuery,
	syntax.MediaCondition:            TagMediaCondition,
	syntax.MediaFeature:              TagMediaFeature,
	syntax.Supports:                  TagSupports,
	syntax.SupportsCondition:         TagSupportsCondition,
	syntax.FontFace:                  TagFontFace,
	syntax.Keyframes:                 TagKeyframe,
	syntax.KeyframeBlock:             TagRuleset,
	syntax.KeyframeSelector:          TagKeyframeSelector,
	syntax.Page:                      TagPage,
	syntax.PageMarginBox:             TagPageBoxMarginBox,
	syntax.Layer:                     TagLayer,
	syntax.LayerName:                 TagIdentifier,
	syntax.Container:                 TagContainer,
	syntax.PropertyAtRule:            TagPropertyAtRule,
	syntax.VariableDeclaration:       TagVariableDeclaration,
	syntax.VariableName:              TagVariableName,
	syntax.VariableRef:               TagVariableRef,
	syntax.Interpolation:             TagInterpolation,
	syntax.MixinDeclaration:          TagMixinDeclaration,
	syntax.MixinReference:            TagMixinReference,
	syntax.Parameter:                 TagFunctionParameter,
	syntax.ExtendDirective:           TagExtendsReference,
	syntax.ContentDirective:          TagMixinContentReference,
	syntax.FunctionDeclaration:       TagFunctionDeclaration,
	syntax.ReturnStatement:           TagReturnStatement,
	syntax.IfStatement:               TagIf,
	syntax.ElseClause:                TagElse,
	syntax.EachStatement:             TagEach,
	syntax.ForStatement:              TagFor,
	syntax.WhileStatement:            TagWhile,
	syntax.Use:                       TagUse,
	syntax.Forward:                   TagForward,
	syntax.ForwardVisibility:         TagForwardVisibility,
	syntax.ModuleConfig:              TagModuleConfiguration,
	syntax.AtRoot:                    TagAtRoot,
	syntax.DebugDirective:            TagDebug,
	syntax.NestedProperties:          TagNestedProperties,
	syntax.ModuleMember:              TagModuleMember,
	syntax.EscapedValue:              TagEscapedValue,
	syntax.Guard:                     TagGuard,
	syntax.GuardCondition:            TagGuardCondition,
	syntax.Plugin:                    TagPlugin,
	syntax.DetachedRuleset:           TagDetachedRuleset,
	syntax.DetachedRulesetCall:       TagDetachedRulesetCall,
}

// ReferenceType classifies what an identifier names.
type ReferenceType uint16

const (
	RefMixin ReferenceType = 1 << iota
	RefRule
	RefVariable
	RefFunction
	RefKeyframe
	RefUnknown
	RefModule
	RefForward
	RefForwardVisibility
	RefProperty
)

// Has reports whether every bit of o is set.
func (r ReferenceType) Has(o ReferenceType) bool {
	return o != 0 && r&o == o
}

// NodeType is the tag plus the sub-data only identifiers carry.
type NodeType struct {
	Tag            Tag
	Refs           ReferenceType
	CustomProperty bool
}

// SameShape compares discriminants only: two identifiers are the same
// shape whatever they reference.
func (t NodeType) SameShape(o NodeType) bool {
	return t.Tag == o.Tag
}

func (t NodeType) String() string {
	return t.Tag.String()
}
