package model

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the concrete Object variant.
type Kind uint8

const (
	KindURI Kind = iota
	KindLiteral
	KindBlankNode
	KindUnknown
)

// String returns the short label used in diagrams.
func (k Kind) String() string {
	switch k {
	case KindURI:
		return "URI"
	case KindLiteral:
		return "Literal"
	case KindBlankNode:
		return "BN"
	default:
		return "N/A"
	}
}

// Object is the target of a Predicate edge.
//
// This is a sealed interface - only types in this package implement it:
// *URI, *Literal, *BlankNode and *Unknown.
type Object interface {
	// Name is the variable name the object binds, or "" for bare values
	// such as rdf:type classes.
	Name() string
	// Value is the raw example value text ("" for BlankNode and Unknown).
	Value() string
	Kind() Kind
	IsURI() bool
	IsLiteral() bool
	IsBlankNode() bool

	objectNode() // Marker method - seals interface to this package
}

type objectBase struct {
	name  string
	value string
}

func (o objectBase) Name() string      { return o.name }
func (o objectBase) Value() string     { return o.value }
func (o objectBase) IsURI() bool       { return false }
func (o objectBase) IsLiteral() bool   { return false }
func (o objectBase) IsBlankNode() bool { return false }
func (o objectBase) objectNode()       {}

// URI is an IRI-valued object: <...> or prefix:local.
type URI struct{ objectBase }

func (*URI) Kind() Kind  { return KindURI }
func (*URI) IsURI() bool { return true }

// Literal is a value object with an inferred datatype.
type Literal struct {
	objectBase
	dataType string
}

func (*Literal) Kind() Kind      { return KindLiteral }
func (*Literal) IsLiteral() bool { return true }

// DataType returns String, Int, Float, Boolean, a title-cased xsd local
// name (Date, Datetime, ...) or a non-xsd datatype as prefix:local.
func (l *Literal) DataType() string { return l.dataType }

// BlankNode is an anonymous node reached through a predicate.
type BlankNode struct {
	objectBase
	subject *Subject
}

func (*BlankNode) Kind() Kind        { return KindBlankNode }
func (*BlankNode) IsBlankNode() bool { return true }

// Subject returns the nested anonymous subject.
func (b *BlankNode) Subject() *Subject { return b.subject }

// Unknown is a variable without an example value. It only serves as a
// query output placeholder.
type Unknown struct{ objectBase }

func (*Unknown) Kind() Kind { return KindUnknown }

// Data type labels for literals.
const (
	DataTypeString  = "String"
	DataTypeInt     = "Int"
	DataTypeFloat   = "Float"
	DataTypeBoolean = "Boolean"
)

var typedLiteralPattern = regexp.MustCompile(`\^\^(\w+):(.+)$`)

var titleCaser = cases.Title(language.Und)

// dataTypeOfString infers the datatype of a string literal from a
// trailing ^^prefix:local annotation.
func dataTypeOfString(value string) string {
	m := typedLiteralPattern.FindStringSubmatch(value)
	if m == nil {
		return DataTypeString
	}
	prefix, local := m[1], m[2]
	if prefix != "xsd" {
		return prefix + ":" + local
	}
	switch local {
	case "string":
		return DataTypeString
	case "integer":
		return DataTypeInt
	default:
		return titleCaser.String(local)
	}
}
