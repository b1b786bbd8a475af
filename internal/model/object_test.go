package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeOfString(t *testing.T) {
	tests := map[string]string{
		"plain":                  DataTypeString,
		"x^^xsd:string":          DataTypeString,
		"1^^xsd:integer":         DataTypeInt,
		"2004-02-10^^xsd:date":   "Date",
		"1.5^^xsd:decimal":       "Decimal",
		"A1^^ex:code":            "ex:code",
		"no^^marker":             DataTypeString,
		"http://example.org/^^x": DataTypeString,
	}
	for value, want := range tests {
		assert.Equal(t, want, dataTypeOfString(value), value)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "URI", KindURI.String())
	assert.Equal(t, "Literal", KindLiteral.String())
	assert.Equal(t, "BN", KindBlankNode.String())
	assert.Equal(t, "N/A", KindUnknown.String())
}

func TestObjectVariants(t *testing.T) {
	objects := []Object{
		&URI{objectBase{name: "u", value: "ex:u"}},
		&Literal{objectBase: objectBase{name: "l", value: "x"}, dataType: DataTypeString},
		&BlankNode{subject: &Subject{blank: true}},
		&Unknown{objectBase{name: "n"}},
	}

	for _, o := range objects {
		switch v := o.(type) {
		case *URI:
			assert.True(t, v.IsURI())
			assert.False(t, v.IsLiteral())
		case *Literal:
			assert.True(t, v.IsLiteral())
			assert.False(t, v.IsBlankNode())
		case *BlankNode:
			assert.True(t, v.IsBlankNode())
			assert.True(t, v.Subject().IsBlankNode())
		case *Unknown:
			assert.False(t, v.IsURI() || v.IsLiteral() || v.IsBlankNode())
			assert.Equal(t, "n", v.Name())
		default:
			t.Fatalf("unexpected object type %T", o)
		}
	}
}
