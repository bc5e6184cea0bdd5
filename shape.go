// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import "fmt"

// Shape identifies the structural role of a node, determined by which events
// it holds.
//
//	Shape         | Key    | Head           | Tail
//	------------- | ------ | -------------- | -------------
//	Root          |        | stream-start   | stream-end
//	Document      |        | document-start | document-end
//	BareScalar    |        | scalar         |
//	NamedScalar   | scalar | scalar         |
//	BareMapping   |        | mapping-start  | mapping-end
//	NamedMapping  | scalar | mapping-start  | mapping-end
//	BareSequence  |        | sequence-start | sequence-end
//	NamedSequence | scalar | sequence-start | sequence-end
//
// A Named shape is a mapping entry whose key is held by the node itself; the
// children of a NamedMapping or NamedSequence are the entries or elements of
// its value. A Bare shape is an unnamed value, a sequence element or the root
// value of a document.
type Shape byte

// Constants defining the valid Shape values.
const (
	ShapeInvalid Shape = iota // not a valid node
	Root                      // the stream; children are documents
	Document                  // a document; at most one child, its root value
	BareScalar                // a scalar value
	NamedScalar               // a mapping entry with a scalar value
	BareMapping               // a mapping value; children are its entries
	NamedMapping              // a mapping entry with a mapping value
	BareSequence              // a sequence value; children are its elements
	NamedSequence             // a mapping entry with a sequence value
)

var shapeStr = [...]string{
	ShapeInvalid:  "none",
	Root:          "root",
	Document:      "document",
	BareScalar:    "scalar",
	NamedScalar:   "named scalar",
	BareMapping:   "mapping",
	NamedMapping:  "named mapping",
	BareSequence:  "sequence",
	NamedSequence: "named sequence",
}

func (s Shape) String() string {
	v := int(s)
	if v >= len(shapeStr) {
		return fmt.Sprintf("shape(%d)", v)
	}
	return shapeStr[v]
}

// IsNamed reports whether s is the shape of a mapping entry.
func (s Shape) IsNamed() bool {
	return s == NamedScalar || s == NamedMapping || s == NamedSequence
}

// isScalar reports whether s is a leaf shape, having no closing event.
func (s Shape) isScalar() bool { return s == BareScalar || s == NamedScalar }

// isSequence reports whether s is a shape whose children are elements.
func (s Shape) isSequence() bool { return s == BareSequence || s == NamedSequence }

// isMapping reports whether s is a shape whose children are entries.
func (s Shape) isMapping() bool { return s == BareMapping || s == NamedMapping }

// Type is the logical type of a node's value.
type Type byte

// Constants defining the valid Type values.
const (
	NoType       Type = iota // no value (nil or closed node)
	ScalarType               // a scalar
	MappingType              // a mapping
	SequenceType             // a sequence
)

var typeStr = [...]string{
	NoType:       "none",
	ScalarType:   "scalar",
	MappingType:  "mapping",
	SequenceType: "sequence",
}

func (t Type) String() string {
	v := int(t)
	if v >= len(typeStr) {
		return fmt.Sprintf("type(%d)", v)
	}
	return typeStr[v]
}
