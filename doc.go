// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package evtree assembles streams of structural events into trees, and
// linearizes trees back into event streams.
//
// # Events
//
// An Event is one structural token of a markup document, of the kind a
// streaming YAML or JSON tokenizer reports:
//
//	Kind                          | Description
//	----------------------------- | ---------------------------------
//	StreamStart, StreamEnd        | the whole input
//	DocumentStart, DocumentEnd    | one document
//	MappingStart, MappingEnd      | { key: value, ... }
//	SequenceStart, SequenceEnd    | [ value, ... ]
//	Scalar                        | a leaf value, or a mapping key
//	Alias                         | *name (not supported)
//
// Events are pulled from a Source and pushed to a Sink. The yamlevent and
// jsonevent packages provide sources and sinks for YAML and JSON text.
//
// # Building
//
// Construct a Builder from a Source and call its Build method. Build
// consumes events until the stream is complete, and returns the tree:
//
//	tree, err := evtree.NewBuilder(src).Build()
//	if err != nil {
//	   log.Fatalf("Build failed: %v", err)
//	}
//	defer tree.Close()
//
// Build checks that the events are well-formed: every start has a matching
// end of the same kind, each document has at most one value, and mapping
// entries come in key-value pairs. A failure of the source is reported as an
// error of concrete type *evtree.SourceError; events in an unacceptable order
// are reported as *evtree.GrammarError. If Build fails, no partial tree is
// returned, and every event already pulled from the source is released.
//
// # Navigating
//
// A Tree is made of Nodes. The root node holds the documents, and each
// document holds its value. A mapping entry is a single node that carries
// both its key and its value, so a mapping's children are its entries:
//
//	doc := tree.Document(0)
//	name := doc.ChildNamed("name").Text()
//	age, ok := doc.ChildNamed("data").ChildNamed("age").Value()
//	first := doc.ChildNamed("scores").Child(0)
//
// Methods that look for a node return nil when nothing is found, and the
// methods of a nil *Node report empty results, so lookups may be chained.
// See also the cursor package for path-based traversal.
//
// # Emitting
//
// The Emit method of a Tree or Node delivers its events to a Sink, in an
// order that reproduces the original stream. The Debug method renders the
// same events with their nesting depth to a DebugSink; see package debug.
//
// # Resources
//
// Each event pulled by a Builder is owned by the tree until the tree is
// closed, at which point it is reported to the Releaser configured on the
// Builder. A tree is closed by calling its Close method; Close walks the tree
// iteratively, so arbitrarily deep trees may be discarded safely.
package evtree
