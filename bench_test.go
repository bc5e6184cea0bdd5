// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree_test

import (
	"fmt"
	"testing"

	"github.com/creachadair/evtree"
)

// benchEvents constructs the events of a document holding a sequence of n
// small mappings, each nested depth levels deep.
func benchEvents(n, depth int) []evtree.Event {
	ev := func(k evtree.Kind) evtree.Event { return evtree.Event{Kind: k} }
	sc := func(s string) evtree.Event { return evtree.Event{Kind: evtree.Scalar, Value: []byte(s)} }

	out := []evtree.Event{ev(evtree.StreamStart), ev(evtree.DocumentStart), ev(evtree.SequenceStart)}
	for i := range n {
		out = append(out, ev(evtree.MappingStart))
		for d := range depth {
			out = append(out, sc("id"), sc(fmt.Sprint(i)), sc(fmt.Sprintf("level%d", d)), ev(evtree.MappingStart))
		}
		out = append(out, sc("leaf"), sc("value"))
		for range depth + 1 {
			out = append(out, ev(evtree.MappingEnd))
		}
	}
	return append(out, ev(evtree.SequenceEnd), ev(evtree.DocumentEnd), ev(evtree.StreamEnd))
}

func BenchmarkBuild(b *testing.B) {
	input := benchEvents(1000, 8)
	b.Logf("Benchmark input: %d events", len(input))

	b.Run("Build", func(b *testing.B) {
		for b.Loop() {
			tree, err := evtree.Build(evtree.SliceSource(input))
			if err != nil {
				b.Fatalf("Build failed: %v", err)
			}
			tree.Close()
		}
	})

	tree, err := evtree.Build(evtree.SliceSource(input))
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	defer tree.Close()

	b.Run("Emit", func(b *testing.B) {
		sink := evtree.SinkFunc(func(evtree.Event) error { return nil })
		for b.Loop() {
			if err := tree.Emit(sink); err != nil {
				b.Fatalf("Emit failed: %v", err)
			}
		}
	})

	b.Run("Navigate", func(b *testing.B) {
		seq := tree.Document(0)
		for b.Loop() {
			if seq.Child(999).ChildNamed("level0").ChildNamed("id").Text() != "999" {
				b.Fatal("Lookup failed")
			}
		}
	})
}
