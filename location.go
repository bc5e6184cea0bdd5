// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text. The zero value means the position is not known.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// IsZero reports whether lc is the zero position.
func (lc LineCol) IsZero() bool { return lc.Line == 0 && lc.Column == 0 }

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets. Event sources that do not track
// positions leave it zero.
type Location struct {
	Span
	First, Last LineCol
}
