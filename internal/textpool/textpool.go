// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package textpool provides a batching allocator for small byte strings.
//
// Event sources copy every scalar payload out of their decoder's buffers.
// Copying each payload into its own allocation is wasteful when most of them
// are a handful of bytes, so a Pool packs copies into shared blocks. A block
// is retained as long as any copy carved from it is reachable.
package textpool

const (
	defaultBlockBytes = 16384
	smallSizeFraction = 16
	minBlockSlop      = 4
)

// A Pool allocates copies of byte strings from shared blocks. A zero Pool is
// ready for use with the default block size. A Pool is not safe for
// concurrent use without external synchronization.
type Pool struct {
	blocks    [][]byte
	blockSize int
}

// New constructs a Pool that allocates blocks of n bytes. If n ≤ 0, a
// default size is used.
func New(n int) *Pool {
	if n <= 0 {
		n = defaultBlockBytes
	}
	return &Pool{blockSize: n}
}

func (p *Pool) size() int {
	if p.blockSize <= 0 {
		return defaultBlockBytes
	}
	return p.blockSize
}

// Copy returns a copy of text. The capacity of the result equals its length,
// so appending to it does not disturb other copies in the same block. Copy
// returns nil if text is empty.
func (p *Pool) Copy(text []byte) []byte {
	if len(text) == 0 {
		return nil
	}
	bs := p.size()

	// Values larger than a fraction of the block get their own allocation.
	if len(text) >= bs/smallSizeFraction {
		return append([]byte(nil), text...)
	}

	i := 0
	for i < len(p.blocks) {
		if len(p.blocks[i])+len(text) <= cap(p.blocks[i]) {
			break
		} else if cap(p.blocks[i])-len(p.blocks[i]) < minBlockSlop {
			// Nearly full; replace it. Existing copies keep the old block alive.
			p.blocks[i] = make([]byte, 0, bs)
			break
		}
		i++
	}
	if i == len(p.blocks) {
		p.blocks = append(p.blocks, make([]byte, 0, bs))
	}
	pos := len(p.blocks[i])
	p.blocks[i] = append(p.blocks[i], text...)
	return p.blocks[i][pos : pos+len(text) : pos+len(text)]
}

// CopyString returns a copy of s as a byte slice, as Copy.
func (p *Pool) CopyString(s string) []byte {
	if s == "" {
		return nil
	}
	return p.Copy([]byte(s))
}

// Blocks reports the number of shared blocks currently held by p.
func (p *Pool) Blocks() int { return len(p.blocks) }
