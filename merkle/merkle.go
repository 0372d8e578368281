// Package merkle builds binary hash trees over ordered leaf hashes.
//
// Levels are built eagerly at construction. Each level pairs adjacent nodes
// (i, i+1); an odd trailing node is paired with itself. A single leaf
// therefore yields a root of H(leaf || leaf). Trees are immutable.
package merkle

import (
	"forme.dev/groups/hashing"
)

// EmptyRoot is the root of a tree with no leaves.
var EmptyRoot = hashing.Hash{}

type Option func(*Tree)

// WithHasher selects the hasher used for interior nodes.
func WithHasher(h hashing.Hasher) Option {
	return func(t *Tree) { t.hasher = h }
}

// Tree is an immutable Merkle tree.
type Tree struct {
	hasher hashing.Hasher
	levels [][]hashing.Hash
	index  map[hashing.Hash]int
}

// New builds a tree over leaves. The leaves slice is copied.
func New(leaves []hashing.Hash, opts ...Option) *Tree {
	t := &Tree{}
	for _, o := range opts {
		o(t)
	}
	if len(leaves) == 0 {
		return t
	}

	level := append([]hashing.Hash(nil), leaves...)
	t.index = make(map[hashing.Hash]int, len(level))
	for i := len(level) - 1; i >= 0; i-- {
		t.index[level[i]] = i
	}
	t.levels = append(t.levels, level)

	if len(level) == 1 {
		t.levels = append(t.levels, []hashing.Hash{t.hasher.Pair(level[0], level[0])})
		return t
	}
	for len(level) > 1 {
		level = t.hashLevel(level)
		t.levels = append(t.levels, level)
	}
	return t
}

func (t *Tree) hashLevel(level []hashing.Hash) []hashing.Hash {
	out := make([]hashing.Hash, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		right := level[i]
		if i+1 < len(level) {
			right = level[i+1]
		}
		out = append(out, t.hasher.Pair(level[i], right))
	}
	return out
}

// Root returns the tree root, or EmptyRoot when the tree has no leaves.
func (t *Tree) Root() hashing.Hash {
	if len(t.levels) == 0 {
		return EmptyRoot
	}
	return t.levels[len(t.levels)-1][0]
}

// Leaves returns a copy of the leaf level.
func (t *Tree) Leaves() []hashing.Hash {
	if len(t.levels) == 0 {
		return nil
	}
	return append([]hashing.Hash(nil), t.levels[0]...)
}

func (t *Tree) Len() int {
	if len(t.levels) == 0 {
		return 0
	}
	return len(t.levels[0])
}

// Depth returns the number of levels including the leaf level.
func (t *Tree) Depth() int { return len(t.levels) }

// Level returns a copy of level i, where level 0 holds the leaves.
func (t *Tree) Level(i int) []hashing.Hash {
	if i < 0 || i >= len(t.levels) {
		return nil
	}
	return append([]hashing.Hash(nil), t.levels[i]...)
}

// Hasher returns the hasher used for interior nodes.
func (t *Tree) Hasher() hashing.Hasher { return t.hasher }

// Contains reports whether h is one of the original leaf hashes.
//
// This is leaf presence only: it does not authenticate h against the root.
// Use Proof and VerifyProof for inclusion proofs.
func (t *Tree) Contains(h hashing.Hash) bool {
	_, ok := t.index[h]
	return ok
}

// IndexOf returns the position of the first leaf equal to h.
func (t *Tree) IndexOf(h hashing.Hash) (int, bool) {
	i, ok := t.index[h]
	return i, ok
}
