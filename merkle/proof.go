package merkle

import (
	"fmt"

	"forme.dev/groups/hashing"
)

// Step is one sibling on the path from a leaf to the root.
type Step struct {
	Sibling hashing.Hash
	// Left is true when Sibling is the left operand of the pair.
	Left bool
}

// Proof is an inclusion proof for the leaf at Index.
type Proof struct {
	Index int
	Steps []Step
}

// Proof returns the authentication path for the leaf at index.
func (t *Tree) Proof(index int) (Proof, error) {
	if index < 0 || index >= t.Len() {
		return Proof{}, fmt.Errorf("leaf index %d out of range [0,%d)", index, t.Len())
	}
	p := Proof{Index: index}
	i := index
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		if i%2 == 0 {
			sib := level[i]
			if i+1 < len(level) {
				sib = level[i+1]
			}
			p.Steps = append(p.Steps, Step{Sibling: sib})
		} else {
			p.Steps = append(p.Steps, Step{Sibling: level[i-1], Left: true})
		}
		i /= 2
	}
	return p, nil
}

// VerifyProof recomputes the root from leaf and proof and compares it to root.
func VerifyProof(root, leaf hashing.Hash, proof Proof, hasher hashing.Hasher) bool {
	if root.IsZero() || len(proof.Steps) == 0 {
		return false
	}
	cur := leaf
	for _, s := range proof.Steps {
		if s.Left {
			cur = hasher.Pair(s.Sibling, cur)
		} else {
			cur = hasher.Pair(cur, s.Sibling)
		}
	}
	return cur == root
}
