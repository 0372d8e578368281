package model

// HashRequest asks for the content identity of a scalar or a flat
// collection.
//
// Kind is an optional container alias that overrides the shape of Data.
// Algorithm defaults to sha256.
type HashRequest struct {
	Data      any    `json:"data"`
	Kind      string `json:"kind,omitempty"`
	Algorithm string `json:"algorithm,omitempty"`
}

// MembershipRequest asks whether Candidate (hex digest) is a leaf of the
// container built from Data.
type MembershipRequest struct {
	HashRequest
	Candidate string `json:"candidate"`
}

type ValueView struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
	Hash  string `json:"hash"`
	CID   string `json:"cid"`
}

type ContainerView struct {
	Kind      string      `json:"kind"`
	Algorithm string      `json:"algorithm"`
	Root      string      `json:"root"`
	CID       string      `json:"cid"`
	Depth     int         `json:"depth"`
	Items     []ValueView `json:"items"`
}

// HashResponse carries exactly one of Value or Container.
type HashResponse struct {
	Value     *ValueView     `json:"value,omitempty"`
	Container *ContainerView `json:"container,omitempty"`
}

type ProofStep struct {
	Sibling string `json:"sibling"`
	Left    bool   `json:"left,omitempty"`
}

type MembershipResult struct {
	Member bool        `json:"member"`
	Root   string      `json:"root"`
	Index  int         `json:"index"`
	Proof  []ProofStep `json:"proof,omitempty"`
}

type Verification struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message,omitempty"`
	Leaves  []string `json:"leaves"`
}

type KindView struct {
	Name     string   `json:"name"`
	Reserved string   `json:"reserved"`
	Brackets string   `json:"brackets,omitempty"`
	Aliases  []string `json:"aliases"`
}
