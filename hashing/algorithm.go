package hashing

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/cloudflare/circl/xof"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm names a digest function. Every supported algorithm yields Size bytes.
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	SHA3_256   Algorithm = "sha3-256"
	BLAKE2b256 Algorithm = "blake2b-256"
	SHAKE256   Algorithm = "shake256"
)

// DefaultAlgorithm is used when no algorithm is selected.
const DefaultAlgorithm = SHA256

// Algorithms lists the supported algorithms in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA3_256, BLAKE2b256, SHAKE256}
}

// ParseAlgorithm maps a name to an Algorithm. The empty string selects the default.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported hash algorithm: %q", name)
}

func digestFor(alg Algorithm, message []byte) ([Size]byte, error) {
	var out [Size]byte
	switch alg {
	case SHA256:
		return sha256.Sum256(message), nil
	case SHA3_256:
		return sha3.Sum256(message), nil
	case BLAKE2b256:
		return blake2b.Sum256(message), nil
	case SHAKE256:
		x := xof.SHAKE256.New()
		_, _ = x.Write(message)
		if _, err := io.ReadFull(x, out[:]); err != nil {
			return out, err
		}
		return out, nil
	default:
		return out, fmt.Errorf("unsupported hash algorithm: %q", alg)
	}
}

func multihashCode(alg Algorithm) (uint64, bool) {
	switch alg {
	case SHA256:
		return multihash.SHA2_256, true
	case SHA3_256:
		return multihash.SHA3_256, true
	case BLAKE2b256:
		return multihash.BLAKE2B_MIN + Size - 1, true
	case SHAKE256:
		return multihash.SHAKE_256, true
	default:
		return 0, false
	}
}

func algorithmForCode(code uint64) (Algorithm, bool) {
	for _, a := range Algorithms() {
		if c, _ := multihashCode(a); c == code {
			return a, true
		}
	}
	return "", false
}
