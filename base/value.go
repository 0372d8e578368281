// Package base implements immutable scalar values and flat containers of
// them, each with a content-derived hash.
package base

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"forme.dev/groups/errs"
	"forme.dev/groups/hashing"
	"forme.dev/groups/registry"
)

// Value is an immutable scalar of a primitive kind.
type Value struct {
	kind registry.Kind
	raw  any
}

// NewValue wraps raw after inferring its kind through reg. Integers are stored
// as int64 and floats as float64; a []byte is copied.
func NewValue(reg *registry.Registry, raw any) (Value, error) {
	switch c := raw.(type) {
	case Value:
		if c.kind == registry.Invalid {
			return Value{}, errs.New(errs.KindType, "GRP-TYPE-001", "uninitialized value")
		}
		return c, nil
	case Container, *Container:
		return Value{}, errs.New(errs.KindType, "GRP-TYPE-002", fmt.Sprintf("expected a scalar, got container %T", raw))
	}
	k, norm, err := reg.Infer(raw)
	if err != nil {
		return Value{}, err
	}
	if b, ok := norm.([]byte); ok {
		norm = append([]byte{}, b...)
	}
	return Value{kind: k, raw: norm}, nil
}

// MustValue is like NewValue but panics on error.
func MustValue(reg *registry.Registry, raw any) Value {
	v, err := NewValue(reg, raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Kind() registry.Kind { return v.kind }

// Raw returns the normalized scalar. Byte strings are returned as a copy.
func (v Value) Raw() any {
	if b, ok := v.raw.([]byte); ok {
		return append([]byte{}, b...)
	}
	return v.raw
}

func (v Value) IsZero() bool { return v.kind == registry.Invalid }

// Encode returns the canonical byte encoding of v: one kind tag byte followed
// by the payload. Integers and float bits are big-endian.
func (v Value) Encode() []byte {
	buf := []byte{byte(v.kind)}
	switch x := v.raw.(type) {
	case bool:
		if x {
			return append(buf, 1)
		}
		return append(buf, 0)
	case int64:
		return binary.BigEndian.AppendUint64(buf, uint64(x))
	case float64:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(x))
	case string:
		return append(buf, x...)
	case []byte:
		return append(buf, x...)
	}
	return buf
}

// ContentHash returns the SHA-256 hash of the canonical encoding.
func (v Value) ContentHash() hashing.Hash { return v.HashWith(hashing.Hasher{}) }

// HashWith returns the hash of the canonical encoding under hasher.
func (v Value) HashWith(hasher hashing.Hasher) hashing.Hash {
	return hasher.Sum(v.Encode())
}

// Equal reports whether v and other have the same kind and raw content.
// Floats compare by bit pattern.
func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && bytes.Equal(v.Encode(), other.Encode())
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.kind, formatRaw(v.raw))
}

func formatRaw(raw any) string {
	switch x := raw.(type) {
	case string:
		return strconv.Quote(x)
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
