package keel

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/lodehart/keel/shape"
)

// Body binds a shape to a stable identity so that pair results can be
// memoized across queries.
type Body struct {
	ID    uuid.UUID
	Shape shape.Shape
}

func NewBody(s shape.Shape) Body {
	return Body{ID: uuid.New(), Shape: s}
}

// PairKey identifies an unordered pair of bodies. Keys built from (a, b) and
// (b, a) are equal and hash identically; the two IDs are stored in canonical
// byte order.
type PairKey struct {
	lo, hi uuid.UUID
}

func NewPairKey(a, b Body) PairKey {
	return PairKeyOf(a.ID, b.ID)
}

func PairKeyOf(a, b uuid.UUID) PairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return PairKey{lo: a, hi: b}
}

// Hash returns a 64-bit digest of the canonical ID pair, suitable for
// sharding pairs across memoization buckets.
func (k PairKey) Hash() uint64 {
	var buf [32]byte
	copy(buf[:16], k.lo[:])
	copy(buf[16:], k.hi[:])
	return xxhash.Sum64(buf[:])
}

func (k PairKey) String() string {
	return fmt.Sprintf("%s|%s", k.lo, k.hi)
}
