package knockout

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"sync/atomic"
)

// DefaultMaskPrefix prefixes every generated mask id.
const DefaultMaskPrefix = "mask-"

// IDGenerator hands out mask identifiers.
// Identifiers must be unique among the containers of one document.
type IDGenerator interface {
	NextID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

// NextID implements IDGenerator.
func (f IDFunc) NextID() string { return f() }

// CounterIDs generates prefix1, prefix2, ... and is safe for concurrent
// use. Output is deterministic per generator, which keeps rebuilt documents
// stable across runs.
type CounterIDs struct {
	prefix string
	n      atomic.Uint64
}

// NewCounterIDs returns a counter starting at 1.
func NewCounterIDs(prefix string) *CounterIDs {
	return &CounterIDs{prefix: prefix}
}

// NextID implements IDGenerator.
func (c *CounterIDs) NextID() string {
	return c.prefix + strconv.FormatUint(c.n.Add(1), 10)
}

// RandomIDs generates short random base36 tokens, e.g. "mask-k3x9q0z1ab".
// Collisions are not detected; at 10 base36 digits they are negligible for
// any realistic number of containers.
type RandomIDs struct {
	Prefix string
}

var randomIDLimit = new(big.Int).Exp(big.NewInt(36), big.NewInt(10), nil)

// NextID implements IDGenerator. If the system random source fails it
// returns Prefix+"0".
func (r RandomIDs) NextID() string {
	n, err := rand.Int(rand.Reader, randomIDLimit)
	if err != nil {
		return r.Prefix + "0"
	}
	s := n.Text(36)
	for len(s) < 10 {
		s = "0" + s
	}
	return r.Prefix + s
}
