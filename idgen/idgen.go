// Package idgen generates identifiers for messages and test runs.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// NewSequential returns a generator whose first emitted ID is "1". Sequential
// IDs are deterministic, which keeps recorded traces comparable across runs.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

// NewGlobal returns a generator of globally unique IDs.
func NewGlobal() Generator {
	return globalGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
}

type globalGenerator struct{}

func (globalGenerator) Generate() string {
	return xid.New().String()
}
