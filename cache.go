package qsim

import (
	"encoding/binary"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// GateKind names a gate factory.
type GateKind string

const (
	GateX      GateKind = "x"
	GateY      GateKind = "y"
	GateZ      GateKind = "z"
	GateH      GateKind = "h"
	GateS      GateKind = "s"
	GateT      GateKind = "t"
	GateCNOT   GateKind = "cnot"
	GateCZ     GateKind = "cz"
	GateSwap   GateKind = "swap"
	GateCCNOT  GateKind = "ccnot"
	GateOracle GateKind = "oracle"
)

// arity is the number of integer arguments each kind takes after n.
var arity = map[GateKind]int{
	GateX: 1, GateY: 1, GateZ: 1, GateH: 1, GateS: 1, GateT: 1,
	GateCNOT: 2, GateCZ: 2, GateSwap: 2,
	GateCCNOT:  3,
	GateOracle: 1,
}

/*
Build dispatches to the gate factory for kind. Qubit arguments follow the
factory's order: (target) for single-qubit gates, (target, control) for CNOT
and CZ, (i, j) for Swap, (target, c1, c2) for CCNOT and (key) for Oracle.
*/
func Build(kind GateKind, n int, args ...int) (Matrix, error) {
	want, ok := arity[kind]
	if !ok {
		return Matrix{}, fmt.Errorf("unknown gate %q: %w", kind, ErrConfiguration)
	}
	if len(args) != want {
		return Matrix{}, fmt.Errorf("gate %q takes %d arguments, got %d: %w", kind, want, len(args), ErrConfiguration)
	}

	switch kind {
	case GateX:
		return X(args[0], n)
	case GateY:
		return Y(args[0], n)
	case GateZ:
		return Z(args[0], n)
	case GateH:
		return Hadamard(args[0], n)
	case GateS:
		return Phase(args[0], n)
	case GateT:
		return T(args[0], n)
	case GateCNOT:
		return CNOT(args[0], args[1], n)
	case GateCZ:
		return CZ(args[0], args[1], n)
	case GateSwap:
		return Swap(args[0], args[1], n)
	case GateCCNOT:
		return CCNOT(args[0], args[1], args[2], n)
	default:
		return Oracle(n, WithKey(args[0]))
	}
}

type cacheEntry struct {
	kind GateKind
	n    int
	args []int
	gate Matrix
}

/*
GateCache memoizes Build. Gates are immutable values, so a cached matrix is
handed to every caller asking for the same descriptor. Callers must not Set
entries on a cached matrix.
*/
type GateCache struct {
	mu      sync.RWMutex
	entries map[uint64][]cacheEntry
	hits    int64
	misses  int64
}

func NewGateCache() *GateCache {
	return &GateCache{
		entries: make(map[uint64][]cacheEntry),
	}
}

func gateKey(kind GateKind, n int, args []int) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(kind))

	var buf [8]byte
	for _, v := range append([]int{n}, args...) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func (c *GateCache) lookup(key uint64, kind GateKind, n int, args []int) (Matrix, bool) {
	for _, e := range c.entries[key] {
		if e.kind == kind && e.n == n && slices.Equal(e.args, args) {
			return e.gate, true
		}
	}
	return Matrix{}, false
}

// Get returns the cached gate for the descriptor, building it on first use.
func (c *GateCache) Get(kind GateKind, n int, args ...int) (Matrix, error) {
	key := gateKey(kind, n, args)

	c.mu.RLock()
	gate, ok := c.lookup(key, kind, n, args)
	c.mu.RUnlock()

	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return gate, nil
	}

	gate, err := Build(kind, n, args...)
	if err != nil {
		return Matrix{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have built it meanwhile.
	if cached, ok := c.lookup(key, kind, n, args); ok {
		c.hits++
		return cached, nil
	}

	c.misses++
	c.entries[key] = append(c.entries[key], cacheEntry{
		kind: kind,
		n:    n,
		args: slices.Clone(args),
		gate: gate,
	})
	return gate, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *GateCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of distinct gates held.
func (c *GateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, bucket := range c.entries {
		total += len(bucket)
	}
	return total
}
