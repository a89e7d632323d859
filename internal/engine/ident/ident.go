// Package ident generates unique page identifiers.
package ident

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/dshills/pagestorm/internal/engine/page"
)

// Strategy names accepted by New.
const (
	StrategyCounter = "counter"
	StrategyUUID    = "uuid"
)

// Generator produces identifiers that are distinct from every identifier
// previously returned by the same generator.
type Generator interface {
	Next() page.ID
}

// Counter issues decimal identifiers from a monotonically increasing counter.
type Counter struct {
	prefix string
	next   uint64
}

// CounterOption configures a Counter.
type CounterOption func(*Counter)

// WithPrefix prepends prefix to every identifier.
func WithPrefix(prefix string) CounterOption {
	return func(c *Counter) {
		c.prefix = prefix
	}
}

// WithStart sets the first counter value.
func WithStart(start uint64) CounterOption {
	return func(c *Counter) {
		c.next = start
	}
}

// NewCounter creates a counter starting at 0.
func NewCounter(opts ...CounterOption) *Counter {
	c := &Counter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next returns the current counter value and advances it.
func (c *Counter) Next() page.ID {
	id := page.ID(c.prefix + strconv.FormatUint(c.next, 10))
	c.next++
	return id
}

// UUID issues random (version 4) UUID identifiers.
type UUID struct{}

// NewUUID creates a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Next returns a fresh UUID.
func (UUID) Next() page.ID {
	return page.ID(uuid.New().String())
}

// New returns a generator for the named strategy.
// An empty name selects the counter strategy.
func New(strategy, prefix string) (Generator, error) {
	switch strategy {
	case "", StrategyCounter:
		return NewCounter(WithPrefix(prefix)), nil
	case StrategyUUID:
		return NewUUID(), nil
	default:
		return nil, fmt.Errorf("unknown identifier strategy %q", strategy)
	}
}
