// Package metrics defines the counters a cache reports as it serves lookups.
package metrics

import "sync/atomic"

// Interface receives cache events.
type Interface interface {
	IncHit()
	IncMiss()
	// AddEvicted counts residents destroyed to make room.
	AddEvicted(n int)
	// AddForgiven counts marked residents spared by an eviction scan.
	AddForgiven(n int)
	IncAllocFailure()
	SetResidents(n int)
}

// Noop discards all events.
type Noop struct{}

func (Noop) IncHit()          {}
func (Noop) IncMiss()         {}
func (Noop) AddEvicted(int)   {}
func (Noop) AddForgiven(int)  {}
func (Noop) IncAllocFailure() {}
func (Noop) SetResidents(int) {}

// Simple keeps events in atomic counters.
type Simple struct {
	Hits          atomic.Uint64
	Misses        atomic.Uint64
	Evicted       atomic.Uint64
	Forgiven      atomic.Uint64
	AllocFailures atomic.Uint64
	Residents     atomic.Uint64
}

// NewSimple returns a zeroed [Simple].
func NewSimple() *Simple { return &Simple{} }

func (m *Simple) IncHit()  { m.Hits.Add(1) }
func (m *Simple) IncMiss() { m.Misses.Add(1) }

func (m *Simple) AddEvicted(n int) {
	if n > 0 {
		m.Evicted.Add(uint64(n))
	}
}

func (m *Simple) AddForgiven(n int) {
	if n > 0 {
		m.Forgiven.Add(uint64(n))
	}
}

func (m *Simple) IncAllocFailure() { m.AllocFailures.Add(1) }

func (m *Simple) SetResidents(n int) {
	if n >= 0 {
		m.Residents.Store(uint64(n))
	}
}
