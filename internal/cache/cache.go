// Package cache memoizes scenario runs. The engine itself stays pure; the
// cache is an optional wrapper keyed by value equality of the full input.
package cache

import (
	"sync"

	"rate_planner/internal/model"
	"rate_planner/internal/scenario"
)

// key identifies one computation. Params holds only scalars, so the struct
// compares by value and can key a map directly.
type key struct {
	params   model.Params
	scenario model.Scenario
	years    model.YearRange
}

// Cache stores completed runs for reuse across interactive recomputes.
type Cache struct {
	mu      sync.RWMutex
	entries map[key][]model.YearRecord
}

func New() *Cache {
	return &Cache{
		entries: make(map[key][]model.YearRecord),
	}
}

// Run returns the cached sequence for the inputs, computing and storing it
// on a miss. Callers always receive their own copy, so cached records stay
// immutable.
func (c *Cache) Run(p model.Params, sc model.Scenario, years model.YearRange) ([]model.YearRecord, error) {
	k := key{params: p, scenario: sc, years: years}

	c.mu.RLock()
	records, ok := c.entries[k]
	c.mu.RUnlock()

	if !ok {
		var err error
		records, err = scenario.Run(p, sc, years)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[k] = records
		c.mu.Unlock()
	}

	out := make([]model.YearRecord, len(records))
	copy(out, records)
	return out, nil
}

// Len returns the number of cached runs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all cached runs.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[key][]model.YearRecord)
}
