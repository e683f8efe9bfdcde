package bayselm

import "sort"

// Counter is a multiset mapping items to non-negative weights.
// A missing item has weight 0.
type Counter[K comparable] struct {
	weights map[K]float64
	total   float64
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{weights: make(map[K]float64)}
}

// Get returns the weight of item, 0 if absent.
func (c *Counter[K]) Get(item K) float64 {
	return c.weights[item]
}

// Contains reports whether item has a stored weight.
func (c *Counter[K]) Contains(item K) bool {
	_, ok := c.weights[item]
	return ok
}

// Add adds weight to item and returns the new weight.
// Items whose weight drops to 0 or below are removed.
func (c *Counter[K]) Add(item K, weight float64) float64 {
	w := c.weights[item] + weight
	c.total += weight
	if w <= 0 {
		c.total -= w
		delete(c.weights, item)
		return 0
	}
	c.weights[item] = w
	return w
}

// AddAll adds weight to every item of items.
func (c *Counter[K]) AddAll(items []K, weight float64) {
	for _, item := range items {
		c.Add(item, weight)
	}
}

// Merge adds every weight of other into c.
func (c *Counter[K]) Merge(other *Counter[K]) {
	for item, w := range other.weights {
		c.Add(item, w)
	}
}

// Total returns the sum of all weights.
func (c *Counter[K]) Total() float64 {
	return c.total
}

// Len returns the number of items with positive weight.
func (c *Counter[K]) Len() int {
	return len(c.weights)
}

// Range calls f for every item until f returns false.
// Iteration order is unspecified.
func (c *Counter[K]) Range(f func(item K, weight float64) bool) {
	for item, w := range c.weights {
		if !f(item, w) {
			return
		}
	}
}

// ToMap returns a copy of the stored weights.
func (c *Counter[K]) ToMap() map[K]float64 {
	m := make(map[K]float64, len(c.weights))
	for item, w := range c.weights {
		m[item] = w
	}
	return m
}

// Entry is an item with its weight.
type Entry[K comparable] struct {
	Item   K
	Weight float64
}

// MostCommon returns up to n entries ordered by decreasing weight.
// less breaks ties; n <= 0 returns every entry.
func (c *Counter[K]) MostCommon(n int, less func(a, b K) bool) []Entry[K] {
	entries := make([]Entry[K], 0, len(c.weights))
	for item, w := range c.weights {
		entries = append(entries, Entry[K]{item, w})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return less(entries[i].Item, entries[j].Item)
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
