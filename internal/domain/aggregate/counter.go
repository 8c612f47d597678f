package aggregate

import "sort"

// entry is one counted key.
type entry struct {
	key string
	n   int
}

// counter counts keys and remembers the order they were first seen, so that
// equal counts rank by first appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) get(key string) int {
	return c.counts[key]
}

// top returns at most n entries by descending count. n <= 0 returns all.
func (c *counter) top(n int) []entry {
	out := make([]entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, entry{key: k, n: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].n > out[j].n })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
