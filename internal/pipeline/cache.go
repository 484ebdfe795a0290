package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// cacheKey canonicalizes a request so equivalent requests share an entry:
// regions are sorted before joining, floats printed at full precision.
func cacheKey(req Request) string {
	regions := make([]string, len(req.Criteria.Regions))
	copy(regions, req.Criteria.Regions)
	sort.Strings(regions)

	w := req.Weights
	c := req.Criteria
	return fmt.Sprintf("w:%g|%g|%g|%g|%g;c:%g|%s|%t|%s",
		w.Income, w.Education, w.Diversity, w.Population, w.Age,
		c.MinScore, strings.Join(regions, ","), c.MetroOnly, c.IncomeTier,
	)
}

// resultCache is a simple thread-safe LRU cache of pipeline views. Safe to
// use because Explore is deterministic over the immutable snapshot.
type resultCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value View
	prev  *entry
	next  *entry
}

func newResultCache(maxEntries int) *resultCache {
	return &resultCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *resultCache) get(key string) (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return View{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *resultCache) put(key string, value View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *resultCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *resultCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *resultCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *resultCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
