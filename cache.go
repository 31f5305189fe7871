package rivulet

import "container/list"

// seenCache is the bounded seen-set behind Distinct. Each subscription
// owns its own instance, so no locking is needed
type seenCache struct {
	keys    map[string]*list.Element
	lru     *list.List
	maxSize int
}

const DefaultDistinctSize = 4096

func newSeenCache(maxSize int) *seenCache {
	if maxSize <= 0 {
		maxSize = DefaultDistinctSize
	}
	return &seenCache{
		keys:    map[string]*list.Element{},
		lru:     list.New(),
		maxSize: maxSize,
	}
}

// observe records key and reports whether it was already present
func (c *seenCache) observe(key string) bool {
	if elem, ok := c.keys[key]; ok {
		c.lru.MoveToFront(elem)
		return true
	}

	elem := c.lru.PushFront(key)
	c.keys[key] = elem

	if c.lru.Len() > c.maxSize {
		c.evictLast()
	}
	return false
}

func (c *seenCache) evictLast() {
	back := c.lru.Back()
	if back != nil {
		c.lru.Remove(back)
		delete(c.keys, back.Value.(string))
	}
}
