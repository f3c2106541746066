package layout

import "container/list"

// attrCache is a bounded LRU of computed attributes keyed by entry identity.
// A hit requires the stored fingerprint to match; a stale fingerprint counts
// as a miss and is replaced on the next put.
type attrCache struct {
	max   int
	order *list.List
	items map[string]*list.Element
}

type cacheRecord struct {
	id    string
	fp    uint64
	attrs Attributes
}

func newAttrCache(max int) *attrCache {
	if max < 1 {
		max = 1
	}
	return &attrCache{
		max:   max,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

func (c *attrCache) get(id string, fp uint64) (Attributes, bool) {
	el, ok := c.items[id]
	if !ok {
		return Attributes{}, false
	}
	rec := el.Value.(*cacheRecord)
	if rec.fp != fp {
		return Attributes{}, false
	}
	c.order.MoveToFront(el)
	return rec.attrs, true
}

func (c *attrCache) put(id string, fp uint64, attrs Attributes) {
	if el, ok := c.items[id]; ok {
		rec := el.Value.(*cacheRecord)
		rec.fp = fp
		rec.attrs = attrs
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&cacheRecord{id: id, fp: fp, attrs: attrs})
	c.items[id] = el
	for c.order.Len() > c.max {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheRecord).id)
	}
}

func (c *attrCache) invalidate(id string) {
	if el, ok := c.items[id]; ok {
		c.order.Remove(el)
		delete(c.items, id)
	}
}

func (c *attrCache) invalidateAll() {
	c.order.Init()
	for k := range c.items {
		delete(c.items, k)
	}
}

func (c *attrCache) len() int { return c.order.Len() }
