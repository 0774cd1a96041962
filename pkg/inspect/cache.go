package inspect

import "sync"

// cache is a small ring of recently broadcast hashes, used to avoid
// sending clients a state they have already seen.
type cache struct {
	hashes []uint64
	valid  []bool
	idx    int
	sync.Mutex
}

func newCache(size int) *cache {
	if size < 1 {
		size = 1
	}
	return &cache{
		hashes: make([]uint64, size),
		valid:  make([]bool, size),
	}
}

func (c *cache) has(hash uint64) bool {
	c.Lock()
	defer c.Unlock()
	for i, h := range c.hashes {
		if c.valid[i] && h == hash {
			return true
		}
	}
	return false
}

func (c *cache) add(hash uint64) {
	c.Lock()
	defer c.Unlock()
	c.hashes[c.idx] = hash
	c.valid[c.idx] = true
	c.idx = (c.idx + 1) % len(c.hashes)
}

// reset forgets every hash, so the next state is always sent.
func (c *cache) reset() {
	c.Lock()
	defer c.Unlock()
	for i := range c.valid {
		c.valid[i] = false
	}
}
