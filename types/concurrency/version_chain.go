package concurrency

import (
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
)

// VersionChain is the per-key ordered sequence of versions: append-only
// in creation order, newest last, with reverse iteration the only lookup
// pattern the engine ever performs. It wraps gods/lists/arraylist behind
// a mutex, the same shape as an ordered-map wrapper but over a plain
// insertion-ordered list since the chain has no sort key of its own,
// only append order.
type VersionChain struct {
	mutex sync.RWMutex
	list  *arraylist.List
}

func NewVersionChain() *VersionChain {
	return &VersionChain{list: arraylist.New()}
}

// Append adds a freshly created version to the newest end of the chain.
func (c *VersionChain) Append(version interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.list.Add(version)
}

// ReverseEach visits every version from newest to oldest, stopping early
// if visit returns false. Newest-first is the only lookup order this
// engine ever needs.
func (c *VersionChain) ReverseEach(visit func(version interface{}) (keepGoing bool)) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for i := c.list.Size() - 1; i >= 0; i-- {
		v, _ := c.list.Get(i)
		if !visit(v) {
			return
		}
	}
}
