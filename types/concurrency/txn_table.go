package concurrency

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// TxnTable is the Database's TxnId -> Transaction table. It never
// shrinks and is consulted by visibility predicates for any
// ancestor transaction's state, so lookups must be safe under the same
// global mutex discipline as everything else in mvcc.Database; the
// embedded mutex here is a second line of defense for callers (tests,
// diagnostics) that inspect the table outside that critical section.
// linkedhashmap keeps iteration in insertion (== TxnId) order, which is
// only used for deterministic test/diagnostic dumps, never for engine
// logic.
type TxnTable struct {
	mutex sync.RWMutex
	m     *linkedhashmap.Map
}

func NewTxnTable() *TxnTable {
	return &TxnTable{m: linkedhashmap.New()}
}

func (t *TxnTable) Put(id interface{}, txn interface{}) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.m.Put(id, txn)
}

func (t *TxnTable) Get(id interface{}) (interface{}, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.m.Get(id)
}

// Values returns every stored transaction in insertion (TxnId) order.
func (t *TxnTable) Values() []interface{} {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.m.Values()
}
