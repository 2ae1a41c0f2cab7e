package mvcc

import (
	"sync"

	"github.com/go-mvccdb/mvccdb/types"
	"github.com/go-mvccdb/mvccdb/types/basic"
)

// Transaction holds one transaction's isolation level, the snapshot of
// transactions that were InProgress when it began, and the read/write
// sets built up while it runs. InProgress is frozen forever at
// construction; ReadSet/WriteSet grow only while the transaction is
// InProgress and are consulted, read-only, by other transactions'
// commit-time conflict analysis once this one has committed.
type Transaction struct {
	ID             types.TxnId
	IsolationLevel types.IsolationLevel
	InProgress     map[types.TxnId]struct{}

	WriteSet basic.Set
	ReadSet  basic.Set

	// stateMu guards State in isolation from the Database's own global
	// lock: transaction_state lookups from error/report paths (and the
	// commit-time scan of *other* transactions' state) must never
	// observe a torn write, independent of whichever Database method
	// happens to hold the outer lock at the time.
	stateMu sync.RWMutex
	state   types.TxnState
}

func newTransaction(id types.TxnId, level types.IsolationLevel, inProgress map[types.TxnId]struct{}) *Transaction {
	return &Transaction{
		ID:             id,
		IsolationLevel: level,
		InProgress:     inProgress,
		state:          types.InProgress,
	}
}

func (t *Transaction) State() types.TxnState {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()

	return t.state
}

func (t *Transaction) setState(s types.TxnState) {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	t.state = s
}

// wasInProgressAtStart reports whether other was InProgress at the instant
// this transaction began.
func (t *Transaction) wasInProgressAtStart(other types.TxnId) bool {
	_, ok := t.InProgress[other]
	return ok
}
