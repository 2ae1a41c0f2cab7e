package mvcc

import (
	"sync"

	"github.com/golang/glog"

	"github.com/go-mvccdb/mvccdb/assert"
	"github.com/go-mvccdb/mvccdb/consts"
	"github.com/go-mvccdb/mvccdb/errors"
	"github.com/go-mvccdb/mvccdb/types"
	"github.com/go-mvccdb/mvccdb/types/concurrency"
)

// Database is the global store (key -> version chain), the transaction
// table, and the TxnId counter, plus the visibility predicate and
// commit-time conflict analysis that are the sole hard core of this
// package.
//
// Every exported method acquires mu for its entire duration, standing in
// for the single global mutex a real deployment would wrap around every
// Database operation instead of finer-grained locking.
type Database struct {
	mu sync.Mutex

	defaultIsolation types.IsolationLevel
	store            map[string]*concurrency.VersionChain
	transactions     *concurrency.TxnTable
	nextTxnId        types.TxnId
}

// NewDatabase constructs a Database applying level to every transaction
// it begins.
func NewDatabase(level types.IsolationLevel) *Database {
	return &Database{
		defaultIsolation: level,
		store:            make(map[string]*concurrency.VersionChain),
		transactions:     concurrency.NewTxnTable(),
		nextTxnId:        consts.FirstTxnId,
	}
}

// BeginTransaction captures the current InProgress set and allocates a
// fresh TxnId atomically with that snapshot.
func (d *Database) BeginTransaction() *Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()

	inProgress := make(map[types.TxnId]struct{})
	for _, raw := range d.transactions.Values() {
		txn := raw.(*Transaction)
		if txn.State() == types.InProgress {
			inProgress[txn.ID] = struct{}{}
		}
	}

	id := d.nextTxnId
	d.nextTxnId++

	txn := newTransaction(id, d.defaultIsolation, inProgress)
	d.transactions.Put(id, txn)

	glog.V(10).Infof("began %s at isolation %s with %d in-progress ancestors", id, txn.IsolationLevel, len(inProgress))
	return txn
}

// TransactionState looks up a transaction's current state. A reference to
// an unknown TxnId is a fatal invariant violation, not a client error.
func (d *Database) TransactionState(id types.TxnId) types.TxnState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.transactionByIDLocked(id).State()
}

func (d *Database) transactionByIDLocked(id types.TxnId) *Transaction {
	raw, ok := d.transactions.Get(id)
	assert.Mustf(ok, "reference to unknown transaction id %s", id)
	return raw.(*Transaction)
}

// CompleteTransaction transitions t to targetState. Committing a Snapshot
// or Serializable transaction first runs commit-time conflict analysis; a
// detected conflict aborts t and the conflict error is returned instead.
func (d *Database) CompleteTransaction(t *Transaction, targetState types.TxnState) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	assert.Mustf(t.State() == types.InProgress, "transaction %s is not InProgress, cannot complete it", t.ID)
	assert.Must(targetState == types.Committed || targetState == types.Aborted)

	if targetState == types.Committed && t.IsolationLevel.RequiresConflictCheck() {
		if err := d.checkConflictsLocked(t); err != nil {
			t.setState(types.Aborted)
			glog.Errorf("%s aborted on commit: %v", t.ID, err)
			return err
		}
	}

	t.setState(targetState)
	return nil
}

// checkConflictsLocked scans every transaction that overlapped t's
// lifetime and has since committed — t's InProgress snapshot, plus every
// TxnId begun after t and before now — for a write-write or read-write
// conflict. The first conflicting witness found aborts t; scan order does
// not affect the outcome, only which witness is named in the error.
func (d *Database) checkConflictsLocked(t *Transaction) error {
	check := func(u *Transaction) error {
		if u.State() != types.Committed {
			return nil
		}
		writeWrite := t.WriteSet.Intersects(u.WriteSet)
		switch t.IsolationLevel {
		case types.Snapshot:
			if writeWrite {
				return errors.Annotatef(errors.ErrWriteWriteConflict, "with %s", u.ID)
			}
		case types.Serializable:
			readWrite := t.WriteSet.Intersects(u.ReadSet) || t.ReadSet.Intersects(u.WriteSet)
			if writeWrite || readWrite {
				return errors.Annotatef(errors.ErrReadWriteConflict, "with %s", u.ID)
			}
		}
		return nil
	}

	for ancestor := range t.InProgress {
		if err := check(d.transactionByIDLocked(ancestor)); err != nil {
			return err
		}
	}
	for id := t.ID + 1; id < d.nextTxnId; id++ {
		if err := check(d.transactionByIDLocked(id)); err != nil {
			return err
		}
	}
	return nil
}

// Visible reports whether v is visible to t, dispatching on t's
// isolation level.
func (d *Database) Visible(t *Transaction, v *Version) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.visibleLocked(t, v)
}

func (d *Database) visibleLocked(t *Transaction, v *Version) bool {
	switch t.IsolationLevel {
	case types.ReadUncommitted:
		return v.isLive()
	case types.ReadCommitted:
		return d.visibleReadCommittedLocked(t, v)
	default:
		return d.visibleSnapshotLikeLocked(t, v)
	}
}

// visibleReadCommittedLocked is the Read Committed predicate. Creator and
// deleter state are read at query time, which is exactly what makes a
// transaction's view change between two gets as others commit.
func (d *Database) visibleReadCommittedLocked(t *Transaction, v *Version) bool {
	if v.TxStartID != t.ID && d.transactionByIDLocked(v.TxStartID).State() != types.Committed {
		return false
	}
	if v.TxEndID == t.ID {
		return false
	}
	if v.TxEndID > 0 && d.transactionByIDLocked(v.TxEndID).State() == types.Committed {
		return false
	}
	return true
}

// visibleSnapshotLikeLocked is the shared predicate for RepeatableRead,
// Snapshot, and Serializable: a version is visible only if t created it
// or it was live at the instant t began, judged against t's InProgress
// snapshot rather than current transaction state.
func (d *Database) visibleSnapshotLikeLocked(t *Transaction, v *Version) bool {
	if v.TxStartID > t.ID {
		return false
	}
	if t.wasInProgressAtStart(v.TxStartID) {
		return false
	}
	if v.TxStartID != t.ID && d.transactionByIDLocked(v.TxStartID).State() != types.Committed {
		return false
	}
	if v.TxEndID == t.ID {
		return false
	}
	if v.TxEndID > 0 && v.TxEndID < t.ID &&
		d.transactionByIDLocked(v.TxEndID).State() == types.Committed &&
		!t.wasInProgressAtStart(v.TxEndID) {
		return false
	}
	return true
}

// SetKey supersedes every currently visible version of key, then appends
// a fresh live version.
func (d *Database) SetKey(t *Transaction, key string, value types.Value) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	assert.Mustf(t.State() == types.InProgress, "%s is not InProgress", t.ID)

	chain := d.chainLocked(key)
	chain.ReverseEach(func(raw interface{}) bool {
		v := raw.(*Version)
		if d.visibleLocked(t, v) {
			v.supersede(t.ID)
		}
		return true
	})
	chain.Append(newVersion(t.ID, value))
	t.WriteSet.Insert(key)
	return nil
}

// DeleteKey supersedes every currently visible version of key. It fails
// if none was visible; the key is added to the writeset only on success.
func (d *Database) DeleteKey(t *Transaction, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	assert.Mustf(t.State() == types.InProgress, "%s is not InProgress", t.ID)

	found := false
	if existing, ok := d.store[key]; ok {
		existing.ReverseEach(func(raw interface{}) bool {
			v := raw.(*Version)
			if d.visibleLocked(t, v) {
				v.supersede(t.ID)
				found = true
			}
			return true
		})
	}
	if !found {
		return errors.Annotatef(errors.ErrKeyNotExist, "cannot delete key %q that does not exist", key)
	}
	t.WriteSet.Insert(key)
	return nil
}

// GetKey records the read in t.ReadSet unconditionally, even on a miss,
// then returns the payload of the newest visible version.
func (d *Database) GetKey(t *Transaction, key string) (types.Value, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	assert.Mustf(t.State() == types.InProgress, "%s is not InProgress", t.ID)
	t.ReadSet.Insert(key)

	existing, ok := d.store[key]
	if !ok {
		return types.EmptyValue, errors.Annotatef(errors.ErrKeyNotExist, "cannot get key %q that does not exist", key)
	}

	var (
		result types.Value
		found  bool
	)
	existing.ReverseEach(func(raw interface{}) bool {
		v := raw.(*Version)
		if d.visibleLocked(t, v) {
			result = v.Payload
			found = true
			return false
		}
		return true
	})
	if !found {
		return types.EmptyValue, errors.Annotatef(errors.ErrKeyNotExist, "cannot get key %q that does not exist", key)
	}
	return result, nil
}

func (d *Database) chainLocked(key string) *concurrency.VersionChain {
	chain, ok := d.store[key]
	if !ok {
		chain = concurrency.NewVersionChain()
		d.store[key] = chain
	}
	return chain
}
