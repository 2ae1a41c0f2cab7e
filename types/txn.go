package types

import "fmt"

// TxnId names a transaction. 0 is reserved as the tx_end_id "not deleted"
// sentinel and is never assigned to a real transaction; ids start at
// consts.FirstTxnId and increase monotonically, never reused.
type TxnId uint64

func (id TxnId) String() string {
	return fmt.Sprintf("txn-%d", id)
}

// IsolationLevel is a tagged variant, not a subclass hierarchy: Database
// dispatches on it directly in Visible and CompleteTransaction rather than
// routing through per-level implementations.
type IsolationLevel uint8

const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
	RepeatableRead
	Snapshot
	Serializable
)

var isolationLevelNames = map[IsolationLevel]string{
	ReadUncommitted: "ReadUncommitted",
	ReadCommitted:   "ReadCommitted",
	RepeatableRead:  "RepeatableRead",
	Snapshot:        "Snapshot",
	Serializable:    "Serializable",
}

func (l IsolationLevel) String() string {
	if s, ok := isolationLevelNames[l]; ok {
		return s
	}
	return "Unknown"
}

// UsesSnapshotPredicate reports whether l shares the RepeatableRead /
// Snapshot / Serializable visibility predicate: visible only if it was
// live in this transaction's own snapshot of the database.
func (l IsolationLevel) UsesSnapshotPredicate() bool {
	return l == RepeatableRead || l == Snapshot || l == Serializable
}

// RequiresConflictCheck reports whether commit must run the commit-time
// conflict analysis against transactions that committed concurrently.
func (l IsolationLevel) RequiresConflictCheck() bool {
	return l == Snapshot || l == Serializable
}

type TxnState uint8

const (
	InProgress TxnState = iota
	Committed
	Aborted
)

var txnStateNames = map[TxnState]string{
	InProgress: "InProgress",
	Committed:  "Committed",
	Aborted:    "Aborted",
}

func (s TxnState) String() string {
	if n, ok := txnStateNames[s]; ok {
		return n
	}
	return "Unknown"
}

func (s TxnState) IsTerminal() bool {
	return s == Committed || s == Aborted
}
