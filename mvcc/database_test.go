package mvcc

import (
	"fmt"
	"testing"

	testifyassert "github.com/stretchr/testify/assert"

	"github.com/go-mvccdb/mvccdb/types"
)

func TestTxnIdsAreMonotonicAndUnique(t *testing.T) {
	db := NewDatabase(types.Serializable)
	seen := make(map[types.TxnId]struct{})
	var last types.TxnId
	for i := 0; i < 50; i++ {
		txn := db.BeginTransaction()
		if i > 0 {
			testifyassert.Greater(t, uint64(txn.ID), uint64(last))
		}
		_, dup := seen[txn.ID]
		testifyassert.False(t, dup)
		seen[txn.ID] = struct{}{}
		last = txn.ID
	}
}

func TestAbortedWriteIsInvisibleUnderEveryLevelButReadUncommitted(t *testing.T) {
	levels := []types.IsolationLevel{
		types.ReadCommitted, types.RepeatableRead, types.Snapshot, types.Serializable,
	}
	for _, level := range levels {
		db := NewDatabase(level)
		writer := db.BeginTransaction()
		testifyassert.NoError(t, db.SetKey(writer, "x", types.StringValue("hey")))
		testifyassert.NoError(t, db.CompleteTransaction(writer, types.Aborted))

		reader := db.BeginTransaction()
		_, err := db.GetKey(reader, "x")
		testifyassert.Error(t, err, "level=%s", level)
	}

	// Read Uncommitted is the one level where an aborted creator's write
	// is still visible.
	db := NewDatabase(types.ReadUncommitted)
	writer := db.BeginTransaction()
	testifyassert.NoError(t, db.SetKey(writer, "x", types.StringValue("hey")))
	testifyassert.NoError(t, db.CompleteTransaction(writer, types.Aborted))

	reader := db.BeginTransaction()
	val, err := db.GetKey(reader, "x")
	testifyassert.NoError(t, err)
	testifyassert.Equal(t, "hey", val.String())
}

func TestSnapshotLikeLevelsHideConcurrentAndFutureCommits(t *testing.T) {
	for _, level := range []types.IsolationLevel{types.RepeatableRead, types.Snapshot, types.Serializable} {
		db := NewDatabase(level)

		reader := db.BeginTransaction()

		concurrent := db.BeginTransaction()
		testifyassert.NoError(t, db.SetKey(concurrent, "x", types.StringValue("from-concurrent")))
		testifyassert.NoError(t, db.CompleteTransaction(concurrent, types.Committed))

		_, err := db.GetKey(reader, "x")
		testifyassert.Error(t, err, "level=%s: concurrent transaction's write must stay hidden", level)

		future := db.BeginTransaction()
		testifyassert.NoError(t, db.SetKey(future, "x", types.StringValue("from-future")))
		testifyassert.NoError(t, db.CompleteTransaction(future, types.Committed))

		_, err = db.GetKey(reader, "x")
		testifyassert.Error(t, err, "level=%s: transaction begun after reader must stay hidden", level)
	}
}

func TestVisibilityStableUntilTransactionTerminates(t *testing.T) {
	for _, level := range []types.IsolationLevel{types.RepeatableRead, types.Snapshot, types.Serializable} {
		db := NewDatabase(level)

		setup := db.BeginTransaction()
		testifyassert.NoError(t, db.SetKey(setup, "x", types.StringValue("v1")))
		testifyassert.NoError(t, db.CompleteTransaction(setup, types.Committed))

		reader := db.BeginTransaction()
		val1, err := db.GetKey(reader, "x")
		testifyassert.NoError(t, err)
		testifyassert.Equal(t, "v1", val1.String())

		other := db.BeginTransaction()
		testifyassert.NoError(t, db.SetKey(other, "x", types.StringValue("v2")))
		testifyassert.NoError(t, db.CompleteTransaction(other, types.Committed))

		val2, err := db.GetKey(reader, "x")
		testifyassert.NoError(t, err)
		testifyassert.Equal(t, val1.String(), val2.String(), "level=%s: visibility must not change mid-lifetime", level)
	}
}

func TestEmptyReadAndWriteSetSerializableTxnAlwaysCommits(t *testing.T) {
	db := NewDatabase(types.Serializable)

	var overlapping []*Transaction
	for i := 0; i < 5; i++ {
		overlapping = append(overlapping, db.BeginTransaction())
	}
	empty := db.BeginTransaction()
	for i, txn := range overlapping {
		testifyassert.NoError(t, db.SetKey(txn, fmt.Sprintf("k%d", i), types.StringValue("v")))
		testifyassert.NoError(t, db.CompleteTransaction(txn, types.Committed))
	}

	testifyassert.NoError(t, db.CompleteTransaction(empty, types.Committed))
}

func TestUnknownTransactionReferenceIsFatal(t *testing.T) {
	db := NewDatabase(types.ReadCommitted)
	testifyassert.Panics(t, func() {
		db.TransactionState(types.TxnId(999999))
	})
}
