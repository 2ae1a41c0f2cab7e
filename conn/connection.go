// Package conn implements the stateful façade: a Connection binds at
// most one active transaction to a Database and translates a small
// text command surface into Database operations.
package conn

import (
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/go-mvccdb/mvccdb/assert"
	"github.com/go-mvccdb/mvccdb/errors"
	"github.com/go-mvccdb/mvccdb/mvcc"
	"github.com/go-mvccdb/mvccdb/types"
)

// Connection holds at most one active transaction at a time against a
// shared Database. It never locks directly; every operation is forwarded
// to the Database, which is safe to call from any interleaving of
// Connections.
type Connection struct {
	id        uuid.UUID
	db        *mvcc.Database
	currentTx *mvcc.Transaction
}

func NewConnection(db *mvcc.Database) *Connection {
	return &Connection{id: uuid.New(), db: db}
}

func (c *Connection) ID() uuid.UUID {
	return c.id
}

// Begin starts a fresh transaction on this connection. Calling it while
// one is already active is a fatal invariant violation.
func (c *Connection) Begin() types.TxnId {
	assert.Mustf(c.currentTx == nil, "connection %s already has an active transaction", c.id)

	txn := c.db.BeginTransaction()
	c.currentTx = txn
	glog.V(10).Infof("conn %s began %s at %s", c.id, txn.ID, txn.IsolationLevel)
	return txn.ID
}

// Abort completes the active transaction as Aborted and clears it.
func (c *Connection) Abort() error {
	t := c.requireActive()
	assert.MustNoError(c.db.CompleteTransaction(t, types.Aborted))
	c.currentTx = nil
	glog.V(10).Infof("conn %s aborted %s", c.id, t.ID)
	return nil
}

// Commit completes the active transaction as Committed. currentTx is
// cleared whether or not commit succeeds; a conflict error still surfaces
// to the caller.
func (c *Connection) Commit() error {
	t := c.requireActive()
	err := c.db.CompleteTransaction(t, types.Committed)
	c.currentTx = nil
	if err != nil {
		glog.V(5).Infof("conn %s commit of %s failed: %v", c.id, t.ID, err)
		return err
	}
	glog.V(10).Infof("conn %s committed %s", c.id, t.ID)
	return nil
}

func (c *Connection) Set(key string, value types.Value) error {
	return c.db.SetKey(c.requireActive(), key, value)
}

func (c *Connection) Delete(key string) error {
	return c.db.DeleteKey(c.requireActive(), key)
}

func (c *Connection) Get(key string) (types.Value, error) {
	return c.db.GetKey(c.requireActive(), key)
}

func (c *Connection) requireActive() *mvcc.Transaction {
	assert.Mustf(c.currentTx != nil, "connection %s has no active transaction", c.id)
	assert.Mustf(c.currentTx.State() == types.InProgress, "connection %s's transaction %s is not InProgress", c.id, c.currentTx.ID)
	return c.currentTx
}

// ExecCommand dispatches a verb/args pair onto the methods above and
// renders results/errors as plain strings for a text-oriented client.
func (c *Connection) ExecCommand(verb string, args ...string) (string, error) {
	switch strings.ToLower(verb) {
	case "begin":
		return c.Begin().String(), nil
	case "commit":
		if err := c.Commit(); err != nil {
			return "", err
		}
		return "ok", nil
	case "abort":
		if err := c.Abort(); err != nil {
			return "", err
		}
		return "ok", nil
	case "set":
		if len(args) != 2 {
			return "", errors.Annotatef(errors.ErrInvalidCommand, "set takes key and value, got %d args", len(args))
		}
		if err := c.Set(args[0], types.StringValue(args[1])); err != nil {
			return "", err
		}
		return "ok", nil
	case "delete":
		if len(args) != 1 {
			return "", errors.Annotatef(errors.ErrInvalidCommand, "delete takes a key, got %d args", len(args))
		}
		if err := c.Delete(args[0]); err != nil {
			return "", err
		}
		return "ok", nil
	case "get":
		if len(args) != 1 {
			return "", errors.Annotatef(errors.ErrInvalidCommand, "get takes a key, got %d args", len(args))
		}
		val, err := c.Get(args[0])
		if err != nil {
			return "", err
		}
		return val.String(), nil
	default:
		return "", errors.Annotatef(errors.ErrInvalidCommand, "unknown verb %q", verb)
	}
}
