package mvcc

import (
	"fmt"

	"github.com/go-mvccdb/mvccdb/types"
)

// Version is a single value revision of a key: once created, only
// TxEndID is ever mutated, and only ever to a positive TxnId.
type Version struct {
	TxStartID types.TxnId
	TxEndID   types.TxnId
	Payload   types.Value
}

// newVersion creates a fresh, live version: tx_end_id starts at the 0
// sentinel meaning "never deleted."
func newVersion(creator types.TxnId, payload types.Value) *Version {
	return &Version{TxStartID: creator, Payload: payload}
}

func (v *Version) isLive() bool {
	return v.TxEndID == 0
}

// supersede marks v as deleted/overwritten by deleter. This is the only
// mutation a Version ever undergoes. TxEndID is never reset to 0, but a
// version whose deleter has not committed can still be visible to another
// transaction (e.g. under Read Committed), and superseding it again
// overwrites the earlier deleter's id.
func (v *Version) supersede(deleter types.TxnId) {
	v.TxEndID = deleter
}

func (v *Version) String() string {
	return fmt.Sprintf("V{start:%s end:%s payload:%q}", v.TxStartID, v.TxEndID, v.Payload)
}
