// Licensed under the MIT (MIT-LICENSE.txt) license.

package assert

import "fmt"

// Must panics on invariant violations: a caller bug (double begin, a
// command with no active transaction, a command on a terminated
// transaction, a reference to an unknown TxId) is fatal, not a client
// error.
func Must(b bool) {
	if b {
		return
	}
	panic("assertion failed")
}

func Mustf(b bool, format string, args ...interface{}) {
	if b {
		return
	}
	panic(fmt.Sprintf(format, args...))
}

func MustNoError(err error) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf("'%s', error happens, assertion failed", err.Error()))
}
