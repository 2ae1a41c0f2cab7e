package errors

import "github.com/go-mvccdb/mvccdb/consts"

// Sentinel client errors. Each carries a stable Code from consts so
// callers can classify without string matching.
var (
	ErrKeyNotExist = &Error{
		Code: consts.ErrCodeKeyNotExist,
		Msg:  "key not exist",
	}
	ErrWriteWriteConflict = &Error{
		Code: consts.ErrCodeWriteWriteConflict,
		Msg:  "write-write conflict",
	}
	ErrReadWriteConflict = &Error{
		Code: consts.ErrCodeReadWriteConflict,
		Msg:  "read-write conflict",
	}
	ErrInvalidCommand = &Error{
		Code: consts.ErrCodeInvalidCommand,
		Msg:  "invalid command",
	}
)
