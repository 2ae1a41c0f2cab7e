package errors

import (
	"fmt"

	"github.com/go-mvccdb/mvccdb/consts"
)

// Error is a client error: one of the recoverable outcomes of a
// get/delete/commit call, as opposed to a fatal invariant violation. It
// always carries a stable Code so callers can branch on error class
// instead of matching strings.
type Error struct {
	Code int
	Msg  string
}

func NewError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s, err_code:%d", e.Msg, e.Code)
}

// Annotatef wraps err with extra call-site context while preserving Code
// for typed errors, falling back to a plain wrapped error otherwise.
func Annotatef(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*Error); ok {
		return &Error{Code: ve.Code, Msg: ve.Msg + ": " + fmt.Sprintf(format, args...)}
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func GetErrorCode(err error) int {
	ve, ok := err.(*Error)
	if !ok || ve == nil {
		return consts.ErrCodeUnknown
	}
	return ve.Code
}

func IsNotExistsErr(err error) bool {
	ve, ok := err.(*Error)
	if !ok {
		return false
	}
	return ve.Code == consts.ErrCodeKeyNotExist
}

// IsConflictErr reports whether err is one of the two commit-time conflict
// errors, both of which drive the transaction to Aborted as a side effect.
func IsConflictErr(err error) bool {
	ve, ok := err.(*Error)
	if !ok {
		return false
	}
	return ve.Code == consts.ErrCodeWriteWriteConflict || ve.Code == consts.ErrCodeReadWriteConflict
}
