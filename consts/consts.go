package consts

// FirstTxnId is the id assigned to the first transaction a Database ever
// begins; ids increase monotonically from here and are never reused.
const FirstTxnId = 1

// DefaultGRPCPort is used by cmd/mvccdb when -addr is not overridden.
const DefaultGRPCPort = 9999

// DebugVerbosity is the glog -v level cmd/mvccdb raises to when -debug is
// set, matching the verbosity every per-command V(10) log line in this
// tree already logs at.
const DebugVerbosity = 10

const (
	ErrCodeKeyNotExist = iota + 1
	ErrCodeWriteWriteConflict
	ErrCodeReadWriteConflict
	ErrCodeInvalidCommand
	ErrCodeUnknown
)
