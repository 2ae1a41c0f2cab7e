package main

import (
	"flag"
	"strconv"

	"github.com/go-mvccdb/mvccdb/consts"
	"github.com/go-mvccdb/mvccdb/errors"
	"github.com/go-mvccdb/mvccdb/types"
)

var (
	flagIsolation *string
	flagAddr      *string
	flagRepl      *bool
	flagDebug     *bool
)

func registerFlags() {
	flagIsolation = flag.String("isolation", "serializable",
		"default isolation level for every new transaction: "+
			"read-uncommitted|read-committed|repeatable-read|snapshot|serializable")
	flagAddr = flag.String("addr", ":"+strconv.Itoa(consts.DefaultGRPCPort), "address to listen on for the gRPC front end")
	flagRepl = flag.Bool("repl", false, "run a local line-oriented REPL instead of serving gRPC")
	flagDebug = flag.Bool("debug", false, "raise glog verbosity to surface per-command diagnostic output")
}

func parseIsolation(s string) (types.IsolationLevel, error) {
	switch s {
	case "read-uncommitted":
		return types.ReadUncommitted, nil
	case "read-committed":
		return types.ReadCommitted, nil
	case "repeatable-read":
		return types.RepeatableRead, nil
	case "snapshot":
		return types.Snapshot, nil
	case "serializable":
		return types.Serializable, nil
	default:
		return 0, errors.Annotatef(errors.ErrInvalidCommand, "unknown isolation level %q", s)
	}
}
