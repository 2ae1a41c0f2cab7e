// Command mvccdb parses a handful of flags, constructs a mvcc.Database,
// and either serves it over gRPC or runs a minimal REPL. Neither the flag
// layer nor the REPL loop implement any isolation or conflict logic;
// they only ever call conn.Connection.ExecCommand.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/golang/glog"
	"google.golang.org/grpc"

	"github.com/go-mvccdb/mvccdb/conn"
	"github.com/go-mvccdb/mvccdb/consts"
	"github.com/go-mvccdb/mvccdb/mvcc"
	"github.com/go-mvccdb/mvccdb/rpc"
	"github.com/go-mvccdb/mvccdb/utils"
)

func main() {
	registerFlags()
	flag.Parse()
	defer glog.Flush()

	if *flagDebug {
		utils.SetLogLevel(consts.DebugVerbosity)
	}

	level, err := parseIsolation(*flagIsolation)
	if err != nil {
		glog.Exitf("invalid -isolation: %v", err)
	}
	db := mvcc.NewDatabase(level)

	if *flagRepl {
		runREPL(db)
		return
	}
	runGRPCServer(db, *flagAddr)
}

func runGRPCServer(db *mvcc.Database, addr string) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		glog.Exitf("listen on %s failed: %v", addr, err)
	}

	server := grpc.NewServer()
	rpc.Register(server, db)

	glog.Infof("mvccdb listening on %s", addr)
	if err := server.Serve(lis); err != nil {
		glog.Exitf("serve failed: %v", err)
	}
}

// runREPL is a deliberately minimal line-oriented driver: split each line
// on whitespace, treat the first token as the verb, dispatch the rest as
// args. No grammar, history, or completion; it exists only to make the
// engine pokeable without a network client.
func runREPL(db *mvcc.Database) {
	c := conn.NewConnection(db)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("mvccdb REPL — begin | commit | abort | set <k> <v> | delete <k> | get <k>")
	for scanner.Scan() {
		parts := utils.TrimmedSplit(scanner.Text(), " ")
		if len(parts) == 0 {
			continue
		}
		verb, args := parts[0], parts[1:]

		result, err := c.ExecCommand(verb, args...)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(result)
	}
}
