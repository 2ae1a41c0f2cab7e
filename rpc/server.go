// Package rpc is the thin gRPC front end: it holds no visibility or
// commit logic, only a 1:1 translation of streamed Commands onto a
// single conn.Connection's ExecCommand.
package rpc

import (
	"io"

	"github.com/golang/glog"
	"google.golang.org/grpc"

	"github.com/go-mvccdb/mvccdb/conn"
	"github.com/go-mvccdb/mvccdb/errors"
	"github.com/go-mvccdb/mvccdb/mvcc"
	"github.com/go-mvccdb/mvccdb/proto/mvccpb"
)

// Server binds one conn.Connection per gRPC stream for the stream's
// lifetime, giving each network client the same "at most one active
// transaction" façade a local Connection has.
type Server struct {
	db *mvcc.Database
}

func NewServer(db *mvcc.Database) *Server {
	return &Server{db: db}
}

// Session implements mvccpb.EngineServer.
func (s *Server) Session(stream mvccpb.EngineSessionServer) error {
	c := conn.NewConnection(s.db)
	glog.V(10).Infof("rpc session %s opened", c.ID())

	for {
		cmd, err := stream.Recv()
		if err == io.EOF {
			glog.V(10).Infof("rpc session %s closed", c.ID())
			return nil
		}
		if err != nil {
			return err
		}

		value, execErr := c.ExecCommand(cmd.Verb, cmd.Args...)
		result := &mvccpb.Result{Value: value}
		if execErr != nil {
			result.Err = execErr.Error()
			result.ErrCode = errors.GetErrorCode(execErr)
		}
		if err := stream.Send(result); err != nil {
			return err
		}
	}
}

// Register wires a Database onto grpcServer under the Engine service.
func Register(grpcServer *grpc.Server, db *mvcc.Database) {
	grpcServer.RegisterService(&mvccpb.Engine_ServiceDesc, NewServer(db))
}

// ResultToError reconstructs the error half of a Result as the same
// *errors.Error{Code,Msg} shape a direct Connection call would have
// returned, so a caller on the other end of the stream can still use
// errors.IsConflictErr/IsNotExistsErr instead of matching Err as a string.
func ResultToError(r *mvccpb.Result) error {
	if r.Err == "" {
		return nil
	}
	return errors.NewError(r.ErrCode, r.Err)
}
