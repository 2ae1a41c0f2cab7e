// Package mvccpb defines the wire messages and service descriptor for the
// engine's thin gRPC front end. There is no protoc toolchain available to
// generate faithful .pb.go bindings in this environment, so the messages
// are plain Go structs carried over gRPC's documented custom-codec path
// (see codec.go) instead of protobuf wire format; the ServiceDesc/stream
// wiring below is the same shape protoc-gen-go-grpc would emit for a
// single bidi-streaming RPC.
package mvccpb

import "google.golang.org/grpc"

// Command is one verb/args pair from the engine's command surface.
type Command struct {
	Verb string   `json:"verb"`
	Args []string `json:"args"`
}

// Result carries either a success value or an error. ErrCode is only
// meaningful when Err is non-empty; it carries the same stable
// errors.Error.Code a direct Connection caller would see, so a remote
// client can classify the failure without string-matching Err.
type Result struct {
	Value   string `json:"value,omitempty"`
	Err     string `json:"err,omitempty"`
	ErrCode int    `json:"err_code,omitempty"`
}

// EngineServer is implemented by rpc.Server: one Session per client
// connection, exactly one logical Connection bound to it for the
// session's lifetime.
type EngineServer interface {
	Session(EngineSessionServer) error
}

// EngineSessionServer is the server-side handle for a single streaming
// session: every Recv is one exec_command call, every Send its result.
type EngineSessionServer interface {
	Send(*Result) error
	Recv() (*Command, error)
	grpc.ServerStream
}

type engineSessionServer struct {
	grpc.ServerStream
}

func (x *engineSessionServer) Send(m *Result) error {
	return x.ServerStream.SendMsg(m)
}

func (x *engineSessionServer) Recv() (*Command, error) {
	m := new(Command)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _Engine_Session_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(EngineServer).Session(&engineSessionServer{ServerStream: stream})
}

// Engine_ServiceDesc is registered against a *grpc.Server by rpc.Register.
var Engine_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "mvccdb.Engine",
	HandlerType: (*EngineServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Session",
			Handler:       _Engine_Session_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "mvccpb/mvccpb.proto",
}
