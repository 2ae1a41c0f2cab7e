package mvccpb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec lets Command/Result travel over gRPC without a protobuf
// runtime: their struct tags in mvccpb.go already describe their JSON shape.
// Clients select it per-call with grpc.CallContentSubtype("json").
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
