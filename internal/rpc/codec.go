// Package rpc describes the Pokodex gRPC service: its messages, a JSON wire
// codec, the service descriptor used by the server and a typed client.
//
// Messages are plain Go structs encoded as JSON, so the service is registered
// with a hand-written grpc.ServiceDesc instead of protoc-generated stubs.
// Clients select the codec with grpc.CallContentSubtype(CodecName).
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype the JSON codec is registered under.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
