// Package pinecone provides a compact, deterministic, schema-less binary
// encoding for structured Go values.
//
// The wire format favors minimum size and minimum CPU work: lengths and
// discriminants are varint-encoded, numeric leaves are raw little-endian,
// and nothing else is written: no field names, no type tags, no version
// header, no checksum. Both ends must agree on the value shape out of
// band; see the codec package for the trust-on-decode contract.
//
// # Architecture Overview
//
// The library is organized into a few packages with distinct
// responsibilities:
//
//	pinecone/        Root package with the shared Sink contract
//	├── codec/       Reflection-compiled encoder/decoder and entry points
//	├── schema/      Textual shape descriptions and dynamic (any-typed) codec
//	├── errors/      Structured error types shared by all packages
//	└── cmd/pine/    CLI for encoding, decoding and inspecting wire data
//
// # Quick Start
//
// Encode and decode a struct:
//
//	type Example struct {
//	    Foo string
//	    Bar *uint32
//	    Zot bool
//	}
//
//	data, err := codec.Marshal(Example{Foo: "hi", Zot: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var out Example
//	if err := codec.Unmarshal(data, &out); err != nil {
//	    log.Fatal(err)
//	}
//
// For zero-allocation encoding into caller-owned memory:
//
//	buf := make([]byte, 64)
//	used, err := codec.MarshalInto(Example{Foo: "hi"}, buf)
package pinecone
