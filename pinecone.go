package pinecone

// Sink is the write destination for encoded bytes. The codec package
// provides two implementations: a bounded sink over a caller-owned
// buffer and a growable sink that owns its buffer.
type Sink interface {
	// Append writes data to the sink. A bounded sink fails when the
	// remaining room is smaller than len(data); bytes written by
	// earlier calls stay intact, but the overall encode must then be
	// treated as failed.
	Append(data []byte) error

	// AppendByte writes a single byte to the sink.
	AppendByte(b byte) error

	// Bytes returns the bytes written so far. For a bounded sink this
	// is the used prefix of the caller's buffer; for a growable sink
	// it is the accumulated buffer itself, not a copy.
	Bytes() []byte
}
