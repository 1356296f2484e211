// Package errors provides structured error types for the pinecone codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type includes rich context: field path,
// Go type and wire shape names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindUnsupported).
//		Path("user", "conn").
//		GoType("chan int").
//		Detail("channels have no wire representation").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEnd(path, 4, 1)
//	err := errors.InvalidBool(path, 0x02)
//
// All errors implement the standard error interface and support
// errors.Is/As. Two *Error values match under errors.Is when their
// Phase and Kind agree, so callers can classify failures without
// string matching.
//
// The decode-side kinds enumerate every check the decoder performs.
// The decoder trusts the requested shape and validates nothing beyond
// this list; see the codec package for the full contract.
package errors
