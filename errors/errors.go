package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // shape derivation from a Go type or schema
	PhaseEncode  Phase = "encode"  // value to bytes
	PhaseDecode  Phase = "decode"  // bytes to value
)

// Kind categorizes the error
type Kind string

const (
	// Decode-side structural failures. These are the only checks the
	// decoder ever performs; everything else is trusted.
	KindUnexpectedEnd  Kind = "unexpected_end"  // input exhausted mid-value
	KindVarintOverflow Kind = "varint_overflow" // varint exceeds the native word
	KindInvalidBool    Kind = "invalid_bool"    // boolean byte not 0 or 1
	KindInvalidOption  Kind = "invalid_option"  // option tag not 0 or 1
	KindInvalidChar    Kind = "invalid_char"    // not a Unicode scalar value
	KindInvalidUTF8    Kind = "invalid_utf8"    // string bytes fail validation
	KindInvalidEnum    Kind = "invalid_enum"    // discriminant above the modeled maximum
	KindInvalidVariant Kind = "invalid_variant" // discriminant names no declared case
	KindTrailingBytes  Kind = "trailing_bytes"  // unconsumed input after top-level decode

	// Encode-side failure.
	KindBufferFull Kind = "buffer_full" // bounded sink capacity exhausted

	// Shape derivation failures.
	KindTypeMismatch Kind = "type_mismatch"
	KindUnsupported  Kind = "unsupported"

	// Opaque failure raised by a traversal callback, not the codec.
	KindCustom Kind = "custom"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Shape  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Shape != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Shape != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", shape ")
			b.WriteString(e.Shape)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("shape ")
			b.WriteString(e.Shape)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Shape != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Shape sets the wire shape name
func (b *Builder) Shape(s string) *Builder {
	b.err.Shape = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEnd creates an error for input exhausted before a value was
// fully read.
func UnexpectedEnd(path []string, need, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEnd,
		Path:   path,
		Detail: fmt.Sprintf("need %d more bytes, %d remain", need, remaining),
	}
}

// VarintOverflow creates an error for a varint whose accumulated value
// exceeds the native unsigned word.
func VarintOverflow(path []string) *Error {
	return &Error{
		Phase: PhaseDecode,
		Kind:  KindVarintOverflow,
		Path:  path,
	}
}

// InvalidBool creates an error for a boolean byte that is neither 0 nor 1.
func InvalidBool(path []string, b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBool,
		Path:   path,
		Detail: fmt.Sprintf("boolean byte 0x%02X", b),
	}
}

// InvalidOption creates an error for an option tag that is neither 0 nor 1.
func InvalidOption(path []string, b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidOption,
		Path:   path,
		Detail: fmt.Sprintf("option tag 0x%02X", b),
	}
}

// InvalidChar creates an error for a code point that is not a Unicode
// scalar value.
func InvalidChar(path []string, cp uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidChar,
		Path:   path,
		Detail: fmt.Sprintf("code point U+%X", cp),
	}
}

// InvalidUTF8 creates an error for string bytes that fail UTF-8 validation.
func InvalidUTF8(path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 in % X", preview),
	}
}

// InvalidDiscriminant creates an error for a discriminant above the
// modeled maximum.
func InvalidDiscriminant(path []string, disc uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d exceeds the modeled maximum", disc),
	}
}

// UnknownVariant creates an error for a discriminant that names no
// declared case.
func UnknownVariant(path []string, disc uint64, cases int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidVariant,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d, but only %d cases are declared", disc, cases),
	}
}

// BufferFull creates an error for a bounded sink running out of room.
func BufferFull(need, room int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindBufferFull,
		Detail: fmt.Sprintf("need %d bytes, %d remain", need, room),
	}
}

// TrailingBytes creates an error for unconsumed input after a completed
// top-level decode.
func TrailingBytes(n int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTrailingBytes,
		Detail: fmt.Sprintf("%d unconsumed bytes after value", n),
	}
}

// TypeMismatch creates a shape derivation error for a Go type that does
// not fit the requested shape.
func TypeMismatch(path []string, goType, shape string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Shape:  shape,
	}
}

// Unsupported creates a shape derivation error for a Go type with no
// wire representation.
func Unsupported(path []string, goType, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindUnsupported,
		Path:   path,
		GoType: goType,
		Detail: detail,
	}
}

// Custom wraps an error raised by an external traversal callback.
func Custom(phase Phase, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindCustom,
		Cause: cause,
	}
}
