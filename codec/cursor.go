package codec

import (
	"math"

	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/varint"
)

// cursor is a read-only position over an immutable input slice. All
// reads are bounds-checked against the remaining input; nothing else
// about the bytes is validated here.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

// rest returns the unconsumed tail of the input.
func (c *cursor) rest() []byte {
	return c.data[c.off:]
}

func (c *cursor) takeByte(path []string) (byte, error) {
	if c.off >= len(c.data) {
		return 0, errors.UnexpectedEnd(path, 1, 0)
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

// take returns the next n bytes as a sub-slice of the input, without
// copying. Callers that retain the bytes must copy them.
func (c *cursor) take(n int, path []string) ([]byte, error) {
	if n > c.remaining() {
		return nil, errors.UnexpectedEnd(path, n, c.remaining())
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// takeLength reads a varint length prefix and bounds it to int.
func (c *cursor) takeLength(path []string) (int, error) {
	v, err := c.uvarint(path)
	if err != nil {
		return 0, err
	}
	if uint64(v) > math.MaxInt {
		// No input can hold that many bytes or elements.
		return 0, errors.UnexpectedEnd(path, math.MaxInt, c.remaining())
	}
	return int(v), nil
}

func (c *cursor) uvarint(path []string) (uint, error) {
	v, n, err := varint.Uvarint(c.data[c.off:])
	switch err {
	case nil:
		c.off += n
		return v, nil
	case varint.ErrOverflow:
		return 0, errors.VarintOverflow(path)
	default:
		return 0, errors.UnexpectedEnd(path, 1, 0)
	}
}
