// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lines decodes the tablet's proprietary per-page binary stroke
// format ("lines format") into the in-memory Document model. The format
// is versioned, little-endian, and strictly sequential: there are no
// length fields for variable-size regions, so the decoder recovers from
// truncated or corrupted input by keeping everything read so far and
// stopping at the damaged boundary.
package lines

import (
	"encoding/binary"
	"errors"
	"math"
)

// Sentinel errors for the decode pipeline.
var (
	// ErrInvalidFormat marks a fatal header failure: bad or missing
	// signature, zero layers, or a buffer too short to hold the header.
	ErrInvalidFormat = errors.New("invalid lines file")

	// ErrTruncated marks an end-of-buffer condition inside a structure.
	// It is recoverable everywhere past the header: decoding stops at
	// that boundary and keeps what was read.
	ErrTruncated = errors.New("truncated lines data")
)

// cursor is a bounds-checked little-endian reader over an immutable byte
// buffer. The position only moves forward; the format has no backward
// references.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// remaining reports the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// bytes returns the next n bytes and advances, or ErrTruncated if fewer
// than n remain. The returned slice aliases the buffer; callers must not
// modify it.
func (c *cursor) bytes(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrTruncated
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) float32() (float32, error) {
	v, err := c.uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
