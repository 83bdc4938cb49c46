package resp

import (
	"io"
)

const minReadSize = 512

// Buffer is a growable byte buffer that frames are decoded from. Consumed
// bytes are dropped from the front only after a frame decodes successfully,
// so a failed attempt leaves the content exactly as it was.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer creates a buffer with size bytes of initial capacity
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, 0, size)}
}

// Bytes returns the unconsumed bytes, valid until the next modification
func (b *Buffer) Bytes() []byte {
	return b.buf[b.off:]
}

// Len returns the number of unconsumed bytes
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

// Reset drops everything
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// Write appends p, it never fails
func (b *Buffer) Write(p []byte) (int, error) {
	b.grow(len(p))
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// Fill reads once from r into the free space of the buffer
func (b *Buffer) Fill(r io.Reader) (int, error) {
	b.grow(minReadSize)
	n, err := r.Read(b.buf[len(b.buf):cap(b.buf)])
	if n < 0 {
		n = 0
	}
	b.buf = b.buf[:len(b.buf)+n]
	return n, err
}

// ExpectLength runs the frame length check on the unconsumed bytes
func (b *Buffer) ExpectLength() (int, error) {
	return ExpectLength(b.Bytes())
}

// Decode parses one frame and drops its bytes. On error nothing is consumed.
func (b *Buffer) Decode() (Frame, error) {
	f, n, err := Decode(b.Bytes())
	if err != nil {
		return nil, err
	}
	b.Discard(n)
	return f, nil
}

// Discard drops the first n unconsumed bytes
func (b *Buffer) Discard(n int) {
	if n > b.Len() {
		n = b.Len()
	}
	b.off += n
	if b.off == len(b.buf) {
		b.Reset()
	}
}

// grow makes room for n more bytes, sliding unconsumed bytes to the front
// before allocating
func (b *Buffer) grow(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	l := b.Len()
	if b.off > 0 && cap(b.buf)-l >= n {
		copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:l]
		b.off = 0
		return
	}
	buf := make([]byte, l, 2*cap(b.buf)+n)
	copy(buf, b.buf[b.off:])
	b.buf = buf
	b.off = 0
}
