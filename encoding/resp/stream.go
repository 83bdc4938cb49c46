package resp

import (
	"bufio"
	"bytes"
	"io"
)

const (
	// DefaultReadBufferSize is the initial capacity of a Reader's buffer
	DefaultReadBufferSize = 4096

	// maxConsecutiveEmptyReads is how many (0, nil) reads fill tolerates
	// before giving up with io.ErrNoProgress, same limit as bufio
	maxConsecutiveEmptyReads = 100
)

// ReaderStats counts what a Reader has done so far
type ReaderStats struct {
	Frames     int64 // frames decoded
	Bytes      int64 // bytes consumed by decoded frames and lines
	Incomplete int64 // decode attempts that had to wait for more bytes
}

// Reader decodes frames from a byte stream that may arrive in fragments
type Reader struct {
	rd    io.Reader
	buf   *Buffer
	max   int
	stats ReaderStats
}

// NewReader creates a Reader with the default buffer size and no size limit
func NewReader(rd io.Reader) *Reader {
	return NewReaderSize(rd, DefaultReadBufferSize, 0)
}

// NewReaderSize creates a Reader whose buffer starts at size bytes. When max
// is positive, a frame still incomplete after max buffered bytes fails with
// ErrFrameTooLarge.
func NewReaderSize(rd io.Reader, size, max int) *Reader {
	if size <= 0 {
		size = DefaultReadBufferSize
	}
	return &Reader{rd: rd, buf: NewBuffer(size), max: max}
}

// ReadFrame returns the next frame, reading as many times as needed. A
// protocol error is returned as is and the offending bytes stay buffered.
//
// Every retry measures the pending frame again from its first byte, so a
// frame of n bytes arriving in k reads costs O(n*k) scanning. Bulk payloads
// are skipped by their declared length rather than scanned, which keeps the
// cost in the headers; size the read buffer so large frames arrive in few reads.
func (r *Reader) ReadFrame() (Frame, error) {
	for {
		l := r.buf.Len()
		f, err := r.buf.Decode()
		if err == nil {
			r.stats.Frames++
			r.stats.Bytes += int64(l - r.buf.Len())
			return f, nil
		}
		if !IsNotComplete(err) {
			return nil, err
		}
		r.stats.Incomplete++
		if err := r.fill(); err != nil {
			return nil, err
		}
	}
}

// Peek returns the next byte without consuming it
func (r *Reader) Peek() (byte, error) {
	for r.buf.Len() == 0 {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	return r.buf.Bytes()[0], nil
}

// ReadLine consumes bytes up to and including the next LF and returns them
// with the line ending trimmed
func (r *Reader) ReadLine() ([]byte, error) {
	for {
		b := r.buf.Bytes()
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line := make([]byte, i+1)
			copy(line, b)
			r.buf.Discard(i + 1)
			r.stats.Bytes += int64(i + 1)
			return bytes.TrimRight(line, "\r\n"), nil
		}
		if err := r.fill(); err != nil {
			return nil, err
		}
	}
}

// Buffered returns the number of bytes waiting in the buffer
func (r *Reader) Buffered() int {
	return r.buf.Len()
}

// Stats returns the counters of the reader
func (r *Reader) Stats() ReaderStats {
	return r.stats
}

func (r *Reader) fill() error {
	if r.max > 0 && r.buf.Len() >= r.max {
		return ErrFrameTooLarge
	}
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := r.buf.Fill(r.rd)
		if n > 0 {
			return nil
		}
		if err == io.EOF && r.buf.Len() > 0 {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}

// Writer encodes frames onto a buffered stream
type Writer struct {
	w       *bufio.Writer
	scratch []byte
}

// NewWriter creates a Writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteFrame encodes f into the buffer, call Flush to send it
func (w *Writer) WriteFrame(f Frame) error {
	w.scratch = AppendFrame(w.scratch[:0], f)
	_, err := w.w.Write(w.scratch)
	return err
}

// Flush writes buffered frames to the underlying writer
func (w *Writer) Flush() error {
	return w.w.Flush()
}
