package encoding

import (
	"github.com/distributedio/respd/encoding/resp"
)

// FrameReader reads whole frames off a connection
type FrameReader interface {
	ReadFrame() (resp.Frame, error)
	Peek() (byte, error)
	ReadLine() ([]byte, error)
}

// FrameWriter writes frames onto a connection
type FrameWriter interface {
	WriteFrame(f resp.Frame) error
	Flush() error
}
