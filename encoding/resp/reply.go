package resp

import (
	"io"
)

// Reply writes a frame to w
func Reply(w io.Writer, f Frame) error {
	_, err := w.Write(Encode(f))
	return err
}

// ReplyError reply client error
func ReplyError(w io.Writer, msg string) error {
	return Reply(w, NewSimpleError(msg))
}

// ReplySimpleString reply client string
func ReplySimpleString(w io.Writer, msg string) error {
	return Reply(w, NewSimpleString(msg))
}

// ReplyBulkString reply client bulk string
func ReplyBulkString(w io.Writer, msg string) error {
	return Reply(w, BulkString(msg))
}

// ReplyNullBulkString reply client null bulk string
func ReplyNullBulkString(w io.Writer) error {
	return Reply(w, NullBulkString{})
}

// ReplyInteger reply client integer
func ReplyInteger(w io.Writer, val int64) error {
	return Reply(w, Integer(val))
}
