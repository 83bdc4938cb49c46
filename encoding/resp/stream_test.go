package resp

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderFragmented(t *testing.T) {
	assert := assert.New(t)
	input := "*2\r\n$3\r\nset\r\n$5\r\nhello\r\n%1\r\n+k\r\n,-2.5\r\n_\r\n"
	r := NewReaderSize(iotest.OneByteReader(strings.NewReader(input)), 4, 0)

	f, err := r.ReadFrame()
	require.NoError(t, err)
	assertFrame(t, NewArray(BulkString("set"), BulkString("hello")), f)

	f, err = r.ReadFrame()
	require.NoError(t, err)
	assertFrame(t, NewMap().Set("k", Double(-2.5)), f)

	f, err = r.ReadFrame()
	require.NoError(t, err)
	assertFrame(t, Null{}, f)

	_, err = r.ReadFrame()
	assert.Equal(io.EOF, err)

	stats := r.Stats()
	assert.Equal(int64(3), stats.Frames)
	assert.Equal(int64(len(input)), stats.Bytes)
	assert.True(stats.Incomplete > 0)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader(strings.NewReader("*2\r\n$3\r\nset\r\n"))
	_, err := r.ReadFrame()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, 13, r.Buffered())
}

func TestReaderTooLarge(t *testing.T) {
	r := NewReaderSize(strings.NewReader("$100\r\n"+strings.Repeat("a", 40)), 16, 32)
	_, err := r.ReadFrame()
	assert.Equal(t, ErrFrameTooLarge, err)
}

type emptyReader struct{ reads int }

func (r *emptyReader) Read(p []byte) (int, error) {
	r.reads++
	return 0, nil
}

func TestReaderNoProgress(t *testing.T) {
	rd := &emptyReader{}
	r := NewReader(rd)
	_, err := r.ReadFrame()
	assert.Equal(t, io.ErrNoProgress, err)
	assert.Equal(t, maxConsecutiveEmptyReads, rd.reads)

	_, err = r.Peek()
	assert.Equal(t, io.ErrNoProgress, err)
}

func TestReaderLargeFrameSmallReads(t *testing.T) {
	payload := strings.Repeat("x", 256*1024)
	input := "*2\r\n$4\r\nECHO\r\n$" + strconv.Itoa(len(payload)) + "\r\n" + payload + "\r\n"
	r := NewReaderSize(iotest.HalfReader(strings.NewReader(input)), 64, 0)

	f, err := r.ReadFrame()
	require.NoError(t, err)
	assertFrame(t, NewArray(BulkString("ECHO"), BulkString(payload)), f)
	assert.Equal(t, int64(len(input)), r.Stats().Bytes)
	assert.Equal(t, 0, r.Buffered())
}

func TestReaderProtocolError(t *testing.T) {
	r := NewReader(strings.NewReader("?what\r\n"))
	_, err := r.ReadFrame()
	assert.True(t, IsNotComplete(ErrNotComplete))
	assert.False(t, IsNotComplete(err))
	assert.Contains(t, err.Error(), "invalid frame type")
}

func TestReaderInline(t *testing.T) {
	assert := assert.New(t)
	r := NewReader(iotest.HalfReader(strings.NewReader("PING hello\r\n*1\r\n$4\r\nPING\r\n")))

	c, err := r.Peek()
	assert.NoError(err)
	assert.Equal(byte('P'), c)

	line, err := r.ReadLine()
	assert.NoError(err)
	assert.Equal("PING hello", string(line))

	c, err = r.Peek()
	assert.NoError(err)
	assert.Equal(byte(TypeArray), c)

	f, err := r.ReadFrame()
	assert.NoError(err)
	assertFrame(t, NewArray(BulkString("PING")), f)
}

func TestWriter(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	w := NewWriter(out)

	assert.NoError(w.WriteFrame(SimpleString("OK")))
	assert.NoError(w.WriteFrame(Integer(-1)))
	assert.Equal(0, out.Len())

	assert.NoError(w.Flush())
	assert.Equal("+OK\r\n:-1\r\n", out.String())
}

func TestReply(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)

	assert.NoError(ReplyError(out, "ERR bad"))
	assert.NoError(ReplySimpleString(out, "OK"))
	assert.NoError(ReplyBulkString(out, "test"))
	assert.NoError(ReplyNullBulkString(out))
	assert.NoError(ReplyInteger(out, 3))
	assert.NoError(Reply(out, Boolean(false)))
	assert.Equal("-ERR bad\r\n+OK\r\n$4\r\ntest\r\n$-1\r\n:+3\r\n#f\r\n", out.String())
}

func TestReplyErrorLineBreaks(t *testing.T) {
	out := bytes.NewBuffer(nil)
	assert.NoError(t, ReplyError(out, "ERR unknown command 'a\r\nb'"))
	assert.Equal(t, "-ERR unknown command 'a  b'\r\n", out.String())
	assert.Equal(t, SimpleError("x y"), NewSimpleError("x\ny"))
}
