package resp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferDecode(t *testing.T) {
	assert := assert.New(t)
	b := NewBuffer(8)

	b.Write([]byte("*2\r\n$3\r\nset\r\n"))
	before := append([]byte(nil), b.Bytes()...)
	f, err := b.Decode()
	assert.Nil(f)
	assert.Equal(ErrNotComplete, err)
	assert.Equal(before, b.Bytes())

	// retrying on the same bytes is harmless
	_, err = b.Decode()
	assert.Equal(ErrNotComplete, err)
	assert.Equal(before, b.Bytes())

	b.Write([]byte("$5\r\nhello\r\n+OK\r\n"))
	n, err := b.ExpectLength()
	assert.NoError(err)
	assert.Equal(24, n)

	f, err = b.Decode()
	require.NoError(t, err)
	assertFrame(t, NewArray(BulkString("set"), BulkString("hello")), f)
	assert.Equal("+OK\r\n", string(b.Bytes()))

	f, err = b.Decode()
	require.NoError(t, err)
	assertFrame(t, SimpleString("OK"), f)
	assert.Equal(0, b.Len())
}

func TestBufferErrorKeepsBytes(t *testing.T) {
	assert := assert.New(t)
	b := &Buffer{}
	b.Write([]byte(":abc\r\n+OK\r\n"))
	_, err := b.Decode()
	assert.True(errors.Is(err, ErrParseInt))
	assert.Equal(":abc\r\n+OK\r\n", string(b.Bytes()))
}

func TestBufferCompacts(t *testing.T) {
	assert := assert.New(t)
	b := NewBuffer(16)
	b.Write([]byte("+a\r\n+b\r\n+c"))
	_, err := b.Decode()
	assert.NoError(err)
	_, err = b.Decode()
	assert.NoError(err)

	// the remaining partial frame slides to the front instead of growing
	b.Write([]byte("\r\n+dddd\r\n"))
	assert.Equal("+c\r\n+dddd\r\n", string(b.Bytes()))
	assert.Equal(16, cap(b.buf))

	for _, want := range []string{"c", "dddd"} {
		f, err := b.Decode()
		assert.NoError(err)
		assertFrame(t, SimpleString(want), f)
	}
	assert.Equal(0, b.Len())
}

func TestBufferFill(t *testing.T) {
	assert := assert.New(t)
	b := NewBuffer(0)
	src := bytes.NewBufferString("#t\r\n")
	n, err := b.Fill(src)
	assert.NoError(err)
	assert.Equal(4, n)
	f, err := b.Decode()
	assert.NoError(err)
	assertFrame(t, Boolean(true), f)

	b.Discard(10)
	assert.Equal(0, b.Len())
}
