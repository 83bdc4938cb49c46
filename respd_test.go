package respd

import (
	"io"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/encoding/resp"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func startServer(t *testing.T, maxConns int64) (*Server, string) {
	cfg := conf.MockConf().Server
	cfg.MaxConnection = maxConns
	cfg.MaxBuffer = 1024
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(NewServerContext(&cfg))
	go s.Serve(lis)
	t.Cleanup(func() { s.Stop() })
	return s, lis.Addr().String()
}

type rawConn struct {
	net.Conn
	r *resp.Reader
}

func dialRaw(t *testing.T, addr string) *rawConn {
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	t.Cleanup(func() { conn.Close() })
	return &rawConn{Conn: conn, r: resp.NewReader(conn)}
}

func (c *rawConn) roundTrip(t *testing.T, req string) resp.Frame {
	_, err := io.WriteString(c, req)
	require.NoError(t, err)
	f, err := c.r.ReadFrame()
	require.NoError(t, err)
	return f
}

func TestRedigoClient(t *testing.T) {
	_, addr := startServer(t, 0)
	conn, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	pong, err := redis.String(conn.Do("PING"))
	assert.NoError(t, err)
	assert.Equal(t, "PONG", pong)

	echo, err := redis.String(conn.Do("ECHO", "hello world"))
	assert.NoError(t, err)
	assert.Equal(t, "hello world", echo)

	_, err = conn.Do("NOPE")
	assert.EqualError(t, err, "ERR unknown command 'nope'")

	id, err := redis.Int64(conn.Do("CLIENT", "ID"))
	assert.NoError(t, err)
	assert.True(t, id > 0)

	count, err := redis.Int(conn.Do("COMMAND", "COUNT"))
	assert.NoError(t, err)
	assert.True(t, count > 0)

	all, err := redis.Values(conn.Do("COMMAND"))
	assert.NoError(t, err)
	assert.Len(t, all, count)

	name, err := conn.Do("CLIENT", "GETNAME")
	assert.NoError(t, err)
	assert.Nil(t, name)

	// the connection survives integer and nested replies
	pong, err = redis.String(conn.Do("PING"))
	assert.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestClientListWhileRenaming(t *testing.T) {
	_, addr := startServer(t, 0)
	namer, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer namer.Close()
	lister, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer lister.Close()

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 200; i++ {
			if _, err := namer.Do("CLIENT", "SETNAME", "abc"+strconv.Itoa(i)); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	for i := 0; i < 200; i++ {
		list, err := redis.String(lister.Do("CLIENT", "LIST"))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(list, "\n"))
	}
	require.NoError(t, <-done)

	list, err := redis.String(lister.Do("CLIENT", "LIST"))
	require.NoError(t, err)
	assert.Contains(t, list, "name=abc199 ")
	assert.Contains(t, list, "cmd=client")
}

func TestHello3(t *testing.T) {
	_, addr := startServer(t, 0)
	c := dialRaw(t, addr)

	f := c.roundTrip(t, "*2\r\n$5\r\nHELLO\r\n$1\r\n3\r\n")
	m, ok := f.(*resp.Map)
	require.True(t, ok, "got %T", f)
	proto, _ := m.Get("proto")
	assert.Equal(t, resp.Integer(3), proto)

	// a RESP3 client sees the generic null
	f = c.roundTrip(t, "*2\r\n$6\r\nCLIENT\r\n$7\r\nGETNAME\r\n")
	assert.Equal(t, resp.Null{}, f)

	f = c.roundTrip(t, "*2\r\n$6\r\nCLIENT\r\n$2\r\nID\r\n")
	id, _ := m.Get("id")
	assert.Equal(t, id, f)
}

func TestInlineCommand(t *testing.T) {
	_, addr := startServer(t, 0)
	c := dialRaw(t, addr)

	assert.Equal(t, resp.SimpleString("PONG"), c.roundTrip(t, "PING\r\n"))
	assert.True(t, resp.Equal(resp.NewBulkString("hi"), c.roundTrip(t, "\r\necho   hi\n")))
}

func TestFragmentedRequest(t *testing.T) {
	_, addr := startServer(t, 0)
	c := dialRaw(t, addr)

	req := "*2\r\n$4\r\nECHO\r\n$11\r\nfragmented!\r\n"
	for i := 0; i < len(req); i++ {
		_, err := c.Write([]byte{req[i]})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	f, err := c.r.ReadFrame()
	require.NoError(t, err)
	assert.True(t, resp.Equal(resp.NewBulkString("fragmented!"), f))
}

func TestPipeline(t *testing.T) {
	_, addr := startServer(t, 0)
	c := dialRaw(t, addr)

	_, err := io.WriteString(c, strings.Repeat("*1\r\n$4\r\nPING\r\n", 10))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		f, err := c.r.ReadFrame()
		require.NoError(t, err)
		assert.Equal(t, resp.SimpleString("PONG"), f)
	}
}

func TestProtocolError(t *testing.T) {
	_, addr := startServer(t, 0)
	for name, req := range map[string]string{
		"BadLength":    "*x\r\n",
		"BadType":      "*1\r\n?\r\n",
		"NotArray":     ":+1\r\n",
		"NotString":    "*1\r\n:+1\r\n",
		"BadInteger":   "*1\r\n:1x\r\n",
		"TooLarge":     "*1\r\n$2000\r\n" + strings.Repeat("a", 1100),
		"BadMapKey":    "%1\r\n:1\r\n:2\r\n",
		"BadBoolean":   "#x\r\n",
		"NegativeBulk": "*1\r\n$-2\r\n",
	} {
		t.Run(name, func(t *testing.T) {
			c := dialRaw(t, addr)
			f := c.roundTrip(t, req)
			e, ok := f.(resp.SimpleError)
			require.True(t, ok, "got %#v", f)
			assert.True(t, strings.HasPrefix(string(e), "ERR Protocol error"), string(e))

			_, err := c.r.ReadFrame()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestQuit(t *testing.T) {
	_, addr := startServer(t, 0)
	c := dialRaw(t, addr)
	assert.Equal(t, resp.SimpleString("OK"), c.roundTrip(t, "QUIT\r\n"))
	_, err := c.r.ReadFrame()
	assert.Equal(t, io.EOF, err)
}

func TestMaxConnection(t *testing.T) {
	s, addr := startServer(t, 1)
	first := dialRaw(t, addr)
	assert.Equal(t, resp.SimpleString("PONG"), first.roundTrip(t, "PING\r\n"))

	second := dialRaw(t, addr)
	f, err := second.r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, resp.SimpleError("ERR max number of clients reached"), f)
	_, err = second.r.ReadFrame()
	assert.Equal(t, io.EOF, err)

	// the rejected connection is not counted
	assert.Equal(t, resp.SimpleString("PONG"), first.roundTrip(t, "PING\r\n"))
	assert.EqualValues(t, 1, atomic.LoadInt64(&s.servCtx.Connections))
}

func TestGracefulStop(t *testing.T) {
	s, addr := startServer(t, 0)
	c := dialRaw(t, addr)
	assert.Equal(t, resp.SimpleString("PONG"), c.roundTrip(t, "PING\r\n"))

	require.NoError(t, s.GracefulStop())
	_, err := c.r.ReadFrame()
	assert.Equal(t, io.EOF, err)

	_, err = net.DialTimeout("tcp", addr, 100*time.Millisecond)
	assert.Error(t, err)
}

func TestIdleTimeout(t *testing.T) {
	cfg := conf.MockConf().Server
	cfg.IdleTimeout = 50 * time.Millisecond
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(NewServerContext(&cfg))
	go s.Serve(lis)
	defer s.Stop()

	c := dialRaw(t, lis.Addr().String())
	assert.Equal(t, resp.SimpleString("PONG"), c.roundTrip(t, "PING\r\n"))
	_, err = c.r.ReadFrame()
	assert.Equal(t, io.EOF, err)
}

func TestGetClientID(t *testing.T) {
	idgen := GetClientID()
	assert.Equal(t, int64(2), idgen())
	assert.Equal(t, int64(3), idgen())
	assert.Len(t, GenerateTraceID(), 36)
}
