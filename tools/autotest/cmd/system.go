package cmd

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

// ExampleSystem verify the connection and server commands
type ExampleSystem struct {
	conn redis.Conn
}

// NewExampleSystem create new system object
func NewExampleSystem(conn redis.Conn) *ExampleSystem {
	return &ExampleSystem{
		conn: conn,
	}
}

// PingEqual verify that ping replies PONG or its argument
func (es *ExampleSystem) PingEqual(t *testing.T) {
	reply, err := redis.String(es.conn.Do("ping", "hello"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", reply)

	reply, err = redis.String(es.conn.Do("ping"))
	assert.NoError(t, err)
	assert.Equal(t, "PONG", reply)
}

// PingEqualErr verify the error of ping
func (es *ExampleSystem) PingEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("ping", args...)
	assert.EqualError(t, err, errValue)
}

// EchoEqual verify that echo returns the message byte for byte
func (es *ExampleSystem) EchoEqual(t *testing.T, msg string) {
	reply, err := redis.Bytes(es.conn.Do("echo", msg))
	assert.NoError(t, err)
	assert.Equal(t, msg, string(reply))
}

// EchoEqualErr verify the error of echo
func (es *ExampleSystem) EchoEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("echo", args...)
	assert.EqualError(t, err, errValue)
}

// TimeEqual verify that time is close to the local clock
func (es *ExampleSystem) TimeEqual(t *testing.T) {
	reply, err := redis.Strings(es.conn.Do("time"))
	assert.NoError(t, err)
	assert.Len(t, reply, 2)
	sec, err := strconv.ParseInt(reply[0], 10, 64)
	assert.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), sec, 2)
}

// InfoEqual verify the sections of info
func (es *ExampleSystem) InfoEqual(t *testing.T, section string, line string) {
	var reply string
	var err error
	if section == "" {
		reply, err = redis.String(es.conn.Do("info"))
	} else {
		reply, err = redis.String(es.conn.Do("info", section))
	}
	assert.NoError(t, err)
	assert.True(t, strings.Contains(reply, line), reply)
}

// UnknownEqualErr verify the error of an unknown command
func (es *ExampleSystem) UnknownEqualErr(t *testing.T, name string) {
	_, err := es.conn.Do(name)
	assert.EqualError(t, err, "ERR unknown command '"+strings.ToLower(name)+"'")
}

// CommandCountEqual verify that command count is a plain integer reply
func (es *ExampleSystem) CommandCountEqual(t *testing.T, want int64) {
	count, err := redis.Int64(es.conn.Do("command", "count"))
	assert.NoError(t, err)
	assert.Equal(t, want, count)
}

// CommandInfoEqual verify the arity and flags of a command
func (es *ExampleSystem) CommandInfoEqual(t *testing.T, name string, arity int64, flags ...string) {
	reply, err := redis.Values(es.conn.Do("command", "info", name))
	if !assert.NoError(t, err) || !assert.Len(t, reply, 1) {
		return
	}
	desc, err := redis.Values(reply[0], nil)
	if !assert.NoError(t, err) || !assert.Len(t, desc, 6) {
		return
	}
	got, err := redis.String(desc[0], nil)
	assert.NoError(t, err)
	assert.Equal(t, strings.ToLower(name), got)
	n, err := redis.Int64(desc[1], nil)
	assert.NoError(t, err)
	assert.Equal(t, arity, n)
	names, err := redis.Strings(desc[2], nil)
	assert.NoError(t, err)
	assert.Equal(t, flags, names)
}
