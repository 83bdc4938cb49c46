package cmd

import (
	"strings"
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

// ExampleConnection verify the client command
type ExampleConnection struct {
	name string
	conn redis.Conn
}

// NewExampleConnection create new connection object
func NewExampleConnection(conn redis.Conn) *ExampleConnection {
	return &ExampleConnection{conn: conn}
}

// SetNameEqual verify that setname is visible through getname and list
func (ec *ExampleConnection) SetNameEqual(t *testing.T, name string) {
	reply, err := redis.String(ec.conn.Do("client", "setname", name))
	assert.NoError(t, err)
	assert.Equal(t, "OK", reply)
	ec.name = name

	ec.GetNameEqual(t)

	list, err := redis.String(ec.conn.Do("client", "list"))
	assert.NoError(t, err)
	assert.Contains(t, list, "name="+name+" ")
}

// GetNameEqual verify getname against the last name set
func (ec *ExampleConnection) GetNameEqual(t *testing.T) {
	reply, err := ec.conn.Do("client", "getname")
	assert.NoError(t, err)
	if ec.name == "" {
		assert.Nil(t, reply)
		return
	}
	name, err := redis.String(reply, err)
	assert.NoError(t, err)
	assert.Equal(t, ec.name, name)
}

// ClientEqualErr verify the error of client
func (ec *ExampleConnection) ClientEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := ec.conn.Do("client", args...)
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), errValue), err.Error())
}

// PipelineEqual verify that pipelined commands are answered in order
func (ec *ExampleConnection) PipelineEqual(t *testing.T, msgs ...string) {
	for _, msg := range msgs {
		assert.NoError(t, ec.conn.Send("echo", msg))
	}
	assert.NoError(t, ec.conn.Flush())
	for _, msg := range msgs {
		reply, err := redis.String(ec.conn.Receive())
		assert.NoError(t, err)
		assert.Equal(t, msg, reply)
	}
}

// ClientIDEqual verify client id is a positive integer and stable
func (ec *ExampleConnection) ClientIDEqual(t *testing.T) int64 {
	id, err := redis.Int64(ec.conn.Do("client", "id"))
	assert.NoError(t, err)
	assert.True(t, id > 0, "client id %d", id)

	again, err := redis.Int64(ec.conn.Do("client", "id"))
	assert.NoError(t, err)
	assert.Equal(t, id, again)
	return id
}

// HelloEqual verify hello 2 replies a flat key value array
func (ec *ExampleConnection) HelloEqual(t *testing.T, id int64) {
	reply, err := redis.Values(ec.conn.Do("hello", "2"))
	if !assert.NoError(t, err) || !assert.Len(t, reply, 14) {
		return
	}
	fields := make(map[string]interface{})
	for i := 0; i+1 < len(reply); i += 2 {
		key, err := redis.String(reply[i], nil)
		assert.NoError(t, err)
		fields[key] = reply[i+1]
	}
	proto, err := redis.Int64(fields["proto"], nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), proto)
	got, err := redis.Int64(fields["id"], nil)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
	server, err := redis.String(fields["server"], nil)
	assert.NoError(t, err)
	assert.Equal(t, "respd", server)
}
