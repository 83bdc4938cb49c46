package context

import (
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientContext(t *testing.T) {
	assert := assert.New(t)
	c1, c2 := net.Pipe()
	defer c2.Close()

	cli := NewClientContext(2, c1)
	assert.Equal(int64(2), cli.ID)
	assert.Equal(2, cli.Protocol())
	assert.Equal("pipe", cli.RemoteAddr)
	assert.Equal("", cli.Name())
	assert.Equal(cli.Created, cli.Info().Updated)

	cli.Quit()
	cli.Quit()
	_, open := <-cli.Done
	assert.False(open)
	assert.NoError(cli.Close())
}

func TestClientContextAccessors(t *testing.T) {
	assert := assert.New(t)
	cli := &ClientContext{ID: 9, RemoteAddr: "10.0.0.1:5000"}
	assert.Equal(2, cli.Protocol())
	assert.Equal(2, cli.Info().Protocol)

	cli.SetName("worker")
	cli.SetProtocol(3)
	cli.Touch("ping")
	info := cli.Info()
	assert.Equal("worker", info.Name)
	assert.Equal(3, info.Protocol)
	assert.Equal("ping", info.LastCmd)
	assert.Equal("ping", cli.LastCmd())
	assert.Equal(int64(9), info.ID)
	assert.Equal("10.0.0.1:5000", info.RemoteAddr)
	assert.False(info.Updated.IsZero())
}

func TestClientContextConcurrentAccess(t *testing.T) {
	cli := &ClientContext{ID: 3}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			cli.SetName(fmt.Sprintf("name-%d", i))
			cli.Touch("client")
			cli.SetProtocol(2 + i%2)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			info := cli.Info()
			if info.Name != "" {
				assert.Contains(t, info.Name, "name-")
			}
		}
	}()
	wg.Wait()
	assert.Equal(t, "name-999", cli.Name())
}

func TestServerContextConnections(t *testing.T) {
	assert := assert.New(t)
	s := &ServerContext{MaxConns: 2}
	assert.True(s.AddConnection())
	assert.True(s.AddConnection())
	assert.False(s.AddConnection())
	s.DoneConnection()
	s.DoneConnection()
	assert.Equal(int64(1), s.Connections)

	unlimited := &ServerContext{}
	for i := 0; i < 10; i++ {
		assert.True(unlimited.AddConnection())
	}
}

func TestWithCancel(t *testing.T) {
	ctx, cancel := WithCancel(New(&ClientContext{}, &ServerContext{}))
	assert.NotNil(t, ctx.Client)
	cancel()
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}
