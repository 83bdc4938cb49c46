package autotest

import (
	"strings"
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/distributedio/respd/tools/autotest/cmd"
)

//AutoClient check redis comman
type AutoClient struct {
	*cmd.ExampleSystem
	ec   *cmd.ExampleConnection
	conn redis.Conn
}

//NewAutoClient creat auto client
func NewAutoClient() *AutoClient {
	return &AutoClient{}
}

//Start run client
func (ac *AutoClient) Start(addr string) {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	ac.conn = conn
	ac.ExampleSystem = cmd.NewExampleSystem(conn)
	ac.ec = cmd.NewExampleConnection(conn)
}

//Close shut client
func (ac *AutoClient) Close() {
	ac.conn.Close()
}

//SystemCase check system case
func (ac *AutoClient) SystemCase(t *testing.T) {
	ac.PingEqual(t)
	ac.EchoEqual(t, "hello")
	ac.EchoEqual(t, "")
	ac.EchoEqual(t, "line\r\nbreak")
	ac.EchoEqual(t, strings.Repeat("x", 64*1024))
	ac.TimeEqual(t)
	ac.InfoEqual(t, "", "# Server")
	ac.InfoEqual(t, "clients", "connected_clients:")
	ac.InfoEqual(t, "commandstats", "cmdstat_echo:calls=")
	ac.CommandCountEqual(t, 8)
	ac.CommandInfoEqual(t, "ECHO", 2, "fast")
	ac.CommandInfoEqual(t, "client", -2, "admin", "noscript")
}

//ConnectionCase check connection case
func (ac *AutoClient) ConnectionCase(t *testing.T) {
	id := ac.ec.ClientIDEqual(t)
	ac.ec.HelloEqual(t, id)
	ac.ec.GetNameEqual(t)
	ac.ec.SetNameEqual(t, "autotest")
	ac.ec.SetNameEqual(t, "autotest-2")
	ac.ec.PipelineEqual(t, "a", "b", "c", "d")
}
