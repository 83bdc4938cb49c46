package autotest

import (
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/distributedio/respd/tools/autotest/cmd"
)

//Abnormal check error message
type Abnormal struct {
	ess  *cmd.ExampleSystem
	ec   *cmd.ExampleConnection
	conn redis.Conn
}

//NewAbnormal create object
func NewAbnormal() *Abnormal {
	return &Abnormal{}
}

//Start  create abnormal client
func (an *Abnormal) Start(addr string) {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	an.conn = conn
	an.ess = cmd.NewExampleSystem(conn)
	an.ec = cmd.NewExampleConnection(conn)
}

//Close close annormal client
func (an *Abnormal) Close() {
	an.conn.Close()
}

//SystemCase check system case
func (an *Abnormal) SystemCase(t *testing.T) {
	an.ess.PingEqualErr(t, "ERR wrong number of arguments for 'ping' command", "a", "b")
	an.ess.EchoEqualErr(t, "ERR wrong number of arguments for 'echo' command")
	an.ess.EchoEqualErr(t, "ERR wrong number of arguments for 'echo' command", "a", "b")
	an.ess.UnknownEqualErr(t, "NOSUCHCMD")

	// the connection is still usable after errors
	an.ess.PingEqual(t)
}

//ConnectionCase check connection case
func (an *Abnormal) ConnectionCase(t *testing.T) {
	an.ec.ClientEqualErr(t, "ERR wrong number of arguments for 'client' command")
	an.ec.ClientEqualErr(t, "ERR Syntax error", "kill")
	an.ec.ClientEqualErr(t, "ERR Syntax error", "setname")
	an.ec.ClientEqualErr(t, "ERR Client names cannot contain spaces", "setname", "a b")
}
