package integration

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd"
	"github.com/distributedio/respd/conf"
)

var (
	svr *respd.Server
	cfg = conf.MockConf().Server
	//ServerAddr default server addr
	ServerAddr = "127.0.0.1:17369"
)

// SetAddr set server listen addr
func SetAddr(addr string) {
	ServerAddr = addr
}

// SetMaxConnection limits the number of clients, 0 for unlimited
func SetMaxConnection(n int64) {
	cfg.MaxConnection = n
}

//Start start server and wait until it accepts connections
func Start() error {
	zap.ReplaceGlobals(zap.NewNop())
	lis, err := net.Listen("tcp", ServerAddr)
	if err != nil {
		return err
	}
	svr = respd.New(respd.NewServerContext(&cfg))
	go svr.Serve(lis)
	return waitReady(ServerAddr, time.Second)
}

func waitReady(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, timeout)
		if err == nil {
			return conn.Close()
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
}

//Close close server listen fd
func Close() {
	if err := svr.GracefulStop(); err != nil {
		fmt.Println(err)
	}
}
