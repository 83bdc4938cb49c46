// Command test runs the autotest cases against a running respd server and
// exits non zero when any of them fails.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/distributedio/respd/tools/autotest"
)

func main() {
	var testcase string
	var addr string

	flag.StringVar(&addr, "addr", "127.0.0.1:6380", "respd server addr")
	flag.StringVar(&testcase, "testcase", "", "system, connection or abnormal, empty runs all")
	flag.Parse()

	client := autotest.NewAutoClient()
	client.Start(addr)
	abnormal := autotest.NewAbnormal()
	abnormal.Start(addr)

	cases := []testing.InternalTest{
		{Name: "system", F: client.SystemCase},
		{Name: "connection", F: client.ConnectionCase},
		{Name: "abnormal-system", F: abnormal.SystemCase},
		{Name: "abnormal-connection", F: abnormal.ConnectionCase},
	}
	var selected []testing.InternalTest
	for _, c := range cases {
		if testcase == "" || strings.HasPrefix(c.Name, testcase) {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		fmt.Fprintf(os.Stderr, "unknown testcase %q\n", testcase)
		os.Exit(2)
	}

	// testing.Main reports each case like go test and exits with its status
	testing.Main(func(pat, str string) (bool, error) { return true, nil }, selected, nil, nil)
}
