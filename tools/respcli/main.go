package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	cliAddr    string
	cliTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "respcli [command [arg ...]]",
	Short: "A command line client speaking RESP3",
	Long: "respcli sends a command to a respd server and prints the decoded reply. " +
		"Without arguments it reads commands from stdin, one per line.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := Dial(cliAddr, cliTimeout)
		if err != nil {
			return err
		}
		defer cli.Close()

		if len(args) > 0 {
			return run(cli, args, cmd.OutOrStdout())
		}
		return repl(cli, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&cliAddr, "addr", "127.0.0.1:6380", "server address to connect to")
	rootCmd.Flags().DurationVar(&cliTimeout, "timeout", 5*time.Second, "give up connecting after this long")
}

func run(cli *Client, args []string, out io.Writer) error {
	reply, err := cli.Do(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Format(reply))
	return nil
}

func repl(cli *Client, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, cliAddr+"> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if err := run(cli, args, out); err != nil {
			return err
		}
		if strings.ToLower(args[0]) == "quit" {
			return nil
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
