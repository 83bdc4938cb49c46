package main

import (
	"context"
	"net"
	"time"

	"github.com/shafreeck/retry"

	"github.com/distributedio/respd/encoding"
	"github.com/distributedio/respd/encoding/resp"
)

// Client is a connection to a RESP server
type Client struct {
	conn net.Conn
	r    encoding.FrameReader
	w    encoding.FrameWriter
}

// Dial connects to addr, retrying with exponential backoff until timeout
func Dial(addr string, timeout time.Duration) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var conn net.Conn
	var lastErr error
	r := retry.New(retry.WithBaseDelay(10*time.Millisecond), retry.WithBackoff(retry.Exponential(2)))
	err := r.Ensure(ctx, func() error {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			return retry.Retriable(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return &Client{conn: conn, r: resp.NewReader(conn), w: resp.NewWriter(conn)}, nil
}

// Do sends a command as an array of bulk strings and reads one reply
func (c *Client) Do(args ...string) (resp.Frame, error) {
	req := make(resp.Array, len(args))
	for i, a := range args {
		req[i] = resp.NewBulkString(a)
	}
	if err := c.w.WriteFrame(req); err != nil {
		return nil, err
	}
	if err := c.w.Flush(); err != nil {
		return nil, err
	}
	return c.r.ReadFrame()
}

// Close the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
