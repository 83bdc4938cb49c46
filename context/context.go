package context

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Version information.
var (
	ReleaseVersion = "None"
	BuildTS        = "None"
	GitHash        = "None"
	GitBranch      = "None"
	GitLog         = "None"
	GolangVersion  = "None"
	ConfigFile     = "None"
)

// ClientContext is the runtime context of a client
//
// The name, protocol, last command and update time are written by the
// connection's own goroutine and read by others (CLIENT LIST), so they
// are only reachable through the locked accessors below.
type ClientContext struct {
	RemoteAddr string // Client remote address
	ID         int64  // Client uniq ID
	Created    time.Time
	Close      func() error

	Done chan struct{}
	once sync.Once

	mu       sync.RWMutex
	name     string // set by client setname or hello setname
	protocol int    // negotiated by hello, 2 until then
	updated  time.Time
	lastCmd  string
}

// ClientInfo is a point in time copy of a client's mutable state
type ClientInfo struct {
	ID         int64
	RemoteAddr string
	Name       string
	Protocol   int
	Created    time.Time
	Updated    time.Time
	LastCmd    string
}

// NewClientContext new client context object ,id must be uniq
func NewClientContext(id int64, conn net.Conn) *ClientContext {
	now := time.Now()
	cli := &ClientContext{
		ID:         id,
		Created:    now,
		updated:    now,
		protocol:   2,
		RemoteAddr: conn.RemoteAddr().String(),
		Done:       make(chan struct{}),
		Close:      conn.Close,
	}
	return cli
}

// Quit signals the serving loop to close the connection, it is safe to call more than once
func (c *ClientContext) Quit() {
	c.once.Do(func() { close(c.Done) })
}

// Name returns the client name, empty if never set
func (c *ClientContext) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// SetName names the client
func (c *ClientContext) SetName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// Protocol returns the negotiated protocol version, 2 for a zero context
func (c *ClientContext) Protocol() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.protocol == 0 {
		return 2
	}
	return c.protocol
}

// SetProtocol switches the protocol version used for replies
func (c *ClientContext) SetProtocol(proto int) {
	c.mu.Lock()
	c.protocol = proto
	c.mu.Unlock()
}

// LastCmd returns the name of the last command received
func (c *ClientContext) LastCmd() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastCmd
}

// Touch records cmd as the last command and refreshes the update time
func (c *ClientContext) Touch(cmd string) {
	now := time.Now()
	c.mu.Lock()
	c.lastCmd = cmd
	c.updated = now
	c.mu.Unlock()
}

// Info copies the client state under the read lock
func (c *ClientContext) Info() ClientInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	proto := c.protocol
	if proto == 0 {
		proto = 2
	}
	updated := c.updated
	if updated.IsZero() {
		updated = c.Created
	}
	return ClientInfo{
		ID:         c.ID,
		RemoteAddr: c.RemoteAddr,
		Name:       c.name,
		Protocol:   proto,
		Created:    c.Created,
		Updated:    updated,
		LastCmd:    c.lastCmd,
	}
}

// ServerContext is the runtime context of the server
type ServerContext struct {
	Clients     sync.Map
	Connections int64 // number of connections being served
	MaxConns    int64 // 0 for unlimited
	ReadBuffer  int
	MaxBuffer   int
	IdleTimeout time.Duration
	StartAt     time.Time
}

// AddConnection counts a new connection and reports whether it is within the limit
func (s *ServerContext) AddConnection() bool {
	n := atomic.AddInt64(&s.Connections, 1)
	return s.MaxConns <= 0 || n <= s.MaxConns
}

// DoneConnection uncounts a connection
func (s *ServerContext) DoneConnection() {
	atomic.AddInt64(&s.Connections, -1)
}

// Context combines the client and server context
type Context struct {
	context.Context
	Client *ClientContext
	Server *ServerContext
}

// New a context
func New(c *ClientContext, s *ServerContext) *Context {
	return &Context{Context: context.Background(), Client: c, Server: s}
}

// CancelFunc tells an operation to abandon its work
type CancelFunc context.CancelFunc

// WithCancel returns a copy of parent with a new Done channel
func WithCancel(parent *Context) (*Context, CancelFunc) {
	ctx := *parent
	child, cancel := context.WithCancel(parent.Context)
	ctx.Context = child
	return &ctx, CancelFunc(cancel)
}
