package respd

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/twinj/uuid"
	"go.uber.org/zap"

	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
)

// LogServerInfo writes the build and the per connection limits the
// server is about to run with
func LogServerInfo(cfg *conf.Server) {
	zap.L().Info("Welcome to respd.",
		zap.String("release-version", context.ReleaseVersion),
		zap.String("git-hash", context.GitHash),
		zap.String("git-branch", context.GitBranch),
		zap.String("build-ts", context.BuildTS),
		zap.String("go-version", context.GolangVersion))
	zap.L().Info("server limits",
		zap.String("listen", cfg.Listen),
		zap.Int64("max-connection", cfg.MaxConnection),
		zap.Int("read-buffer", cfg.ReadBuffer),
		zap.Int("max-buffer", cfg.MaxBuffer),
		zap.Duration("idle-timeout", cfg.IdleTimeout),
		zap.Int("max-bulk-length", resp.MaxBulkLength),
		zap.Int("max-nesting-depth", resp.MaxNestingDepth))

	switch {
	case cfg.MaxBuffer <= 0:
		zap.L().Warn("max-buffer is unlimited, a client can make the server buffer any incomplete frame")
	case cfg.MaxBuffer < cfg.ReadBuffer:
		zap.L().Warn("max-buffer is smaller than read-buffer, frames larger than max-buffer are rejected",
			zap.Int("read-buffer", cfg.ReadBuffer), zap.Int("max-buffer", cfg.MaxBuffer))
	}
	if cfg.MaxConnection <= 0 {
		zap.L().Warn("max-connection is unlimited")
	}
}

// PrintVersionInfo prints the server version and the protocols it speaks
func PrintVersionInfo(w io.Writer) {
	fmt.Fprintln(w, "Welcome to respd.")
	fmt.Fprintln(w, "Release Version: ", context.ReleaseVersion)
	fmt.Fprintln(w, "Git Commit Hash: ", context.GitHash)
	fmt.Fprintln(w, "Git Branch: ", context.GitBranch)
	fmt.Fprintln(w, "UTC Build Time:  ", context.BuildTS)
	fmt.Fprintln(w, "Golang compiler Version: ", context.GolangVersion)
	fmt.Fprintln(w, "Protocols: RESP2, RESP3 (HELLO 3)")
}

//GetClientID starts with 1 and allocates clientID incrementally
func GetClientID() func() int64 {
	var id int64 = 1
	return func() int64 {
		return atomic.AddInt64(&id, 1)
	}
}

//GenerateTraceID grenerates a traceid for once a request
func GenerateTraceID() string { return uuid.NewV4().String() }
