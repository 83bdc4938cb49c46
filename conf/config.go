package conf

import "time"

// Respd configuration center
type Respd struct {
	Server      Server `cfg:"server"`
	Status      Status `cfg:"status"`
	Logger      Logger `cfg:"logger"`
	PIDFileName string `cfg:"pid-filename; respd.pid; ; the file name to record connd PID"`
}

// Server config is the config of respd server
type Server struct {
	Listen        string        `cfg:"listen; 0.0.0.0:6380; netaddr; address to listen"`
	MaxConnection int64         `cfg:"max-connection;1000;numeric;client connection count"`
	ReadBuffer    int           `cfg:"read-buffer;4096;numeric;initial read buffer size of a connection in bytes"`
	MaxBuffer     int           `cfg:"max-buffer;67108864;numeric;largest incomplete frame in bytes before the connection is dropped"`
	IdleTimeout   time.Duration `cfg:"idle-timeout;0s;;close connections idle for this long, 0 to disable"`
}

// Logger config is the config of default zap log
type Logger struct {
	Name       string `cfg:"name; respd; ; the default logger name"`
	Path       string `cfg:"path; logs/respd; ; the default log path"`
	Level      string `cfg:"level; info; ; log level(debug, info, warn, error, panic, fatal)"`
	Compress   bool   `cfg:"compress; false; boolean; true for enabling log compress"`
	TimeRotate string `cfg:"time-rotate; 0 0 0 * * *; ; log time rotate pattern(s m h D M W)"`
}

// Status config is the config of exported server
type Status struct {
	Listen string `cfg:"listen;0.0.0.0:6381;nonempty; listen address of http server"`
}
