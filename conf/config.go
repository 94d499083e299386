package conf

import "github.com/distributedio/respd/encoding/resp"

// Respd configuration center
type Respd struct {
	Server      Server `cfg:"server"`
	Codec       Codec  `cfg:"codec"`
	Status      Status `cfg:"status"`
	Logger      Logger `cfg:"logger"`
	PIDFileName string `cfg:"pid-filename; respd.pid; ; the file name to record connd PID"`
}

// Server config is the config of respd server
type Server struct {
	Auth          string `cfg:"auth;;;client connetion auth"`
	Listen        string `cfg:"listen; 0.0.0.0:6380; netaddr; address to listen"`
	MaxConnection int64  `cfg:"max-connection;1000;numeric;client connection count"`
	CommandRate   int64  `cfg:"command-rate;0;numeric;commands per second allowed on one connection, 0 for unlimited"`
	CommandBurst  int    `cfg:"command-burst;100;numeric;commands allowed in a burst on one connection"`
	PubsubBuffer  int    `cfg:"pubsub-buffer;128;numeric;pending messages kept for a subscriber before dropping"`
}

// Codec config bounds what a peer can make the decoder allocate
type Codec struct {
	MaxBulkLen  int64 `cfg:"max-bulk-len;536870912;numeric;max length of a bulk string"`
	MaxElements int64 `cfg:"max-elements;1048576;numeric;max element count of an array"`
	MaxDepth    int   `cfg:"max-depth;64;numeric;max nesting depth of arrays"`
	MaxLineLen  int   `cfg:"max-line-len;65536;numeric;max length of a simple string or error"`
}

// Limits converts the config to decoder limits
func (c *Codec) Limits() resp.Limits {
	return resp.Limits{
		MaxBulkLen:  c.MaxBulkLen,
		MaxElements: c.MaxElements,
		MaxDepth:    c.MaxDepth,
		MaxLineLen:  c.MaxLineLen,
	}
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
