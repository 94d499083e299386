package conf

import "github.com/distributedio/respd/encoding/resp"

// MockConf init and return respd mock conf
func MockConf() *Respd {
	return &Respd{
		Server: Server{
			Listen:        "127.0.0.1:0",
			MaxConnection: 100,
			CommandBurst:  100,
			PubsubBuffer:  16,
		},
		Codec: Codec{
			MaxBulkLen:  resp.DefaultMaxBulkLen,
			MaxElements: resp.DefaultMaxElements,
			MaxDepth:    resp.DefaultMaxDepth,
			MaxLineLen:  resp.DefaultMaxLineLen,
		},
		Status: Status{
			Listen: "127.0.0.1:0",
		},
		Logger: Logger{
			Name:  "respd",
			Path:  "stdout",
			Level: "debug",
		},
	}
}
