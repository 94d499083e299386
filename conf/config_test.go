package conf

import (
	"testing"

	"github.com/shafreeck/configo"
	"github.com/stretchr/testify/assert"

	"github.com/distributedio/respd/encoding/resp"
)

func TestCodecLimits(t *testing.T) {
	c := MockConf().Codec
	assert.Equal(t, resp.DefaultLimits(), c.Limits())

	c.MaxDepth = 8
	assert.Equal(t, 8, c.Limits().MaxDepth)
}

func TestLoadDefaults(t *testing.T) {
	c := &Respd{}
	err := configo.Unmarshal([]byte("[server]\nlisten = \"127.0.0.1:7000\"\n"), c)
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", c.Server.Listen)
	assert.Equal(t, int64(1000), c.Server.MaxConnection)
	assert.Equal(t, 64, c.Codec.MaxDepth)
	assert.Equal(t, int64(536870912), c.Codec.MaxBulkLen)
}

func TestLoadFile(t *testing.T) {
	c := &Respd{}
	assert.NoError(t, configo.Load("respd.toml", c))
	assert.Equal(t, "0.0.0.0:6380", c.Server.Listen)
	assert.Equal(t, resp.DefaultLimits(), c.Codec.Limits())
}
