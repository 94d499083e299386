package main

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	stream, err := Writer("stdout", "", true)
	assert.Equal(t, stream, os.Stdout)
	assert.Nil(t, err)

	stream, err = Writer("stderr", "", true)
	assert.Equal(t, stream, os.Stderr)
	assert.Nil(t, err)

	td := t.TempDir()
	_, err = Writer(path.Join(td, "respd-test-log"), "* * * * *", true)
	assert.Nil(t, err)

	_, err = Writer(path.Join(td, "respd-test-log"), "", true)
	assert.NotNil(t, err)
}

func TestConfigureZap(t *testing.T) {
	assert.NoError(t, ConfigureZap("respd", "stdout", "debug", "", false))
	assert.Error(t, ConfigureZap("respd", "stdout", "verbose", "", false))
}
