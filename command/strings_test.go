package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func EqualGet(t *testing.T, key string, value string) {
	ctx := ContextTest("get", key)
	Call(ctx)
	assert.Equal(t, value, ctxString(ctx.Out))
}

func TestSet(t *testing.T) {
	out := CallTest("set", "strings-set", "value")
	assert.Equal(t, "+OK\r\n", out.String())
	EqualGet(t, "strings-set", "$5\r\nvalue\r\n")

	out = CallTest("set", "strings-set", "")
	assert.Equal(t, "+OK\r\n", out.String())
	EqualGet(t, "strings-set", "$0\r\n\r\n")
}

func TestGetMissing(t *testing.T) {
	EqualGet(t, "strings-missing", "$-1\r\n")
}

func TestSetExpire(t *testing.T) {
	out := CallTest("set", "strings-px", "value", "PX", "20")
	assert.Equal(t, "+OK\r\n", out.String())
	EqualGet(t, "strings-px", "$5\r\nvalue\r\n")
	time.Sleep(40 * time.Millisecond)
	EqualGet(t, "strings-px", "$-1\r\n")

	out = CallTest("set", "strings-ex", "value", "ex", "100")
	assert.Equal(t, "+OK\r\n", out.String())
	EqualGet(t, "strings-ex", "$5\r\nvalue\r\n")

	// a plain set drops the expiration
	CallTest("set", "strings-px", "value", "px", "20")
	CallTest("set", "strings-px", "value")
	time.Sleep(40 * time.Millisecond)
	EqualGet(t, "strings-px", "$5\r\nvalue\r\n")
}

func TestSetErrors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"k", "v", "ex"}, "-" + ErrSyntax.Error() + "\r\n"},
		{[]string{"k", "v", "nx"}, "-" + ErrSyntax.Error() + "\r\n"},
		{[]string{"k", "v", "ex", "10", "px", "10"}, "-" + ErrSyntax.Error() + "\r\n"},
		{[]string{"k", "v", "ex", "ten"}, "-" + ErrInteger.Error() + "\r\n"},
		{[]string{"k", "v", "px", "0"}, "-" + ErrExpireTime.Error() + "\r\n"},
		{[]string{"k", "v", "ex", "-5"}, "-" + ErrExpireTime.Error() + "\r\n"},
		{[]string{"k", "v", "ex", "9223372036854775807"}, "-" + ErrExpireTime.Error() + "\r\n"},
		{[]string{"k", "v", "px", "9223372036854776"}, "-" + ErrExpireTime.Error() + "\r\n"},
		{[]string{"k"}, "-ERR wrong number of arguments for 'set' command\r\n"},
	}
	for _, c := range cases {
		out := CallTest("set", c.args...)
		assert.Equal(t, c.want, out.String(), c.args)
	}
	EqualGet(t, "k", "$-1\r\n")
}
