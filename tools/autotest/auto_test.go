package autotest

import (
	"testing"
)

func Test(t *testing.T) {
	an.AuthCase(t)
	an.StringCase(t)
	an.KeyCase(t)
	an.SystemCase(t)
	an.ProtocolCase(t)
	an.NotCommandCase(t)
	an.SplitCase(t)

	at.SystemCase(t)
	at.StringCase(t)
	at.KeyCase(t)
	at.PubsubCase(t)
}
