package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormattedLogging(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetDebug(false)
	})

	SetDebug(false)
	Infof("setting up %s", "Linux (Arch)")
	r.Contains(buf.String(), "setting up Linux (Arch)")
	r.NotContains(buf.String(), "INFO", "info renders without a level outside debug mode")

	buf.Reset()
	SetDebug(true)
	Infof("setting up %s", "macOS")
	r.Contains(buf.String(), "INFO")

	buf.Reset()
	Warnf("%s is not on your PATH", "/tmp/bin")
	r.Contains(buf.String(), "/tmp/bin is not on your PATH")
}
