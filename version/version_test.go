package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "now"}
	assert.Equal(t, "glbind dev (commit abc, built now)", dev.String())

	tagged := Info{Version: "v0.3.0", CommitHash: "abc", BuildTime: "now"}
	assert.True(t, strings.HasPrefix(tagged.String(), "glbind v0.3.0"))
	assert.Equal(t, "glbind v0.3.0", tagged.Generator())
}
