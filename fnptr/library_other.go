//go:build !(darwin || freebsd || linux || windows)

package fnptr

import (
	"runtime"

	"github.com/teranos/glbind/errors"
)

func open(path string) (uintptr, error) {
	return 0, errors.Newf("opening shared libraries is not supported on %s", runtime.GOOS)
}

func lookup(uintptr, string) uintptr { return 0 }
