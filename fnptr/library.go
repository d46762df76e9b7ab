package fnptr

import "github.com/teranos/glbind/errors"

// Library is a shared object opened for symbol lookup.
type Library struct {
	path   string
	handle uintptr
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	handle, err := open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to open %s", path),
			"check that the library is installed and on the loader search path")
	}
	return &Library{path: path, handle: handle}, nil
}

// Lookup resolves one symbol, returning 0 when the library does not export it.
// It satisfies LoadFunc.
func (l *Library) Lookup(symbol string) uintptr {
	if l == nil || l.handle == 0 {
		return 0
	}
	return lookup(l.handle, symbol)
}

// Path is the path the library was opened from.
func (l *Library) Path() string { return l.path }

// Chain returns a LoadFunc that asks each lookup in turn, e.g. an extension
// loader such as eglGetProcAddress followed by the library's own exports.
func Chain(lookups ...LoadFunc) LoadFunc {
	return func(symbol string) uintptr {
		for _, lk := range lookups {
			if lk == nil {
				continue
			}
			if addr := lk(symbol); addr != 0 {
				return addr
			}
		}
		return 0
	}
}
