// Package fnptr is the runtime half of generated bindings: it resolves entry
// points through a caller-supplied symbol lookup and calls them through
// typed Go function values.
//
// Generated code only ever touches FnPtr, LoadFunc, Resolve and Func.
package fnptr

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
)

// LoadFunc maps a full symbol name (e.g. "glClear") to its address, or 0 when
// the symbol is unavailable.
type LoadFunc func(symbol string) uintptr

// FnPtr is one resolved entry point. The zero value is not loaded.
type FnPtr struct {
	addr    uintptr
	loaded  bool
	symbol  string
	missing func(symbol string)
}

// IsLoaded reports whether any of the candidate names resolved.
func (p FnPtr) IsLoaded() bool { return p.loaded }

// Addr is the resolved address, 0 when not loaded.
func (p FnPtr) Addr() uintptr { return p.addr }

// Symbol is the name that resolved, or the primary name when none did.
func (p FnPtr) Symbol() string { return p.symbol }

// NotLoadedError is the panic value raised when an unresolved entry point is
// invoked.
type NotLoadedError struct {
	API    string
	Symbol string
}

func (e *NotLoadedError) Error() string {
	if e.API == "" {
		return fmt.Sprintf("%s was not loaded", e.Symbol)
	}
	return fmt.Sprintf("%s function was not loaded: %s", e.API, e.Symbol)
}

// Resolve queries primary, then each fallback in order, and stops at the
// first non-zero address. Every name is queried at most once. When nothing
// resolves the entry is bound to missing, which is called with the primary
// name if the entry is ever invoked.
func Resolve(lookup LoadFunc, missing func(symbol string), primary string, fallbacks ...string) FnPtr {
	queried := make(map[string]bool, 1+len(fallbacks))
	for _, name := range append([]string{primary}, fallbacks...) {
		if queried[name] {
			continue
		}
		queried[name] = true
		if addr := lookup(name); addr != 0 {
			return FnPtr{addr: addr, loaded: true, symbol: name, missing: missing}
		}
	}
	return FnPtr{symbol: primary, missing: missing}
}

type bindingKey struct {
	addr uintptr
	typ  reflect.Type
}

var bindings sync.Map // bindingKey -> F

// Func returns p as a callable of type F, which must be a func type matching
// the C signature. Calling Func on an entry that is not loaded invokes the
// entry's missing handler, which is expected not to return; a nil handler
// panics with *NotLoadedError.
func Func[F any](p *FnPtr) F {
	if !p.loaded {
		if p.missing != nil {
			p.missing(p.symbol)
		}
		panic(&NotLoadedError{Symbol: p.symbol})
	}

	key := bindingKey{addr: p.addr, typ: reflect.TypeFor[F]()}
	if fn, ok := bindings.Load(key); ok {
		return fn.(F)
	}

	var fn F
	purego.RegisterFunc(&fn, p.addr)
	actual, _ := bindings.LoadOrStore(key, fn)
	return actual.(F)
}

// Loaded returns an entry that is already resolved to addr. It exists for
// callers that obtain addresses outside of Resolve.
func Loaded(symbol string, addr uintptr) FnPtr {
	if addr == 0 {
		return FnPtr{symbol: symbol}
	}
	return FnPtr{addr: addr, loaded: true, symbol: symbol}
}
