//go:build linux || darwin

package symtab

import (
	"sync"

	"github.com/ebitengine/purego"
)

// DLLoader resolves symbols with dlsym against the current process
// image, falling back to explicit dlopen of named shared objects.
// Handles stay open for the process lifetime; readline is loaded
// exactly once either way.
type DLLoader struct {
	mu      sync.Mutex
	handles map[string]uintptr
}

// NewDLLoader creates a loader backed by the dynamic linker
func NewDLLoader() *DLLoader {
	return &DLLoader{handles: make(map[string]uintptr)}
}

// Lookup searches the process-wide namespace (RTLD_DEFAULT)
func (l *DLLoader) Lookup(name string) (uintptr, bool) {
	addr, err := purego.Dlsym(purego.RTLD_DEFAULT, name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

// LookupIn searches one shared object, loading it on first use
func (l *DLLoader) LookupIn(library, name string) (uintptr, bool) {
	handle, ok := l.open(library)
	if !ok {
		return 0, false
	}
	addr, err := purego.Dlsym(handle, name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

func (l *DLLoader) open(library string) (uintptr, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if handle, ok := l.handles[library]; ok {
		return handle, handle != 0
	}

	handle, err := purego.Dlopen(library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		// Remember the failure so we do not retry a missing library
		// for every symbol.
		l.handles[library] = 0
		return 0, false
	}
	l.handles[library] = handle
	return handle, true
}
