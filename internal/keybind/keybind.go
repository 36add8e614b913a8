//go:build linux || darwin

// Package keybind installs key bindings and the completion hook into
// the host's readline. Installation is idempotent: re-sourcing the
// plugin in a live session updates handlers in place instead of
// stacking duplicate bindings.
package keybind

import (
	"sync"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
	"github.com/shaobosong/gdb-fzf/internal/logger"
)

// Binder is the readline binding surface the registrar drives.
// *readline.FFI satisfies it.
type Binder interface {
	// BindKeySeq binds an emacs-style key sequence to a command
	// callback pointer
	BindKeySeq(seq string, handler uintptr) error
	// HasCompletionHook reports whether the completion hook variable
	// resolved
	HasCompletionHook() bool
	// CompletionHook reads the current completion function pointer
	CompletionHook() uintptr
	// SetCompletionHook replaces the completion function pointer
	SetCompletionHook(fn uintptr)
}

// Registrar tracks what has been installed so a plugin reload reuses
// the callbacks it already created. Native callback slots are a finite
// resource and cannot be released, so each named binding gets exactly
// one callback for the process lifetime; the handler behind it is
// swappable.
type Registrar struct {
	mu     sync.Mutex
	binder Binder
	log    *logger.Logger

	// newCallback turns a Go handler dispatch into a native command
	// function pointer; overridden in tests
	newCallback func(dispatch func()) uintptr

	handlers  map[string]func()
	callbacks map[string]uintptr
	bound     map[string]string

	originalHook uintptr
	hookSwapped  bool
}

// NewRegistrar creates a registrar over the given binder
func NewRegistrar(binder Binder, log *logger.Logger) *Registrar {
	r := &Registrar{
		binder:    binder,
		log:       log,
		handlers:  make(map[string]func()),
		callbacks: make(map[string]uintptr),
		bound:     make(map[string]string),
	}
	r.newCallback = newCommandCallback
	return r
}

// BindKey binds seq to handler under a stable name. Calling it again
// with the same name replaces the handler without allocating a new
// callback; a changed seq is rebound, and readline's own binding table
// makes the old sequence fall back to its default.
func (r *Registrar) BindKey(name, seq string, handler func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = handler

	cb, ok := r.callbacks[name]
	if !ok {
		// The callback dispatches through the handler map so later
		// installs take effect without a fresh native slot
		cb = r.newCallback(func() {
			r.mu.Lock()
			h := r.handlers[name]
			r.mu.Unlock()
			if h != nil {
				h()
			}
		})
		r.callbacks[name] = cb
	}

	if r.bound[name] == seq {
		return nil
	}
	if err := r.binder.BindKeySeq(seq, cb); err != nil {
		return ferrors.NewLaunchError(seq, "key binding rejected by readline", err)
	}
	r.bound[name] = seq
	r.log.Debug().Str("binding", name).Str("seq", seq).Msg("key sequence bound")
	return nil
}

// SwapCompletionHook installs fn as the completion function, saving
// the host's original hook the first time. It reports whether the
// hook variable is available; when it is not, native completion is
// left alone. Installing the same fn twice is a no-op.
func (r *Registrar) SwapCompletionHook(fn uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.binder.HasCompletionHook() {
		return false
	}
	current := r.binder.CompletionHook()
	if current == fn {
		return true
	}
	if !r.hookSwapped {
		r.originalHook = current
		r.hookSwapped = true
	}
	r.binder.SetCompletionHook(fn)
	r.log.Debug().Msg("completion hook installed")
	return true
}

// OriginalHook returns the completion function that was installed
// before the first swap, 0 when no swap has happened
func (r *Registrar) OriginalHook() uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.originalHook
}

// RestoreCompletionHook puts the host's original completion function
// back. Safe to call when nothing was swapped.
func (r *Registrar) RestoreCompletionHook() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hookSwapped {
		return
	}
	r.binder.SetCompletionHook(r.originalHook)
	r.hookSwapped = false
}
