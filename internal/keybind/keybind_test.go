//go:build linux || darwin

package keybind

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaobosong/gdb-fzf/internal/logger"
)

type fakeBinder struct {
	bindings map[string]uintptr
	bindErr  error
	hook     uintptr
	hasHook  bool
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bindings: make(map[string]uintptr), hasHook: true}
}

func (b *fakeBinder) BindKeySeq(seq string, handler uintptr) error {
	if b.bindErr != nil {
		return b.bindErr
	}
	b.bindings[seq] = handler
	return nil
}

func (b *fakeBinder) HasCompletionHook() bool  { return b.hasHook }
func (b *fakeBinder) CompletionHook() uintptr  { return b.hook }
func (b *fakeBinder) SetCompletionHook(fn uintptr) {
	b.hook = fn
}

// newTestRegistrar swaps the native callback factory for counting
// fakes so tests never allocate real callback slots
func newTestRegistrar(b Binder) (*Registrar, *int) {
	r := NewRegistrar(b, logger.New("error", &bytes.Buffer{}))
	created := 0
	r.newCallback = func(dispatch func()) uintptr {
		created++
		return uintptr(created)
	}
	return r, &created
}

func TestBindKey(t *testing.T) {
	binder := newFakeBinder()
	r, created := newTestRegistrar(binder)

	require.NoError(t, r.BindKey("history", `\C-r`, func() {}))
	assert.Equal(t, 1, *created)
	assert.Contains(t, binder.bindings, `\C-r`)
}

func TestBindKey_ReinstallReusesCallback(t *testing.T) {
	binder := newFakeBinder()
	r, created := newTestRegistrar(binder)

	require.NoError(t, r.BindKey("history", `\C-r`, func() {}))
	first := binder.bindings[`\C-r`]

	require.NoError(t, r.BindKey("history", `\C-r`, func() {}))
	assert.Equal(t, 1, *created, "reload must not burn a fresh callback slot")
	assert.Equal(t, first, binder.bindings[`\C-r`])
}

func TestBindKey_ReinstallSwapsHandler(t *testing.T) {
	binder := newFakeBinder()
	r := NewRegistrar(binder, logger.New("error", &bytes.Buffer{}))

	var dispatched func()
	r.newCallback = func(dispatch func()) uintptr {
		dispatched = dispatch
		return 1
	}

	calls := []string{}
	require.NoError(t, r.BindKey("history", `\C-r`, func() { calls = append(calls, "old") }))
	require.NoError(t, r.BindKey("history", `\C-r`, func() { calls = append(calls, "new") }))

	dispatched()
	assert.Equal(t, []string{"new"}, calls, "the live callback routes to the latest handler")
}

func TestBindKey_ChangedSequenceRebinds(t *testing.T) {
	binder := newFakeBinder()
	r, created := newTestRegistrar(binder)

	require.NoError(t, r.BindKey("command", `\ec`, func() {}))
	require.NoError(t, r.BindKey("command", `\C-t`, func() {}))

	assert.Equal(t, 1, *created)
	assert.Contains(t, binder.bindings, `\C-t`)
}

func TestBindKey_BindFailure(t *testing.T) {
	binder := newFakeBinder()
	binder.bindErr = errors.New("invalid sequence")
	r, _ := newTestRegistrar(binder)

	err := r.BindKey("history", `\C-r`, func() {})
	require.Error(t, err)
}

func TestSwapCompletionHook(t *testing.T) {
	binder := newFakeBinder()
	binder.hook = 0xbeef
	r, _ := newTestRegistrar(binder)

	ok := r.SwapCompletionHook(0xcafe)
	require.True(t, ok)
	assert.Equal(t, uintptr(0xcafe), binder.hook)
	assert.Equal(t, uintptr(0xbeef), r.OriginalHook())
}

func TestSwapCompletionHook_IdempotentAndPreservesOriginal(t *testing.T) {
	binder := newFakeBinder()
	binder.hook = 0xbeef
	r, _ := newTestRegistrar(binder)

	require.True(t, r.SwapCompletionHook(0xcafe))
	require.True(t, r.SwapCompletionHook(0xcafe))

	assert.Equal(t, uintptr(0xbeef), r.OriginalHook(),
		"a second swap must not capture our own hook as the original")
}

func TestSwapCompletionHook_UnresolvedVariable(t *testing.T) {
	binder := newFakeBinder()
	binder.hasHook = false
	r, _ := newTestRegistrar(binder)

	assert.False(t, r.SwapCompletionHook(0xcafe))
	assert.Zero(t, binder.hook)
}

func TestRestoreCompletionHook(t *testing.T) {
	binder := newFakeBinder()
	binder.hook = 0xbeef
	r, _ := newTestRegistrar(binder)

	require.True(t, r.SwapCompletionHook(0xcafe))
	r.RestoreCompletionHook()
	assert.Equal(t, uintptr(0xbeef), binder.hook)

	// restoring twice is harmless
	r.RestoreCompletionHook()
	assert.Equal(t, uintptr(0xbeef), binder.hook)
}
