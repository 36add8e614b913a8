//go:build linux || darwin

package keybind

import "github.com/ebitengine/purego"

// newCommandCallback wraps dispatch in readline's rl_command_func_t
// convention, int (*)(int count, int key). The returned pointer lives
// for the rest of the process.
func newCommandCallback(dispatch func()) uintptr {
	return purego.NewCallback(func(count, key int32) int32 {
		dispatch()
		return 0
	})
}
