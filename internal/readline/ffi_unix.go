//go:build linux || darwin

package readline

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/shaobosong/gdb-fzf/internal/symtab"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// FFI implements API directly over resolved symbol addresses. It must
// only be constructed from a table whose required symbols all
// resolved; NewFFI enforces that once so the accessors never probe
// resolution status at call sites.
type FFI struct {
	table *symtab.Table

	lineBufferAddr uintptr // rl_line_buffer, a char* variable
	pointAddr      uintptr // rl_point, an int variable
	endAddr        uintptr // rl_end, an int variable
	hookAddr       uintptr // rl_attempted_completion_function, 0 if unresolved

	insertText   func(string) int32
	deleteText   func(int32, int32) int32
	addUndo      func(int32, int32, int32, uintptr)
	historyList  func() uintptr
	bindKeySeq   func(string, uintptr) int32
	forcedUpdate func() int32
	cMalloc      func(uintptr) uintptr
	cFree        func(uintptr)

	// completion hook trampolines, keyed by function pointer
	hookCalls map[uintptr]func(string, int32, int32) uintptr
}

// NewFFI wires function bindings and variable addresses from a
// resolved symbol table
func NewFFI(table *symtab.Table) (*FFI, error) {
	if missing := table.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("ffi built from incomplete symbol table: %v", missing)
	}

	f := &FFI{
		table:          table,
		lineBufferAddr: table.Addr(symtab.KeyLineBuffer),
		pointAddr:      table.Addr(symtab.KeyPoint),
		endAddr:        table.Addr(symtab.KeyEnd),
		hookAddr:       table.Addr(symtab.KeyCompletionHook),
		hookCalls:      make(map[uintptr]func(string, int32, int32) uintptr),
	}

	purego.RegisterFunc(&f.insertText, table.Addr(symtab.KeyInsertText))
	purego.RegisterFunc(&f.deleteText, table.Addr(symtab.KeyDeleteText))
	purego.RegisterFunc(&f.addUndo, table.Addr(symtab.KeyAddUndo))
	purego.RegisterFunc(&f.historyList, table.Addr(symtab.KeyHistoryList))
	purego.RegisterFunc(&f.bindKeySeq, table.Addr(symtab.KeyBindKeySeq))
	purego.RegisterFunc(&f.cMalloc, table.Addr(symtab.KeyMalloc))
	purego.RegisterFunc(&f.cFree, table.Addr(symtab.KeyFree))

	if table.Resolved(symtab.KeyForcedUpdateDisplay) {
		purego.RegisterFunc(&f.forcedUpdate, table.Addr(symtab.KeyForcedUpdateDisplay))
	}

	return f, nil
}

// Buffer returns a copy of rl_line_buffer
func (f *FFI) Buffer() string {
	p := *(*uintptr)(unsafe.Pointer(f.lineBufferAddr))
	return goString(p)
}

// Point returns rl_point
func (f *FFI) Point() int {
	return int(*(*int32)(unsafe.Pointer(f.pointAddr)))
}

// SetPoint writes rl_point
func (f *FFI) SetPoint(v int) {
	*(*int32)(unsafe.Pointer(f.pointAddr)) = int32(v)
}

// End returns rl_end
func (f *FFI) End() int {
	return int(*(*int32)(unsafe.Pointer(f.endAddr)))
}

// InsertText inserts at point via rl_insert_text
func (f *FFI) InsertText(text string) error {
	if ret := f.insertText(text); ret < 0 {
		return fmt.Errorf("rl_insert_text returned %d", ret)
	}
	return nil
}

// DeleteText removes [start, end) via rl_delete_text
func (f *FFI) DeleteText(start, end int) error {
	if ret := f.deleteText(int32(start), int32(end)); ret < 0 {
		return fmt.Errorf("rl_delete_text returned %d", ret)
	}
	return nil
}

// AddUndo records an undo boundary. Only group markers are used here,
// so the position and text arguments stay zero.
func (f *FFI) AddUndo(kind UndoKind) {
	f.addUndo(int32(kind), 0, 0, 0)
}

// ForcedUpdateDisplay redraws via rl_forced_update_display when the
// symbol resolved; otherwise it is a no-op
func (f *FFI) ForcedUpdateDisplay() {
	if f.forcedUpdate != nil {
		f.forcedUpdate()
	}
}

// HistoryLines walks the HIST_ENTRY** returned by history_list and
// copies every line out. The host's history memory is not referenced
// after this returns.
func (f *FFI) HistoryLines() []string {
	list := f.historyList()
	if list == 0 {
		return nil
	}

	var lines []string
	for i := uintptr(0); ; i++ {
		entry := *(*uintptr)(unsafe.Pointer(list + i*ptrSize))
		if entry == 0 {
			break
		}
		// HIST_ENTRY's first field is the line pointer
		line := *(*uintptr)(unsafe.Pointer(entry))
		lines = append(lines, goString(line))
	}
	return lines
}

// BindKeySeq binds a readline key sequence to a command callback
// created with purego.NewCallback
func (f *FFI) BindKeySeq(seq string, handler uintptr) error {
	if ret := f.bindKeySeq(seq, handler); ret != 0 {
		return fmt.Errorf("rl_bind_keyseq(%q) returned %d", seq, ret)
	}
	return nil
}

// HasCompletionHook reports whether rl_attempted_completion_function
// resolved
func (f *FFI) HasCompletionHook() bool {
	return f.hookAddr != 0
}

// CompletionHook reads the current rl_attempted_completion_function
// pointer
func (f *FFI) CompletionHook() uintptr {
	if f.hookAddr == 0 {
		return 0
	}
	return *(*uintptr)(unsafe.Pointer(f.hookAddr))
}

// SetCompletionHook replaces rl_attempted_completion_function
func (f *FFI) SetCompletionHook(fn uintptr) {
	if f.hookAddr != 0 {
		*(*uintptr)(unsafe.Pointer(f.hookAddr)) = fn
	}
}

// CallCompletionHook invokes a saved completion function pointer with
// readline's (text, start, end) convention and returns the raw char**
// match list, 0 when the hook produced none
func (f *FFI) CallCompletionHook(fn uintptr, text string, start, end int) uintptr {
	if fn == 0 {
		return 0
	}
	call, ok := f.hookCalls[fn]
	if !ok {
		purego.RegisterFunc(&call, fn)
		f.hookCalls[fn] = call
	}
	return call(text, int32(start), int32(end))
}

// MatchStrings copies a readline char** match list into Go strings.
// The list itself is not freed.
func (f *FFI) MatchStrings(matches uintptr) []string {
	if matches == 0 {
		return nil
	}
	var out []string
	for i := uintptr(0); ; i++ {
		p := *(*uintptr)(unsafe.Pointer(matches + i*ptrSize))
		if p == 0 {
			break
		}
		out = append(out, goString(p))
	}
	return out
}

// NewSingleMatchList builds a NULL-terminated char** holding one
// match, allocated with the host's malloc so readline can free it
// with its own discipline
func (f *FFI) NewSingleMatchList(match string) (uintptr, error) {
	str := f.cMalloc(uintptr(len(match)) + 1)
	if str == 0 {
		return 0, fmt.Errorf("malloc for match text failed")
	}
	for i := 0; i < len(match); i++ {
		*(*byte)(unsafe.Pointer(str + uintptr(i))) = match[i]
	}
	*(*byte)(unsafe.Pointer(str + uintptr(len(match)))) = 0

	list := f.cMalloc(2 * ptrSize)
	if list == 0 {
		f.cFree(str)
		return 0, fmt.Errorf("malloc for match list failed")
	}
	*(*uintptr)(unsafe.Pointer(list)) = str
	*(*uintptr)(unsafe.Pointer(list + ptrSize)) = 0
	return list, nil
}

// FreeMatchList frees a char** match list and every string in it
func (f *FFI) FreeMatchList(matches uintptr) {
	if matches == 0 {
		return
	}
	for i := uintptr(0); ; i++ {
		p := *(*uintptr)(unsafe.Pointer(matches + i*ptrSize))
		if p == 0 {
			break
		}
		f.cFree(p)
	}
	f.cFree(matches)
}

// goString copies a NUL-terminated C string. Returns "" for NULL.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	var n uintptr
	for *(*byte)(unsafe.Pointer(p + n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}
