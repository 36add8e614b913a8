// Package readline provides typed access to the host's embedded GNU
// readline state: line buffer, cursor, and history. The raw memory
// access lives behind the API interface so everything above it can be
// exercised without a live GDB process.
package readline

// Line is a copied-out snapshot of the edit buffer. Point is a byte
// offset into Text, 0 <= Point <= len(Text).
type Line struct {
	Text  string
	Point int
}

// UndoKind mirrors readline's enum undo_code
type UndoKind int32

// Undo record kinds
const (
	UndoDelete UndoKind = 0
	UndoInsert UndoKind = 1
	UndoBegin  UndoKind = 2
	UndoEnd    UndoKind = 3
)

// API is the low-level readline surface the bridge is built on. The
// production implementation dereferences resolved symbol addresses;
// tests substitute an in-memory fake.
//
// All string results are copies. Nothing returned by this interface
// aliases host memory, so holding a value across a blocking picker
// call is safe.
type API interface {
	// Buffer returns a copy of rl_line_buffer
	Buffer() string
	// Point returns rl_point
	Point() int
	// SetPoint writes rl_point
	SetPoint(int)
	// End returns rl_end, the buffer length in bytes
	End() int
	// InsertText inserts text at point via rl_insert_text
	InsertText(string) error
	// DeleteText removes the byte range [start, end) via rl_delete_text
	DeleteText(start, end int) error
	// AddUndo records an undo boundary via rl_add_undo
	AddUndo(UndoKind)
	// ForcedUpdateDisplay redraws the line if the host supports it
	ForcedUpdateDisplay()
	// HistoryLines walks the history list front-to-back and returns a copy
	HistoryLines() []string
}
