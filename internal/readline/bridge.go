package readline

import (
	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// Bridge owns the read/write contract over the host's line editor
// state. It never retains a reference into host memory: every read is
// copied out before control returns to the caller.
type Bridge struct {
	api API
}

// NewBridge creates a bridge over the given readline API
func NewBridge(api API) *Bridge {
	return &Bridge{api: api}
}

// CurrentLine copies out the edit buffer and cursor position
func (b *Bridge) CurrentLine() Line {
	text := b.api.Buffer()
	point := b.api.Point()
	if point < 0 {
		point = 0
	}
	if point > len(text) {
		point = len(text)
	}
	return Line{Text: text, Point: point}
}

// SetLine replaces the buffer content and repositions the cursor.
// The whole replacement is a single undo group, matching what a user
// expects from C-_ after a picker commit. Growth happens inside
// rl_insert_text, which manages the buffer's own allocation; the
// bridge never writes past capacity itself.
func (b *Bridge) SetLine(text string, point int) error {
	current := b.CurrentLine()
	if current.Text == text {
		b.movePoint(text, point)
		b.api.ForcedUpdateDisplay()
		return nil
	}

	b.api.AddUndo(UndoBegin)
	defer b.api.AddUndo(UndoEnd)

	if err := b.api.DeleteText(0, b.api.End()); err != nil {
		return ferrors.NewBufferWriteError(text, "host refused buffer delete", err)
	}
	b.api.SetPoint(0)

	if err := b.api.InsertText(text); err != nil {
		// Put the original content back so a failed interaction never
		// leaves a half-written buffer.
		_ = b.api.InsertText(current.Text)
		b.api.SetPoint(current.Point)
		b.api.ForcedUpdateDisplay()
		return ferrors.NewBufferWriteError(text, "host refused buffer insert", err)
	}

	b.movePoint(text, point)
	b.api.ForcedUpdateDisplay()
	return nil
}

func (b *Bridge) movePoint(text string, point int) {
	if point < 0 || point > len(text) {
		point = len(text)
	}
	b.api.SetPoint(point)
}

// History returns a snapshot of the session history, oldest first.
// The returned slice is an independent copy; history memory owned by
// the host is never referenced after this call returns.
func (b *Bridge) History() []string {
	return b.api.HistoryLines()
}

// ForceRedisplay asks the host to repaint the current line
func (b *Bridge) ForceRedisplay() {
	b.api.ForcedUpdateDisplay()
}
