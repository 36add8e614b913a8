package readline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// fakeAPI models readline's buffer semantics in memory: DeleteText
// removes a byte range, InsertText inserts at point and advances it.
type fakeAPI struct {
	buffer  string
	point   int
	history []string

	failInsert bool
	failDelete bool

	undos     []UndoKind
	redisplay int
}

func (f *fakeAPI) Buffer() string { return f.buffer }
func (f *fakeAPI) Point() int     { return f.point }
func (f *fakeAPI) SetPoint(v int) { f.point = v }
func (f *fakeAPI) End() int       { return len(f.buffer) }

func (f *fakeAPI) InsertText(text string) error {
	if f.failInsert {
		f.failInsert = false
		return fmt.Errorf("rl_insert_text returned -1")
	}
	f.buffer = f.buffer[:f.point] + text + f.buffer[f.point:]
	f.point += len(text)
	return nil
}

func (f *fakeAPI) DeleteText(start, end int) error {
	if f.failDelete {
		return fmt.Errorf("rl_delete_text returned -1")
	}
	if start < 0 || end > len(f.buffer) || start > end {
		return fmt.Errorf("bad range [%d, %d)", start, end)
	}
	f.buffer = f.buffer[:start] + f.buffer[end:]
	if f.point > len(f.buffer) {
		f.point = len(f.buffer)
	}
	return nil
}

func (f *fakeAPI) AddUndo(kind UndoKind)  { f.undos = append(f.undos, kind) }
func (f *fakeAPI) ForcedUpdateDisplay()   { f.redisplay++ }
func (f *fakeAPI) HistoryLines() []string { return append([]string(nil), f.history...) }

func TestBridge_CurrentLine(t *testing.T) {
	api := &fakeAPI{buffer: "break main", point: 5}
	b := NewBridge(api)

	line := b.CurrentLine()
	assert.Equal(t, "break main", line.Text)
	assert.Equal(t, 5, line.Point)
}

func TestBridge_CurrentLine_ClampsPoint(t *testing.T) {
	api := &fakeAPI{buffer: "run", point: 99}
	b := NewBridge(api)

	line := b.CurrentLine()
	assert.Equal(t, 3, line.Point)
}

func TestBridge_SetLine(t *testing.T) {
	api := &fakeAPI{buffer: "run", point: 3}
	b := NewBridge(api)

	require.NoError(t, b.SetLine("break main", 10))

	assert.Equal(t, "break main", api.buffer)
	assert.Equal(t, 10, api.point)
	// The whole replacement is one undo group
	assert.Equal(t, []UndoKind{UndoBegin, UndoEnd}, api.undos)
	assert.Positive(t, api.redisplay)
}

func TestBridge_SetLine_DefaultsPointToEnd(t *testing.T) {
	api := &fakeAPI{buffer: "run", point: 1}
	b := NewBridge(api)

	require.NoError(t, b.SetLine("backtrace", -1))
	assert.Equal(t, len("backtrace"), api.point)
}

func TestBridge_SetLine_ReadThenWriteIsIdempotent(t *testing.T) {
	api := &fakeAPI{buffer: "watch *0x1234", point: 7, history: nil}
	b := NewBridge(api)

	line := b.CurrentLine()
	require.NoError(t, b.SetLine(line.Text, line.Point))

	assert.Equal(t, "watch *0x1234", api.buffer)
	assert.Equal(t, 7, api.point)
	// Identical text must not shuffle the undo list
	assert.Empty(t, api.undos)
}

func TestBridge_SetLine_InsertFailureRestoresOriginal(t *testing.T) {
	api := &fakeAPI{buffer: "original line", point: 4, failInsert: true}
	b := NewBridge(api)

	err := b.SetLine("replacement", 0)
	require.Error(t, err)

	var bwErr *ferrors.BufferWriteError
	require.ErrorAs(t, err, &bwErr)
	assert.Equal(t, "replacement", bwErr.Text)

	// Failed interaction leaves the buffer exactly as it was
	assert.Equal(t, "original line", api.buffer)
	assert.Equal(t, 4, api.point)
}

func TestBridge_SetLine_DeleteFailureAborts(t *testing.T) {
	api := &fakeAPI{buffer: "original", point: 2, failDelete: true}
	b := NewBridge(api)

	err := b.SetLine("new", 0)
	require.Error(t, err)
	assert.Equal(t, "original", api.buffer)
}

func TestBridge_History_ReturnsCopy(t *testing.T) {
	api := &fakeAPI{history: []string{"break main", "run", "break main"}}
	b := NewBridge(api)

	snapshot := b.History()
	require.Equal(t, []string{"break main", "run", "break main"}, snapshot)

	// Mutating the snapshot must not touch the fake's backing store
	snapshot[0] = "mutated"
	assert.Equal(t, "break main", api.history[0])
}
