package symtab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// fakeLoader resolves from fixed maps: process-wide symbols plus
// per-library symbols.
type fakeLoader struct {
	process   map[string]uintptr
	libraries map[string]map[string]uintptr
	// opened records library open order for determinism checks
	opened []string
}

func (f *fakeLoader) Lookup(name string) (uintptr, bool) {
	addr, ok := f.process[name]
	return addr, ok
}

func (f *fakeLoader) LookupIn(library, name string) (uintptr, bool) {
	f.opened = append(f.opened, library)
	lib, ok := f.libraries[library]
	if !ok {
		return 0, false
	}
	addr, ok := lib[name]
	return addr, ok
}

func TestDefaultManifest(t *testing.T) {
	m, err := DefaultManifest()
	require.NoError(t, err)

	assert.NotEmpty(t, m.FallbackLibraries)
	assert.Equal(t, "libreadline.so.8", m.FallbackLibraries[0])

	keys := make(map[string]Spec)
	for _, s := range m.Symbols {
		keys[s.Key] = s
	}

	// Every logical symbol the bridge depends on must be declared
	for _, key := range []string{
		KeyHistoryList, KeyLineBuffer, KeyPoint, KeyEnd,
		KeyInsertText, KeyDeleteText, KeyAddUndo, KeyBindKeySeq,
		KeyMalloc, KeyFree, KeyForcedUpdateDisplay, KeyCompletionHook,
	} {
		assert.Contains(t, keys, key)
	}

	assert.True(t, keys[KeyLineBuffer].Required)
	assert.False(t, keys[KeyCompletionHook].Required)
	assert.Equal(t, KindVar, keys[KeyPoint].Kind)
	assert.Equal(t, KindFunc, keys[KeyInsertText].Kind)
}

func TestResolver_ProcessWideFirst(t *testing.T) {
	loader := &fakeLoader{
		process: map[string]uintptr{"rl_line_buffer": 0x1000},
		libraries: map[string]map[string]uintptr{
			"libreadline.so.8": {"rl_line_buffer": 0x2000},
		},
	}
	r := NewResolver(loader, []string{"libreadline.so.8"})

	table, err := r.Resolve([]Spec{
		{Key: KeyLineBuffer, Kind: KindVar, Required: true, Names: []string{"rl_line_buffer"}},
	})
	require.NoError(t, err)

	// Process-wide match wins over the fallback library
	assert.Equal(t, uintptr(0x1000), table.Addr(KeyLineBuffer))
	assert.True(t, table.Resolved(KeyLineBuffer))
	assert.Empty(t, loader.opened)
}

func TestResolver_FallbackLibraryOrder(t *testing.T) {
	loader := &fakeLoader{
		process: map[string]uintptr{},
		libraries: map[string]map[string]uintptr{
			"libreadline.so.7": {"rl_point": 0x3000},
			"libreadline.so":   {"rl_point": 0x4000},
		},
	}
	r := NewResolver(loader, []string{"libreadline.so.8", "libreadline.so.7", "libreadline.so"})

	table, err := r.Resolve([]Spec{
		{Key: KeyPoint, Kind: KindVar, Required: true, Names: []string{"rl_point"}},
	})
	require.NoError(t, err)

	// First library in the fallback list that has the symbol wins
	assert.Equal(t, uintptr(0x3000), table.Addr(KeyPoint))
}

func TestResolver_NameGroupOrder(t *testing.T) {
	loader := &fakeLoader{
		process: map[string]uintptr{
			"rl_forced_update_display": 0x5000,
			"rl_refresh_line":          0x6000,
		},
	}
	r := NewResolver(loader, nil)

	table, err := r.Resolve([]Spec{
		{Key: KeyForcedUpdateDisplay, Kind: KindFunc, Names: []string{"rl_forced_update_display", "rl_refresh_line"}},
	})
	require.NoError(t, err)

	sym, ok := table.Lookup(KeyForcedUpdateDisplay)
	require.True(t, ok)
	assert.Equal(t, "rl_forced_update_display", sym.Name)
	assert.Equal(t, uintptr(0x5000), sym.Addr)
}

func TestResolver_Deterministic(t *testing.T) {
	loader := &fakeLoader{
		process: map[string]uintptr{
			"rl_line_buffer": 0x1000,
			"rl_point":       0x2000,
		},
	}
	r := NewResolver(loader, nil)
	specs := []Spec{
		{Key: KeyLineBuffer, Kind: KindVar, Required: true, Names: []string{"rl_line_buffer"}},
		{Key: KeyPoint, Kind: KindVar, Required: true, Names: []string{"rl_point"}},
	}

	first, err := r.Resolve(specs)
	require.NoError(t, err)
	second, err := r.Resolve(specs)
	require.NoError(t, err)

	assert.Equal(t, first.Addr(KeyLineBuffer), second.Addr(KeyLineBuffer))
	assert.Equal(t, first.Addr(KeyPoint), second.Addr(KeyPoint))
}

func TestResolver_CollectsAllMissingRequired(t *testing.T) {
	loader := &fakeLoader{process: map[string]uintptr{"rl_end": 0x1}}
	r := NewResolver(loader, nil)

	table, err := r.Resolve([]Spec{
		{Key: KeyLineBuffer, Kind: KindVar, Required: true, Names: []string{"rl_line_buffer"}},
		{Key: KeyEnd, Kind: KindVar, Required: true, Names: []string{"rl_end"}},
		{Key: KeyPoint, Kind: KindVar, Required: true, Names: []string{"rl_point", "rl_cursor"}},
	})

	require.Error(t, err)
	var resErr *ferrors.SymbolResolutionError
	require.True(t, errors.As(err, &resErr))

	// Every candidate name of every unresolved required symbol is
	// reported, not just the first failure.
	assert.ElementsMatch(t, []string{"rl_line_buffer", "rl_point", "rl_cursor"}, resErr.Missing)

	// The table is still returned with the partial results annotated
	require.NotNil(t, table)
	assert.True(t, table.Resolved(KeyEnd))
	assert.False(t, table.Resolved(KeyLineBuffer))
	assert.ElementsMatch(t, []string{KeyLineBuffer, KeyPoint}, table.Missing())
}

func TestResolver_OptionalDegradesGracefully(t *testing.T) {
	loader := &fakeLoader{process: map[string]uintptr{}}
	r := NewResolver(loader, nil)

	table, err := r.Resolve([]Spec{
		{Key: KeyCompletionHook, Kind: KindVar, Required: false, Names: []string{"rl_attempted_completion_function"}},
	})

	require.NoError(t, err)
	assert.False(t, table.Resolved(KeyCompletionHook))
	assert.Zero(t, table.Addr(KeyCompletionHook))
	assert.Empty(t, table.Missing())
}
