// Package symtab resolves addresses of readline internals from the
// running GDB process image. Resolution happens once at plugin load;
// the resulting table is the only place the rest of the code obtains
// raw addresses from.
package symtab

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// Logical symbol keys used by the bridge and the registrar.
const (
	KeyHistoryList          = "history_list"
	KeyLineBuffer           = "line_buffer"
	KeyPoint                = "point"
	KeyEnd                  = "end"
	KeyInsertText           = "insert_text"
	KeyDeleteText           = "delete_text"
	KeyAddUndo              = "add_undo"
	KeyBindKeySeq           = "bind_keyseq"
	KeyForcedUpdateDisplay  = "forced_update_display"
	KeyCompletionHook       = "completion_hook"
	KeyMalloc               = "malloc"
	KeyFree                 = "free"
)

// Kind distinguishes function symbols from variable symbols
type Kind string

// Symbol kinds
const (
	KindFunc Kind = "func"
	KindVar  Kind = "var"
)

// Spec describes one logical symbol: the candidate names tried in
// order, and whether the feature set behind it can survive without it
type Spec struct {
	Key      string   `yaml:"key"`
	Kind     Kind     `yaml:"kind"`
	Required bool     `yaml:"required"`
	Names    []string `yaml:"names"`
}

// Manifest is the full symbol resolution plan: the ordered symbol
// specs plus the shared objects searched when the process-wide lookup
// comes up empty
type Manifest struct {
	FallbackLibraries []string `yaml:"fallback_libraries"`
	Symbols           []Spec   `yaml:"symbols"`
}

//go:embed symbols.yml
var manifestYAML []byte

// DefaultManifest parses the embedded symbol manifest
func DefaultManifest() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Symbol is one resolved (or unresolved) table entry
type Symbol struct {
	Key      string
	Name     string // the candidate name that matched, empty if unresolved
	Kind     Kind
	Required bool
	Addr     uintptr
	Resolved bool
}

// Table maps logical symbol keys to resolution results. A table is
// immutable once returned by Resolve.
type Table struct {
	symbols map[string]Symbol
}

// Addr returns the resolved address for a logical key, or 0 if the
// key is unknown or unresolved
func (t *Table) Addr(key string) uintptr {
	return t.symbols[key].Addr
}

// Resolved reports whether a logical key resolved to an address
func (t *Table) Resolved(key string) bool {
	return t.symbols[key].Resolved
}

// Lookup returns the full symbol entry for a logical key
func (t *Table) Lookup(key string) (Symbol, bool) {
	s, ok := t.symbols[key]
	return s, ok
}

// Missing returns the candidate names of every unresolved required
// symbol, sorted for stable diagnostics
func (t *Table) Missing() []string {
	var missing []string
	for _, s := range t.symbols {
		if s.Required && !s.Resolved {
			missing = append(missing, s.Key)
		}
	}
	sort.Strings(missing)
	return missing
}

// Loader abstracts dynamic symbol lookup so resolution can be tested
// without a live process image
type Loader interface {
	// Lookup searches the process-wide symbol namespace
	Lookup(name string) (uintptr, bool)
	// LookupIn searches one explicitly loaded shared object
	LookupIn(library, name string) (uintptr, bool)
}

// Resolver resolves symbol specs against a loader with an ordered
// fallback strategy
type Resolver struct {
	loader    Loader
	fallbacks []string
}

// NewResolver creates a resolver. fallbacks is the ordered list of
// shared-object names searched when process-wide lookup fails.
func NewResolver(loader Loader, fallbacks []string) *Resolver {
	return &Resolver{loader: loader, fallbacks: fallbacks}
}

// Resolve builds a symbol table from the given specs. For each spec,
// candidate names are tried in order: process-wide first, then each
// fallback library, first match wins. If any required symbol stays
// unresolved the table is still returned, annotated with a
// SymbolResolutionError that enumerates every missing name.
func (r *Resolver) Resolve(specs []Spec) (*Table, error) {
	table := &Table{symbols: make(map[string]Symbol, len(specs))}
	var missing []string

	for _, spec := range specs {
		sym := Symbol{Key: spec.Key, Kind: spec.Kind, Required: spec.Required}

		for _, name := range spec.Names {
			if addr, ok := r.lookup(name); ok {
				sym.Name = name
				sym.Addr = addr
				sym.Resolved = true
				break
			}
		}

		table.symbols[spec.Key] = sym

		if spec.Required && !sym.Resolved {
			// Report every candidate name that was tried, so the user
			// can match the diagnostic against their readline build.
			missing = append(missing, spec.Names...)
		}
	}

	if len(missing) > 0 {
		return table, ferrors.NewSymbolResolutionError(missing)
	}
	return table, nil
}

func (r *Resolver) lookup(name string) (uintptr, bool) {
	if addr, ok := r.loader.Lookup(name); ok {
		return addr, true
	}
	for _, lib := range r.fallbacks {
		if addr, ok := r.loader.LookupIn(lib, name); ok {
			return addr, true
		}
	}
	return 0, false
}
