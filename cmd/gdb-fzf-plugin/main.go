// Package main builds the gdb-fzf plugin, a shared library loaded
// into a running GDB. Build with:
//
//	go build -buildmode=c-shared -o gdb-fzf.so ./cmd/gdb-fzf-plugin
//
// The gdbinit hook loads the library and calls gdb_fzf_init, which
// resolves readline's internals from the process image and installs
// the key bindings and the completion hook.
package main

import "C"

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/shaobosong/gdb-fzf/internal/cache"
	"github.com/shaobosong/gdb-fzf/internal/candidates"
	"github.com/shaobosong/gdb-fzf/internal/cli"
	"github.com/shaobosong/gdb-fzf/internal/config"
	"github.com/shaobosong/gdb-fzf/internal/controller"
	"github.com/shaobosong/gdb-fzf/internal/host"
	"github.com/shaobosong/gdb-fzf/internal/keybind"
	"github.com/shaobosong/gdb-fzf/internal/logger"
	"github.com/shaobosong/gdb-fzf/internal/picker"
	"github.com/shaobosong/gdb-fzf/internal/readline"
	"github.com/shaobosong/gdb-fzf/internal/symtab"
	"github.com/shaobosong/gdb-fzf/pkg/version"
)

// plugin holds the wired interaction stack. Resolution and callback
// allocation happen once per process; everything configurable is
// rebuilt on each init call so re-sourcing the hook picks up config
// changes.
type plugin struct {
	ffi       *readline.FFI
	bridge    *readline.Bridge
	registrar *keybind.Registrar
	log       *logger.Logger

	history    *controller.HistorySearch
	command    *controller.CommandSearch
	completion *controller.Completion

	// completionHookFn is the native callback installed as
	// rl_attempted_completion_function, allocated once
	completionHookFn uintptr
}

// active is the process-wide plugin instance. GDB's input loop is
// single-threaded, so no locking is needed around it.
var active *plugin

//export gdb_fzf_init
func gdb_fzf_init() C.int {
	if err := initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "gdb-fzf: %v\n", err)
		return 1
	}
	return 0
}

func initialize() error {
	cfgPath := config.FindConfig(config.ConfigDir())
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, os.Stderr)

	if active == nil {
		manifest, err := symtab.DefaultManifest()
		if err != nil {
			return err
		}
		resolver := symtab.NewResolver(symtab.NewDLLoader(), manifest.FallbackLibraries)
		table, err := resolver.Resolve(manifest.Symbols)
		if err != nil {
			// Enumerates every candidate name that failed to resolve;
			// reported once, nothing gets installed.
			return err
		}
		ffi, err := readline.NewFFI(table)
		if err != nil {
			return err
		}
		active = &plugin{
			ffi:       ffi,
			bridge:    readline.NewBridge(ffi),
			registrar: keybind.NewRegistrar(ffi, log),
		}
	}

	p := active
	p.log = log

	finder := picker.New(cfg.Finder.Command, log)

	var commandCache *cache.Cache
	if c, cacheErr := cache.New(cli.CachePath()); cacheErr == nil {
		commandCache = c
	} else {
		log.Warn().Err(cacheErr).Msg("command cache unavailable")
	}
	source := candidates.NewSource(host.NewClient(cfg.GDB.Path), commandCache, cfg.GDB.Path, version.Version, log)

	// Previews need the helper binary; without it command search still
	// works, just without the help pane.
	helperPath, lookErr := exec.LookPath("gdb-fzf")
	if lookErr != nil {
		helperPath = ""
	}

	p.history = controller.NewHistorySearch(p.bridge, finder, cfg, log)
	p.command = controller.NewCommandSearch(p.bridge, source, finder, cfg, helperPath, log)
	p.completion = controller.NewCompletion(finder, cfg, log)

	if err := p.registrar.BindKey("history", cfg.Keys.History, func() {
		_ = p.history.Trigger(context.Background())
	}); err != nil {
		return err
	}
	if err := p.registrar.BindKey("command", cfg.Keys.Command, func() {
		_ = p.command.Trigger(context.Background())
	}); err != nil {
		return err
	}

	if p.ffi.HasCompletionHook() {
		if p.completionHookFn == 0 {
			p.completionHookFn = readline.NewCompletionCallback(p.onComplete)
		}
		p.registrar.SwapCompletionHook(p.completionHookFn)
	} else {
		log.Warn().Msg("completion hook variable not found; native completion left as-is")
	}

	log.Info().Str("version", version.Version).Msg("gdb-fzf installed")
	return nil
}

// onComplete services one Tab press. It delegates match generation to
// the host's original completer, then lets the completion controller
// decide between deterministic prefix extension and the picker.
func (p *plugin) onComplete(text string, start, end int) uintptr {
	raw := p.ffi.CallCompletionHook(p.registrar.OriginalHook(), text, start, end)
	matches := p.ffi.MatchStrings(raw)

	// A multi-entry readline match list leads with the substitution
	// text; the actual alternatives follow it.
	alternatives := matches
	if len(matches) > 1 {
		alternatives = matches[1:]
	}

	linePrefix := ""
	if buf := p.ffi.Buffer(); start >= 0 && start <= len(buf) {
		linePrefix = buf[:start]
	}

	// A failure is already logged by the controller and comes back as
	// a no-op action, so the error itself needs no handling here.
	replacement, action, _ := p.completion.Complete(context.Background(), text, linePrefix, alternatives)
	p.ffi.ForcedUpdateDisplay()

	switch action {
	case controller.Replace:
		p.ffi.FreeMatchList(raw)
		list, buildErr := p.ffi.NewSingleMatchList(replacement)
		if buildErr != nil {
			p.log.Warn().Err(buildErr).Msg("match list allocation failed")
			return 0
		}
		return list
	case controller.Fallthrough:
		// Hand readline whatever the native completer produced
		return raw
	default:
		// Cancellation or failure: returning no match list keeps
		// readline from inserting anything, so the buffer stays
		// exactly as typed.
		p.ffi.FreeMatchList(raw)
		return 0
	}
}

func main() {}
