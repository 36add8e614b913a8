package candidates

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/kballard/go-shellquote"
)

// PreviewData is the context available to the preview command
// template. Helper and GDB are already shell-quoted; the highlighted
// item is substituted by the finder itself via its {} placeholder,
// which the finder quotes for the shell.
type PreviewData struct {
	Helper string
	GDB    string
}

// BuildPreviewCommand renders the configured preview template into
// the command line handed to the finder's --preview flag
func BuildPreviewCommand(tmpl, helperPath, gdbPath string) (string, error) {
	t, err := template.New("preview").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid preview template: %w", err)
	}

	data := PreviewData{
		Helper: shellquote.Join(helperPath),
		GDB:    shellquote.Join(gdbPath),
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render preview template: %w", err)
	}
	return b.String(), nil
}

// BuildPagerBinding renders the finder key binding that opens the
// full help view for the highlighted candidate in the configured
// pager
func BuildPagerBinding(helperPath, gdbPath, pager string) string {
	helper := shellquote.Join(helperPath)
	return fmt.Sprintf("ctrl-v:execute:%s --gdb %s help {} | %s > /dev/tty", helper, shellquote.Join(gdbPath), pager)
}
