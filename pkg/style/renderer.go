package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/extension"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderExtensionList(exts []*extension.Extension) string
	RenderFileList(title string, paths []string) string
	RenderExport(dir string, files []string, dryRun bool) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderExtensionList renders extensions in the order given. Enabled
// entries are numbered by load position; disabled and ignored ones keep
// their place in the list but carry no position.
func (r *TerminalRenderer) RenderExtensionList(exts []*extension.Extension) string {
	if len(exts) == 0 {
		return MutedStyle.Render("No extensions installed")
	}

	installed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		installed[ext.ID()] = true
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Installed Extensions") + "\n\n")

	position := 0
	for _, ext := range exts {
		indicator := DisabledIndicator
		state := ""
		slot := "  "
		switch {
		case ext.Ignored:
			indicator = IgnoredIndicator
			state = MutedStyle.Render(" [ignored]")
		case !ext.Enabled:
			state = MutedStyle.Render(" [disabled]")
		default:
			indicator = EnabledIndicator
			position++
			slot = fmt.Sprintf("%2d", position)
		}

		name := ext.Descriptor.Name
		if name == "" {
			name = ext.ID()
		}
		line := fmt.Sprintf("%s %s %s %s%s", slot, indicator, Bold(ext.ID()),
			MutedStyle.Render(name), state)
		result.WriteString(line + "\n")

		if deps := r.renderDependencies(ext, installed); deps != "" {
			result.WriteString(Indent(deps, 3) + "\n")
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderDependencies formats one extension's dependency line, marking
// optional deps and flagging the ones not installed.
func (r *TerminalRenderer) renderDependencies(ext *extension.Extension, installed map[string]bool) string {
	if len(ext.Descriptor.Dependencies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ext.Descriptor.Dependencies))
	for _, dep := range ext.Descriptor.Dependencies {
		s := dep.ID
		if dep.Optional {
			s += "?"
		}
		if !installed[dep.ID] {
			if dep.Optional {
				s = MutedStyle.Render(s + " (missing)")
			} else {
				s = ErrorStyle.Render(s + " (missing)")
			}
		} else {
			s = MutedStyle.Render(s)
		}
		parts = append(parts, s)
	}
	return MutedStyle.Render("requires: ") + strings.Join(parts, MutedStyle.Render(", "))
}

// RenderFileList renders virtual paths under a heading
func (r *TerminalRenderer) RenderFileList(title string, paths []string) string {
	if len(paths) == 0 {
		return MutedStyle.Render("No files found")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render(title) + "\n\n")
	for _, p := range paths {
		result.WriteString(fmt.Sprintf("%s %s\n", pterm.Info.Prefix.Text, PathStyle.Render(p)))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderExport renders the outcome of an export run
func (r *TerminalRenderer) RenderExport(dir string, files []string, dryRun bool) string {
	var result strings.Builder
	if dryRun {
		result.WriteString(WarningStyle.Render("DRY RUN - no files were written") + "\n\n")
	}
	result.WriteString(TitleStyle.Render("Exported Extension") + "\n\n")
	result.WriteString(PathStyle.Render(dir) + "\n")
	for _, f := range files {
		indicator := EnabledIndicator
		if dryRun {
			indicator = DisabledIndicator
		}
		result.WriteString(fmt.Sprintf("  %s %s\n", indicator, f))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(code),
			err.Error())
	}

	// Generic error
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderExtensionList renders a plain extension list
func (r *PlainRenderer) RenderExtensionList(exts []*extension.Extension) string {
	if len(exts) == 0 {
		return "No extensions installed"
	}

	var result strings.Builder
	result.WriteString("Installed extensions:\n")
	for _, ext := range exts {
		state := "enabled"
		if ext.Ignored {
			state = "ignored"
		} else if !ext.Enabled {
			state = "disabled"
		}
		result.WriteString(fmt.Sprintf("  - %s (%s)\n", ext.ID(), state))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderFileList renders plain virtual paths
func (r *PlainRenderer) RenderFileList(title string, paths []string) string {
	if len(paths) == 0 {
		return "No files found"
	}

	var result strings.Builder
	result.WriteString(title + ":\n")
	for _, p := range paths {
		result.WriteString(fmt.Sprintf("  - %s\n", p))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderExport renders a plain export outcome
func (r *PlainRenderer) RenderExport(dir string, files []string, dryRun bool) string {
	var result strings.Builder
	if dryRun {
		result.WriteString("DRY RUN - no files were written\n")
	}
	result.WriteString(fmt.Sprintf("Exported to %s:\n", dir))
	for _, f := range files {
		result.WriteString(fmt.Sprintf("  - %s\n", f))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}
