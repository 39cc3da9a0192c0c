package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/tui/styles"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScanCompleteMsg is sent when a module run finishes. The framework
// normalizes failures into the result, so there is no separate error path.
type ScanCompleteMsg struct {
	Result types.ModuleResult
}

// ScanModel is the view model for the scan progress view.
type ScanModel struct {
	spinner    spinner.Model
	framework  *module.Framework
	moduleName string
	done       bool
	result     types.ModuleResult
}

// NewScanModel creates a scan progress view for the given framework and
// module name. The framework must already have its target set.
func NewScanModel(fw *module.Framework, moduleName string) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	return ScanModel{
		spinner:    sp,
		framework:  fw,
		moduleName: moduleName,
	}
}

// Init starts the spinner and launches the module run.
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runModule())
}

// Update handles spinner ticks and run completion.
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScanCompleteMsg:
		m.done = true
		m.result = msg.Result
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the scan progress.
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Aegis Interactive"))
	b.WriteString("\n\n")

	if m.done {
		if !m.result.Success {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Module failed: %s", m.result.Error)))
		} else {
			b.WriteString("Module complete.\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("%s Running %s...\n",
			m.spinner.View(),
			styles.SelectedStyle.Render(m.moduleName)))
		b.WriteString(fmt.Sprintf("  Target: %s\n", m.framework.Target().Host))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+c quit"))

	return b.String()
}

func (m ScanModel) runModule() tea.Cmd {
	fw := m.framework
	name := m.moduleName
	return func() tea.Msg {
		opts := module.DefaultOptions()

		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout*100)
		defer cancel()

		return ScanCompleteMsg{Result: fw.RunModule(ctx, name, opts)}
	}
}
