package views

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aegis-sec/aegis/internal/output"
	"github.com/aegis-sec/aegis/internal/tui/styles"
	"github.com/aegis-sec/aegis/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultsModel is the view model for displaying module results.
type ResultsModel struct {
	results   []types.ModuleResult
	cursor    int
	offset    int
	maxRows   int
	exported  bool
	exportErr string
}

// NewResultsModel creates a results view from module results.
func NewResultsModel(results []types.ModuleResult) ResultsModel {
	return ResultsModel{
		results: results,
		maxRows: 20,
	}
}

// Init returns nil (no initial command).
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events for scrolling and export.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	rows := m.allRows()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxRows {
					m.offset = m.cursor - m.maxRows + 1
				}
			}
		case "e":
			m.exportJSON()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the results table.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Aegis Scan Results"))
	b.WriteString("\n\n")

	rows := m.allRows()
	if len(rows) == 0 {
		b.WriteString("No data collected.\n")
	} else {
		b.WriteString(m.summaryLine())
		b.WriteString("\n\n")

		header := fmt.Sprintf("  %-16s %-36s %s", "MODULE", "FIELD", "VALUE")
		b.WriteString(styles.HeaderStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		end := m.offset + m.maxRows
		if end > len(rows) {
			end = len(rows)
		}

		for i := m.offset; i < end; i++ {
			row := rows[i]
			cursor := "  "
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
			}

			name := styles.StatusStyle(row.success).Render(fmt.Sprintf("%-16s", row.module))
			b.WriteString(fmt.Sprintf("%s%s %-36s %s\n",
				cursor, name, truncate(row.key, 36), truncate(row.value, 40)))
		}

		if len(rows) > m.maxRows {
			b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d rows\n",
				m.offset+1, end, len(rows)))
		}
	}

	if m.exported {
		b.WriteString("\n")
		b.WriteString(styles.SelectedStyle.Render("Results exported to aegis-results.json"))
	}
	if m.exportErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.exportErr))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • e export JSON • esc back • q quit"))

	return b.String()
}

type resultRow struct {
	module  string
	success bool
	key     string
	value   string
}

func (m ResultsModel) allRows() []resultRow {
	var rows []resultRow
	for _, r := range m.results {
		if !r.Success {
			rows = append(rows, resultRow{module: r.Module, key: "error", value: r.Error})
			continue
		}
		flat := output.Flatten("", r.Data)
		if len(flat) == 0 {
			rows = append(rows, resultRow{module: r.Module, success: true, key: "(no data)"})
			continue
		}
		for _, f := range flat {
			rows = append(rows, resultRow{module: r.Module, success: true, key: f.Key, value: f.Value})
		}
	}
	return rows
}

func (m ResultsModel) summaryLine() string {
	succeeded := 0
	for _, r := range m.results {
		if r.Success {
			succeeded++
		}
	}

	status := styles.OkStyle.Render(fmt.Sprintf("%d ok", succeeded))
	if failed := len(m.results) - succeeded; failed > 0 {
		status += "  " + styles.FailStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	return fmt.Sprintf("Total: %d modules  [%s]", len(m.results), status)
}

func (m *ResultsModel) exportJSON() {
	data, err := json.MarshalIndent(m.results, "", "  ")
	if err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	if err := os.WriteFile("aegis-results.json", data, 0644); err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	m.exported = true
	m.exportErr = ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
