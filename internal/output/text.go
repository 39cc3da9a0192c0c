package output

import (
	"fmt"
	"io"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TextFormatter renders results as colored terminal tables.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, results []types.ModuleResult) error {
	for _, result := range results {
		if !result.Success {
			fmt.Fprintf(w, "\n[%s] %s - %s: %s\n",
				result.Module, result.Target.Host, color.RedString("failed"), result.Error)
			continue
		}

		elapsed := result.CompletedAt.Sub(result.StartedAt).Round(time.Millisecond)
		fmt.Fprintf(w, "\n[%s] %s - %s (%s)\n",
			result.Module, result.Target.Host, color.GreenString("ok"), elapsed)

		rows := Flatten("", result.Data)
		if len(rows) == 0 {
			fmt.Fprintln(w, "  No data.")
			continue
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Field", "Value"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		table.SetColumnSeparator("│")

		for _, row := range rows {
			table.Append([]string{row.Key, row.Value})
		}
		table.Render()
	}

	return nil
}
