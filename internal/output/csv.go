package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/aegis-sec/aegis/pkg/types"
)

// CSVFormatter renders results as flattened CSV rows, one row per data
// field so nested payloads stay representable.
type CSVFormatter struct{}

func (f *CSVFormatter) Format(w io.Writer, results []types.ModuleResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"module", "target", "success", "error", "field", "value"}); err != nil {
		return err
	}

	for _, result := range results {
		base := []string{
			result.Module,
			result.Target.Host,
			strconv.FormatBool(result.Success),
			result.Error,
		}

		rows := Flatten("", result.Data)
		if len(rows) == 0 {
			if err := cw.Write(append(base, "", "")); err != nil {
				return err
			}
			continue
		}

		for _, row := range rows {
			if err := cw.Write(append(base, row.Key, row.Value)); err != nil {
				return err
			}
		}
	}

	return cw.Error()
}
