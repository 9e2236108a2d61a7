package docparse

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseXLSX renders every sheet as tab-separated rows, one sheet after
// another with its name as a header line.
func parseXLSX(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		b.WriteString(sheet)
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	return strings.TrimSpace(b.String()), nil
}
