package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX flattens spreadsheet annexes (tarifas, tablas de sanciones)
// into tab-separated rows, one blank line between sheets.
func extractXLSX(raw []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		sheetHasRows := false
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			if !sheetHasRows {
				if b.Len() > 0 {
					b.WriteString("\n\n")
				}
				b.WriteString(sheet)
				sheetHasRows = true
			}
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
