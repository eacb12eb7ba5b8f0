package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Grid flattens a result into a header and rows of cells. Charts become a
// long table (label, date, value); tables keep their columns. Missing values
// are nil.
func Grid(res Result) ([]string, [][]any) {
	if res.Table != nil {
		header := make([]string, len(res.Table.Columns))
		for i, c := range res.Table.Columns {
			header[i] = c.Key
		}
		return header, res.Table.Rows
	}

	if res.Chart == nil {
		return nil, nil
	}
	group := string(res.View.GroupBy)
	if group == "" {
		group = "label"
	}
	header := []string{group, "date", string(res.View.Measure)}
	var rows [][]any
	for _, s := range res.Chart.Series {
		for _, p := range s.Data {
			rows = append(rows, []any{s.Name, p.X, p.Y})
		}
	}
	return header, rows
}

// WriteCSV writes the result grid as CSV.
func WriteCSV(w io.Writer, res Result) error {
	header, rows := Grid(res)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	record := make([]string, len(header))
	for i, row := range rows {
		for j, cell := range row {
			record[j] = formatCell(cell)
		}
		if err := writer.Write(record[:len(row)]); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}

// WriteXLSX writes the result grid as a single-sheet workbook.
func WriteXLSX(w io.Writer, res Result) error {
	header, rows := Grid(res)

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(res)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetName derives a sheet title within the 31 character limit.
func sheetName(res Result) string {
	name := string(res.View.ID)
	if name == "" {
		name = "data"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
