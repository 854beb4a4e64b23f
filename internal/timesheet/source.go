package timesheet

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// preferredSheet is the sheet the extractor looks for first. Documents that
// do not carry it fall back to their first sheet.
const preferredSheet = "Timesheet"

// TabularSource provides positional cell access over a sheet grid, so the
// anchor-scanning extraction is not coupled to any one backing format.
type TabularSource interface {
	// RowCount returns the number of rows in the grid.
	RowCount() int

	// Cell returns the trimmed value at (row, col), 0-indexed. Out-of-range
	// coordinates yield an empty string, matching how a sparse sheet reads.
	Cell(row, col int) string
}

// memorySource backs a TabularSource with an in-memory grid.
type memorySource struct {
	rows [][]string
}

// NewMemorySource wraps a row grid as a TabularSource.
func NewMemorySource(rows [][]string) TabularSource {
	return &memorySource{rows: rows}
}

func (s *memorySource) RowCount() int {
	return len(s.rows)
}

func (s *memorySource) Cell(row, col int) string {
	if row < 0 || row >= len(s.rows) {
		return ""
	}
	r := s.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// OpenExcelSource reads an .xlsx workbook into a TabularSource. The sheet
// named "Timesheet" is used when present, otherwise the first sheet.
func OpenExcelSource(path string) (TabularSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ioError(err, "failed to open timesheet %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ioError(errors.New("no sheets in workbook"), "failed to read %s", path)
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if name == preferredSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, ioError(err, "failed to read sheet %s of %s", sheet, path)
	}

	return NewMemorySource(rows), nil
}
