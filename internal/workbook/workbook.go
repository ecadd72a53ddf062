// Package workbook reads the project schedule sheet into a raw four-column table.
//
// The loader only selects and renames columns. Cells are returned as raw
// strings; parsing and filtering belong to the schedule package.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Output column names, in table order.
const (
	ColNumber = "Task Number"
	ColName   = "Task Name"
	ColStart  = "Start Date"
	ColEnd    = "End Date"
)

// Column positions inside Row.Cells.
const (
	Number = iota
	Name
	Start
	End
)

// Columns lists the output column names in order.
var Columns = [4]string{ColNumber, ColName, ColStart, ColEnd}

// Default source layout of the production schedule workbook.
const (
	DefaultSheet       = "БХ"
	DefaultHeaderRow   = 3
	DefaultIndexColumn = 0
)

// ErrSheetNotFound is returned when the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// MissingColumnsError lists the source headers absent from the header row.
type MissingColumnsError struct {
	Sheet   string
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %q: missing columns: %s", e.Sheet, strings.Join(e.Headers, ", "))
}

// Headers maps the source header names to the four output columns.
type Headers struct {
	Number string
	Name   string
	Start  string
	End    string
}

// DefaultHeaders returns the header names used by the production workbook.
func DefaultHeaders() Headers {
	return Headers{
		Number: "№ п/п",
		Name:   "Наименование работ",
		Start:  "Начало работ*",
		End:    "Окончание работ",
	}
}

func (h Headers) list() [4]string {
	return [4]string{h.Number, h.Name, h.Start, h.End}
}

// Options controls where the table lives inside the workbook.
type Options struct {
	// Sheet is the worksheet name.
	Sheet string
	// HeaderRow is the zero-based row holding the column headers.
	HeaderRow int
	// IndexColumn is the zero-based column used as row index and discarded.
	// A negative value keeps every column.
	IndexColumn int
	Headers     Headers
}

// DefaultOptions returns the layout of the production workbook.
func DefaultOptions() Options {
	return Options{
		Sheet:       DefaultSheet,
		HeaderRow:   DefaultHeaderRow,
		IndexColumn: DefaultIndexColumn,
		Headers:     DefaultHeaders(),
	}
}

// Row is one data row with the four selected cells.
type Row struct {
	// Line is the 1-based row number in the source file.
	Line  int
	Cells [4]string
}

// Missing reports whether the cell at col is blank.
func (r Row) Missing(col int) bool {
	return strings.TrimSpace(r.Cells[col]) == ""
}

// RawTable is the loader output.
type RawTable struct {
	Source string
	Sheet  string
	// Date1904 is set when the workbook uses the 1904 date system.
	Date1904 bool
	Rows     []Row
}

// Load reads the schedule table from path. Files with a .csv extension are
// read as snapshots written by the editor; everything else is opened as an
// Excel workbook.
func Load(path string, opts Options) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path)
	}
	return loadXLSX(path, opts)
}

func loadXLSX(path string, opts Options) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(opts.Sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, opts.Sheet, filepath.Base(path))
	}

	rows, err := f.GetRows(opts.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", opts.Sheet, err)
	}

	var header []string
	if opts.HeaderRow >= 0 && opts.HeaderRow < len(rows) {
		header = rows[opts.HeaderRow]
	}
	positions, err := locateColumns(header, opts)
	if err != nil {
		return nil, err
	}

	table := &RawTable{
		Source: path,
		Sheet:  opts.Sheet,
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		table.Date1904 = *props.Date1904
	}

	for i := opts.HeaderRow + 1; i < len(rows); i++ {
		table.Rows = append(table.Rows, selectRow(rows[i], i+1, positions))
	}
	return table, nil
}

// locateColumns finds the position of each requested header, skipping the
// index column.
func locateColumns(header []string, opts Options) ([4]int, error) {
	positions := [4]int{-1, -1, -1, -1}
	wanted := opts.Headers.list()
	for col, cell := range header {
		if col == opts.IndexColumn {
			continue
		}
		name := strings.TrimSpace(cell)
		for i, w := range wanted {
			if positions[i] < 0 && name == strings.TrimSpace(w) {
				positions[i] = col
			}
		}
	}

	var missing []string
	for i, pos := range positions {
		if pos < 0 {
			missing = append(missing, wanted[i])
		}
	}
	if len(missing) > 0 {
		return positions, &MissingColumnsError{Sheet: opts.Sheet, Headers: missing}
	}
	return positions, nil
}

func selectRow(cells []string, line int, positions [4]int) Row {
	row := Row{Line: line}
	for i, pos := range positions {
		if pos < len(cells) {
			row.Cells[i] = cells[pos]
		}
	}
	return row
}
