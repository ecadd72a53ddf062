package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// loadCSV reads a snapshot written by the editor. The header row uses the
// output column names; extra columns such as Status are ignored.
func loadCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			header = nil
		} else {
			return nil, fmt.Errorf("read snapshot header: %w", err)
		}
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	opts := Options{
		Sheet:       "csv",
		IndexColumn: -1,
		Headers:     Headers{Number: ColNumber, Name: ColName, Start: ColStart, End: ColEnd},
	}
	positions, err := locateColumns(header, opts)
	if err != nil {
		return nil, err
	}

	table := &RawTable{Source: path, Sheet: opts.Sheet}
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read snapshot line %d: %w", line, err)
		}
		table.Rows = append(table.Rows, selectRow(record, line, positions))
	}
	return table, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
