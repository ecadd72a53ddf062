// Package testutil builds schedule workbooks for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetRow is one data row of a fixture workbook. Nil fields leave the cell blank.
type SheetRow struct {
	Number any
	Name   any
	Start  any
	End    any
}

// Date returns midnight UTC of the given day, the way Excel stores plain dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SampleRows returns a small schedule with two main tasks and three sub-tasks.
func SampleRows() []SheetRow {
	return []SheetRow{
		{Number: 1, Name: "Подготовительные работы", Start: Date(2024, 1, 10), End: Date(2024, 3, 31)},
		{Number: 1.1, Name: "Устройство временного ограждения строительной площадки", Start: Date(2024, 1, 10), End: Date(2024, 2, 15)},
		{Number: 1.2, Name: "Геодезическая разбивка", Start: Date(2024, 2, 1), End: Date(2030, 2, 20)},
		{Number: 2, Name: "Земляные работы", Start: Date(2024, 3, 1), End: Date(2024, 6, 30)},
		{Number: 2.1, Name: "Разработка котлована", Start: Date(2024, 3, 1), End: Date(2024, 5, 15)},
	}
}

// WriteScheduleWorkbook writes an xlsx file laid out like the production
// schedule: title rows, a header row at index 3 on sheet "БХ", and an index
// column in A. It returns the file path.
func WriteScheduleWorkbook(t testing.TB, dir string, rows []SheetRow) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "БХ"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("delete default sheet: %v", err)
	}

	set := func(cell string, values []any) {
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %s: %v", cell, err)
		}
	}
	set("A1", []any{"ГРАФИК ПРОИЗВОДСТВА РАБОТ"})
	set("A2", []any{"Объект: БХ"})
	set("A4", []any{"", "№ п/п", "Наименование работ", "Ед. изм.", "Начало работ*", "Окончание работ"})

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+5)
		set(cell, []any{i, r.Number, r.Name, "компл.", r.Start, r.End})
	}

	path := filepath.Join(dir, "schedule.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
