package csvio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

var workbookHeader = []any{"Start", "End", "Course", "Shift", "Room", "Capacity", "Students"}

// BuildWorkbook lays the timetable out as one sheet per weekday, rows sorted by start time.
func BuildWorkbook(snap *catalog.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	byDay := make(map[string][]*TimetableRow)
	for _, row := range TimetableRows(snap) {
		byDay[row.Day] = append(byDay[row.Day], row)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, day := range model.Weekdays {
		sheet := day.String()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := f.SetSheetRow(sheet, "A1", &workbookHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", "G1", bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("style header: %w", err)
		}

		for r, row := range byDay[sheet] {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			values := []any{row.Start, row.End, row.Course, row.Shift, row.Room, row.Capacity, row.Students}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				f.Close()
				return nil, fmt.Errorf("write %s row %d: %w", sheet, r+2, err)
			}
		}
		if err := f.SetColWidth(sheet, "C", "C", 40); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook writes the timetable workbook to w.
func WriteWorkbook(snap *catalog.Snapshot, w io.Writer) error {
	f, err := BuildWorkbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportWorkbook saves the timetable workbook to path.
func ExportWorkbook(snap *catalog.Snapshot, path string) error {
	f, err := BuildWorkbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
