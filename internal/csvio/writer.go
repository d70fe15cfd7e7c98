package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// TimetableRow is one timeslot of one shift.
type TimetableRow struct {
	CourseID string `csv:"course_id"`
	Course   string `csv:"course"`
	Shift    string `csv:"shift"`
	Day      string `csv:"day"`
	Start    string `csv:"start"`
	End      string `csv:"end"`
	Room     string `csv:"room"`
	Capacity string `csv:"capacity"`
	Students int    `csv:"students"`

	day   model.Weekday   `csv:"-"`
	start model.TimeOfDay `csv:"-"`
}

// TimetableRows flattens the shifts of snap, ordered by day, start time, course and shift.
func TimetableRows(snap *catalog.Snapshot) []*TimetableRow {
	var rows []*TimetableRow
	for _, shift := range snap.Shifts() {
		course := shift.Course()
		capacity := ""
		if c, ok := shift.Capacity(); ok {
			capacity = strconv.Itoa(c)
		}
		for _, t := range shift.Timeslots() {
			room := ""
			if t.Room() != nil {
				room = t.Room().ID()
			}
			rows = append(rows, &TimetableRow{
				CourseID: course.ID(),
				Course:   course.Name(),
				Shift:    shift.Name(),
				Day:      t.Day().String(),
				Start:    t.Start().String(),
				End:      t.End().String(),
				Room:     room,
				Capacity: capacity,
				Students: len(course.Students()),
				day:      t.Day(),
				start:    t.Start(),
			})
		}
	}
	slices.SortStableFunc(rows, func(a, b *TimetableRow) int {
		if d := int(a.day) - int(b.day); d != 0 {
			return d
		}
		if d := int(a.start) - int(b.start); d != 0 {
			return d
		}
		if a.CourseID != b.CourseID {
			if a.CourseID < b.CourseID {
				return -1
			}
			return 1
		}
		if a.Shift < b.Shift {
			return -1
		}
		if a.Shift > b.Shift {
			return 1
		}
		return 0
	})
	return rows
}

// EnrollmentRows lists every enrollment, student by student.
func EnrollmentRows(snap *catalog.Snapshot) []*EnrollmentRow {
	var rows []*EnrollmentRow
	for _, student := range snap.Students() {
		for _, course := range student.CourseList() {
			rows = append(rows, &EnrollmentRow{Course: course.Name(), Student: student.Number()})
		}
	}
	return rows
}

// ExportTimetable writes the timetable of snap to path, replacing any existing file.
func ExportTimetable(snap *catalog.Snapshot, path string, delim rune) error {
	rows := TimetableRows(snap)
	return writeFile(path, func(w io.Writer) error { return marshal(&rows, w, delim) })
}

// ExportEnrollments writes every enrollment of snap to path.
func ExportEnrollments(snap *catalog.Snapshot, path string, delim rune) error {
	rows := EnrollmentRows(snap)
	return writeFile(path, func(w io.Writer) error { return marshal(&rows, w, delim) })
}

// TimetableString renders the timetable as CSV.
func TimetableString(snap *catalog.Snapshot, delim rune) (string, error) {
	rows := TimetableRows(snap)
	var buf bytes.Buffer
	if err := marshal(&rows, &buf, delim); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func marshal(rows any, w io.Writer, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
