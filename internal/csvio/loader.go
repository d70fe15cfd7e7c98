package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
)

// RoomRow is one line of the room capacity file. A blank capacity means the
// size of the room is unknown.
type RoomRow struct {
	Building string `csv:"building"`
	Room     string `csv:"room"`
	Capacity string `csv:"capacity"`
}

// EnrollmentRow is one (course, student) pair.
type EnrollmentRow struct {
	Course  string `csv:"course"`
	Student string `csv:"student"`
}

func newReader(in io.Reader, delim rune) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

// LoadRooms reads room capacities from path and applies them to the rooms of
// cat, registering rooms that are not known yet. Returns the number of rows applied.
func LoadRooms(path string, delim rune, cat *catalog.Catalog, logger *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRooms(f, delim, cat, logger)
}

// ReadRooms is LoadRooms over an already open reader.
func ReadRooms(in io.Reader, delim rune, cat *catalog.Catalog, logger *zap.Logger) (int, error) {
	var rows []*RoomRow
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return 0, fmt.Errorf("parse room capacities: %w", err)
	}
	for i, row := range rows {
		room, err := cat.EnsureRoom(strings.TrimSpace(row.Building), strings.TrimSpace(row.Room))
		if err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
		capacity := strings.TrimSpace(row.Capacity)
		if capacity == "" {
			room.ClearCapacity()
			continue
		}
		n, err := strconv.Atoi(capacity)
		if err != nil {
			return i, fmt.Errorf("row %d: invalid capacity %q: %w", i+2, capacity, err)
		}
		if err := room.SetCapacity(n); err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	logger.Info("room capacities loaded", zap.Int("rooms", len(rows)))
	return len(rows), nil
}

// LoadEnrollments reads (course, student) rows from path and enrolls every
// student, creating courses and students as needed.
func LoadEnrollments(path string, delim rune, cat *catalog.Catalog, logger *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEnrollments(f, delim, cat, logger)
}

// ReadEnrollments is LoadEnrollments over an already open reader.
func ReadEnrollments(in io.Reader, delim rune, cat *catalog.Catalog, logger *zap.Logger) (int, error) {
	var rows []*EnrollmentRow
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return 0, fmt.Errorf("parse enrollments: %w", err)
	}
	for i, row := range rows {
		course, err := cat.EnsureCourse(strings.TrimSpace(row.Course))
		if err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
		student, err := cat.EnsureStudent(strings.TrimSpace(row.Student))
		if err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := cat.Enroll(student, course); err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	logger.Info("enrollments loaded", zap.Int("rows", len(rows)))
	return len(rows), nil
}
