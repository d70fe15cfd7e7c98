package importer

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
)

var (
	rosterCourseRegex  = regexp.MustCompile(`(?m)^\s+Nome do\s+(.+?)\s*$`)
	rosterStudentRegex = regexp.MustCompile(`(?m)^\s+Email\s+(.+?)@`)
)

// Blackboard imports enrollments from class rosters exported by Blackboard.
// It reads the layout-preserving text extracted from the roster PDFs: the
// course name sits on a "Nome do" line and each student number is the local
// part of an "Email" line.
type Blackboard struct {
	cat      *catalog.Catalog
	logger   *zap.Logger
	imported map[string]string // course id -> source
}

func NewBlackboard(cat *catalog.Catalog, logger *zap.Logger) *Blackboard {
	return &Blackboard{cat: cat, logger: logger, imported: make(map[string]string)}
}

// LoadDirectory loads every .txt roster in dir, in name order.
func (b *Blackboard) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return importErrorf(err, "failed to list directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, path := range files {
		if err := b.LoadFile(path); err != nil {
			return err
		}
	}
	b.logger.Info("rosters loaded", zap.String("dir", dir), zap.Int("files", len(files)))
	return nil
}

// LoadFile loads one roster text file.
func (b *Blackboard) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return importErrorf(err, "failed to open roster %s", path)
	}
	defer f.Close()
	return b.Load(path, f)
}

// Load reads one roster from r. source names it in errors and logs.
func (b *Blackboard) Load(source string, r io.Reader) error {
	if b.cat.Sealed() {
		return importErrorf(catalog.ErrSealed, "cannot import %s", source)
	}
	text, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return importErrorf(err, "failed to read roster %s", source)
	}

	match := rosterCourseRegex.FindSubmatch(text)
	if match == nil {
		return importErrorf(nil, "course name not found in %s", source)
	}
	courseName := string(match[1])

	var numbers []string
	for _, m := range rosterStudentRegex.FindAllSubmatch(text, -1) {
		numbers = append(numbers, string(m[1]))
	}
	return b.store(source, courseName, numbers)
}

func (b *Blackboard) store(source, courseName string, numbers []string) error {
	course, err := b.cat.EnsureCourse(courseName)
	if err != nil {
		return importErrorf(err, "invalid course name in %s", source)
	}
	if previous, ok := b.imported[course.ID()]; ok {
		return importErrorf(nil, "course %s imported more than once (%s and %s)", courseName, previous, source)
	}
	b.imported[course.ID()] = source

	for _, number := range numbers {
		student, err := b.cat.EnsureStudent(number)
		if err != nil {
			return importErrorf(err, "invalid student number in %s", source)
		}
		if err := b.cat.Enroll(student, course); err != nil {
			return importErrorf(err, "roster for %s included student %s more than once", courseName, number)
		}
	}
	b.logger.Debug("roster imported",
		zap.String("source", source),
		zap.String("course", course.ID()),
		zap.Int("students", len(numbers)),
	)
	return nil
}
