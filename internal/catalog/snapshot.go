package catalog

import "github.com/rhyrak/go-timetable/pkg/model"

// Snapshot is the published graph of an import session. Its registries are
// never modified again, so it may be read from several goroutines.
type Snapshot struct {
	id string

	courses     map[string]*model.Course
	courseOrder []string

	shifts     map[string]*model.Shift
	shiftOrder []string

	rooms     map[string]*model.Room
	roomOrder []string

	students     map[string]*model.Student
	studentOrder []string
}

// ID is the id of the session that produced the snapshot.
func (s *Snapshot) ID() string { return s.id }

func (s *Snapshot) Course(id string) (*model.Course, bool) {
	c, ok := s.courses[id]
	return c, ok
}

func (s *Snapshot) Shift(id string) (*model.Shift, bool) {
	sh, ok := s.shifts[id]
	return sh, ok
}

func (s *Snapshot) Room(id string) (*model.Room, bool) {
	r, ok := s.rooms[id]
	return r, ok
}

func (s *Snapshot) Student(number string) (*model.Student, bool) {
	st, ok := s.students[number]
	return st, ok
}

// Courses lists courses in registration order.
func (s *Snapshot) Courses() []*model.Course {
	return ordered(s.courses, s.courseOrder)
}

// Shifts lists shifts in registration order.
func (s *Snapshot) Shifts() []*model.Shift {
	return ordered(s.shifts, s.shiftOrder)
}

// Rooms lists rooms in registration order.
func (s *Snapshot) Rooms() []*model.Room {
	return ordered(s.rooms, s.roomOrder)
}

// Students lists students in registration order.
func (s *Snapshot) Students() []*model.Student {
	return ordered(s.students, s.studentOrder)
}

func ordered[V any](m map[string]V, order []string) []V {
	out := make([]V, 0, len(order))
	for _, k := range order {
		out = append(out, m[k])
	}
	return out
}
