package model

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Course is a course students can be enrolled in. It owns its shifts and
// aggregates the students enrolled in it. The student side of an enrollment
// is kept by Student.AddCourse; both calls are needed for one enrollment.
type Course struct {
	name string
	id   string

	shifts     map[string]*Shift // by shift name
	shiftOrder []string

	students     map[string]*Student // by student number
	studentOrder []string
}

// NewCourse creates a course with no shifts and no students. The name must
// contain at least one ASCII letter or digit once accents are stripped.
func NewCourse(name string) (*Course, error) {
	id := CourseID(name)
	if id == "" {
		return nil, errorf(ErrCourse, "course name %q has no identifying characters", name)
	}
	return &Course{
		name:     name,
		id:       id,
		shifts:   make(map[string]*Shift),
		students: make(map[string]*Student),
	}, nil
}

// CourseID normalizes a course name into its identity: the name is
// decomposed (NFKD) and everything but ASCII letters and digits is dropped,
// so "Programação Orientada aos Objetos" becomes "ProgramacaoOrientadaaosObjetos".
func CourseID(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name is the full name as given.
func (c *Course) Name() string { return c.name }

// ID is the normalized identity used as a map key.
func (c *Course) ID() string { return c.id }

// AddShift adds a shift built for this very course. A shift bound to another
// course, even an equal one, is rejected, as is a second shift with the same name.
func (c *Course) AddShift(shift *Shift) error {
	if shift == nil {
		return errorf(ErrCourse, "nil shift added to %s", c.id)
	}
	if shift.course != c {
		return errorf(ErrCourse, "shift %s does not belong to this %s instance", shift.ID(), c.id)
	}
	name := shift.Name()
	if _, ok := c.shifts[name]; ok {
		return errorf(ErrCourse, "shift %s added to course more than once", shift.ID())
	}
	c.shifts[name] = shift
	c.shiftOrder = append(c.shiftOrder, name)
	return nil
}

// AddStudent enrolls student in the course. It does not update the student.
func (c *Course) AddStudent(student *Student) error {
	if student == nil {
		return errorf(ErrCourse, "nil student added to %s", c.id)
	}
	if _, ok := c.students[student.number]; ok {
		return errorf(ErrCourse, "student %s enrolled in %s more than once", student.number, c.id)
	}
	c.students[student.number] = student
	c.studentOrder = append(c.studentOrder, student.number)
	return nil
}

// Shift looks up a shift by name ("TP2").
func (c *Course) Shift(name string) (*Shift, bool) {
	s, ok := c.shifts[name]
	return s, ok
}

// Student looks up an enrolled student by number.
func (c *Course) Student(number string) (*Student, bool) {
	s, ok := c.students[number]
	return s, ok
}

// HasStudent reports whether number is enrolled.
func (c *Course) HasStudent(number string) bool {
	_, ok := c.students[number]
	return ok
}

// Shifts returns a new map from shift name to shift. The shifts themselves are shared.
func (c *Course) Shifts() map[string]*Shift {
	out := make(map[string]*Shift, len(c.shifts))
	for k, v := range c.shifts {
		out[k] = v
	}
	return out
}

// ShiftList returns the shifts in the order they were added.
func (c *Course) ShiftList() []*Shift {
	out := make([]*Shift, 0, len(c.shiftOrder))
	for _, name := range c.shiftOrder {
		out = append(out, c.shifts[name])
	}
	return out
}

// Students returns a new map from student number to student. The students themselves are shared.
func (c *Course) Students() map[string]*Student {
	out := make(map[string]*Student, len(c.students))
	for k, v := range c.students {
		out[k] = v
	}
	return out
}

// StudentList returns the enrolled students in enrollment order.
func (c *Course) StudentList() []*Student {
	out := make([]*Student, 0, len(c.studentOrder))
	for _, number := range c.studentOrder {
		out = append(out, c.students[number])
	}
	return out
}

// Equal compares names and the key sets of shifts and students. Shift and
// student values are not compared, which keeps Student/Course cycles finite.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		sameKeys(c.shifts, other.shifts) &&
		sameKeys(c.students, other.students)
}

// Hash is derived from the identity only.
func (c *Course) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(c.id))
	return h.Sum64()
}

// Clone copies the course. Shifts are copied and bound to the clone;
// students are shared with the original.
func (c *Course) Clone() *Course {
	clone := &Course{
		name:         c.name,
		id:           c.id,
		shifts:       make(map[string]*Shift, len(c.shifts)),
		shiftOrder:   append([]string(nil), c.shiftOrder...),
		students:     c.Students(),
		studentOrder: append([]string(nil), c.studentOrder...),
	}
	for name, s := range c.shifts {
		clone.shifts[name] = s.cloneFor(clone)
	}
	return clone
}

func (c *Course) String() string {
	students := make([]string, len(c.studentOrder))
	for i, number := range c.studentOrder {
		students[i] = fmt.Sprintf("%q: ...", number)
	}
	return fmt.Sprintf("Course(name=%q, shifts=[%s], students={%s})",
		c.name, strings.Join(c.shiftOrder, ", "), strings.Join(students, ", "))
}

func sameKeys[V any](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
