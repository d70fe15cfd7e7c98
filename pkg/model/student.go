package model

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Student is a student identified by their mechanographic number, holding the
// courses they are enrolled in. The course side of an enrollment is kept by
// Course.AddStudent.
type Student struct {
	number string

	courses     map[string]*Course // by course id
	courseOrder []string
}

// NewStudent fails when number is empty or not plain ASCII.
func NewStudent(number string) (*Student, error) {
	if number == "" {
		return nil, errorf(ErrStudent, "empty student number")
	}
	for _, r := range number {
		if r > unicode.MaxASCII {
			return nil, errorf(ErrStudent, "student number %q is not ASCII", number)
		}
	}
	return &Student{number: number, courses: make(map[string]*Course)}, nil
}

// Number is the mechanographic number.
func (s *Student) Number() string { return s.number }

// AddCourse records that the student is enrolled in course. It does not update the course.
func (s *Student) AddCourse(course *Course) error {
	if course == nil {
		return errorf(ErrStudent, "nil course added to student %s", s.number)
	}
	if _, ok := s.courses[course.id]; ok {
		return errorf(ErrStudent, "student %s already enrolled in %s", s.number, course.id)
	}
	s.courses[course.id] = course
	s.courseOrder = append(s.courseOrder, course.id)
	return nil
}

// Course looks up an enrolled course by id.
func (s *Student) Course(id string) (*Course, bool) {
	c, ok := s.courses[id]
	return c, ok
}

// HasCourse reports whether the student holds course id.
func (s *Student) HasCourse(id string) bool {
	_, ok := s.courses[id]
	return ok
}

// Courses returns a new map from course id to course. The courses themselves are shared.
func (s *Student) Courses() map[string]*Course {
	out := make(map[string]*Course, len(s.courses))
	for k, v := range s.courses {
		out[k] = v
	}
	return out
}

// CourseList returns the courses in enrollment order.
func (s *Student) CourseList() []*Course {
	out := make([]*Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out
}

// Equal compares numbers and course id sets.
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.number == other.number && sameKeys(s.courses, other.courses)
}

// Hash is derived from the number only.
func (s *Student) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.number))
	return h.Sum64()
}

// Clone copies the student's course map. Courses are shared.
func (s *Student) Clone() *Student {
	return &Student{
		number:      s.number,
		courses:     s.Courses(),
		courseOrder: append([]string(nil), s.courseOrder...),
	}
}

func (s *Student) String() string {
	courses := make([]string, len(s.courseOrder))
	for i, id := range s.courseOrder {
		courses[i] = fmt.Sprintf("%q: ...", id)
	}
	return fmt.Sprintf("Student(number=%q, courses={%s})", s.number, strings.Join(courses, ", "))
}
