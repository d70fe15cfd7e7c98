// Package catalog holds one import session: the registries that let
// importers find the shared Course, Room and Student objects by identity
// while they grow the entity graph, and the snapshot published at the end.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var (
	ErrSealed          = errors.New("catalog already published")
	ErrDuplicateShift  = errors.New("duplicate shift")
	ErrUnknownCourse   = errors.New("course not registered in catalog")
	ErrUnknownStudent  = errors.New("student not registered in catalog")
	ErrAlreadyEnrolled = errors.New("student already enrolled")
)

// Catalog is owned by a single import session. It is not safe for
// concurrent use; publish it once importing is done and share the Snapshot.
type Catalog struct {
	id     string
	logger *zap.Logger
	sealed bool

	courses     map[string]*model.Course
	courseOrder []string

	shifts     map[string]*model.Shift
	shiftOrder []string

	rooms     map[string]*model.Room
	roomOrder []string

	students     map[string]*model.Student
	studentOrder []string
}

// New starts an import session.
func New(logger *zap.Logger) *Catalog {
	id := uuid.NewString()
	return &Catalog{
		id:       id,
		logger:   logger.With(zap.String("session", id)),
		courses:  make(map[string]*model.Course),
		shifts:   make(map[string]*model.Shift),
		rooms:    make(map[string]*model.Room),
		students: make(map[string]*model.Student),
	}
}

// ID identifies the session in logs and exports.
func (c *Catalog) ID() string { return c.id }

// Sealed reports whether the catalog was published.
func (c *Catalog) Sealed() bool { return c.sealed }

// EnsureCourse returns the registered course whose id matches name, creating
// it if needed. Names rendered with different accents resolve to the same course.
func (c *Catalog) EnsureCourse(name string) (*model.Course, error) {
	if c.sealed {
		return nil, ErrSealed
	}
	if course, ok := c.courses[model.CourseID(name)]; ok {
		return course, nil
	}
	course, err := model.NewCourse(name)
	if err != nil {
		return nil, err
	}
	c.courses[course.ID()] = course
	c.courseOrder = append(c.courseOrder, course.ID())
	c.logger.Debug("course registered", zap.String("course", course.ID()), zap.String("name", name))
	return course, nil
}

// EnsureRoom returns the registered room, creating it with unknown capacity if needed.
func (c *Catalog) EnsureRoom(building, nameInBuilding string) (*model.Room, error) {
	if c.sealed {
		return nil, ErrSealed
	}
	id := model.RoomID(building, nameInBuilding)
	if room, ok := c.rooms[id]; ok {
		return room, nil
	}
	room := model.NewRoom(building, nameInBuilding)
	c.rooms[id] = room
	c.roomOrder = append(c.roomOrder, id)
	c.logger.Debug("room registered", zap.String("room", id))
	return room, nil
}

// EnsureStudent returns the registered student, creating it if needed.
func (c *Catalog) EnsureStudent(number string) (*model.Student, error) {
	if c.sealed {
		return nil, ErrSealed
	}
	if student, ok := c.students[number]; ok {
		return student, nil
	}
	student, err := model.NewStudent(number)
	if err != nil {
		return nil, err
	}
	c.students[number] = student
	c.studentOrder = append(c.studentOrder, number)
	return student, nil
}

// AddShift registers shift and adds it to its course. The course must be the
// one registered in this catalog.
func (c *Catalog) AddShift(shift *model.Shift) error {
	if c.sealed {
		return ErrSealed
	}
	course := shift.Course()
	if registered, ok := c.courses[course.ID()]; !ok || registered != course {
		return fmt.Errorf("%w: %s", ErrUnknownCourse, course.ID())
	}
	if _, ok := c.shifts[shift.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateShift, shift.ID())
	}
	if err := course.AddShift(shift); err != nil {
		return err
	}
	c.shifts[shift.ID()] = shift
	c.shiftOrder = append(c.shiftOrder, shift.ID())
	return nil
}

// Enroll records the enrollment on both the course and the student. Both must
// be the instances registered in this catalog. Both sides are checked first,
// so a rejected enrollment changes neither.
func (c *Catalog) Enroll(student *model.Student, course *model.Course) error {
	if c.sealed {
		return ErrSealed
	}
	if registered, ok := c.courses[course.ID()]; !ok || registered != course {
		return fmt.Errorf("%w: %s", ErrUnknownCourse, course.ID())
	}
	if registered, ok := c.students[student.Number()]; !ok || registered != student {
		return fmt.Errorf("%w: %s", ErrUnknownStudent, student.Number())
	}
	if course.HasStudent(student.Number()) || student.HasCourse(course.ID()) {
		return fmt.Errorf("%w: %s in %s", ErrAlreadyEnrolled, student.Number(), course.ID())
	}
	if err := course.AddStudent(student); err != nil {
		return err
	}
	if err := student.AddCourse(course); err != nil {
		return err
	}
	return nil
}

// Course looks up a registered course by id.
func (c *Catalog) Course(id string) (*model.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Shift looks up a registered shift by id.
func (c *Catalog) Shift(id string) (*model.Shift, bool) {
	shift, ok := c.shifts[id]
	return shift, ok
}

// Publish seals the catalog and returns a read-only view of it. Every later
// mutation through the catalog fails with ErrSealed.
func (c *Catalog) Publish() *Snapshot {
	c.sealed = true
	c.logger.Info("catalog published",
		zap.Int("courses", len(c.courses)),
		zap.Int("shifts", len(c.shifts)),
		zap.Int("rooms", len(c.rooms)),
		zap.Int("students", len(c.students)),
	)
	return &Snapshot{
		id:           c.id,
		courses:      c.courses,
		courseOrder:  c.courseOrder,
		shifts:       c.shifts,
		shiftOrder:   c.shiftOrder,
		rooms:        c.rooms,
		roomOrder:    c.roomOrder,
		students:     c.students,
		studentOrder: c.studentOrder,
	}
}
