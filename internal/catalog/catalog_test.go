package catalog

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func newTestCatalog() *Catalog {
	return New(zap.NewNop())
}

func slot(t *testing.T, day model.Weekday, start, end int, room *model.Room) model.Timeslot {
	t.Helper()
	ts, err := model.NewTimeslot(day, model.MustTimeOfDay(start, 0), model.MustTimeOfDay(end, 0), room)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestEnsureCourseResolvesAccents(t *testing.T) {
	cat := newTestCatalog()
	a, err := cat.EnsureCourse("Álgebra Linear")
	if err != nil {
		t.Fatal(err)
	}
	b, err := cat.EnsureCourse("Algebra Linear")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("names with the same id should resolve to one course")
	}
	if a.Name() != "Álgebra Linear" {
		t.Fatalf("first name should be kept, got %q", a.Name())
	}
	if _, err := cat.EnsureCourse("!!"); !errors.Is(err, model.ErrCourse) {
		t.Fatalf("expected course error, got %v", err)
	}
}

func TestEnsureRoomAndStudentAreShared(t *testing.T) {
	cat := newTestCatalog()
	r1, _ := cat.EnsureRoom("CP1", "0.08")
	r2, _ := cat.EnsureRoom("CP1", "0.08")
	if r1 != r2 {
		t.Fatal("rooms should be shared")
	}
	s1, err := cat.EnsureStudent("A100")
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := cat.EnsureStudent("A100")
	if s1 != s2 {
		t.Fatal("students should be shared")
	}
	if _, err := cat.EnsureStudent("Á1"); !errors.Is(err, model.ErrStudent) {
		t.Fatalf("expected student error, got %v", err)
	}
}

func TestAddShift(t *testing.T) {
	cat := newTestCatalog()
	course, _ := cat.EnsureCourse("Sistemas Operativos")
	room, _ := cat.EnsureRoom("CP1", "0.08")

	shift, err := model.NewShift(course, model.Theoretical, 1, slot(t, model.Monday, 9, 11, room))
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.AddShift(shift); err != nil {
		t.Fatal(err)
	}
	if got, ok := course.Shift("T1"); !ok || got != shift {
		t.Fatal("shift should be added to its course")
	}

	dup, _ := model.NewShift(course, model.Theoretical, 1, slot(t, model.Tuesday, 9, 11, room))
	if err := cat.AddShift(dup); !errors.Is(err, ErrDuplicateShift) {
		t.Fatalf("expected duplicate shift error, got %v", err)
	}

	stray, _ := model.NewCourse("Sistemas Operativos")
	foreign, _ := model.NewShift(stray, model.Theoretical, 2, slot(t, model.Monday, 9, 11, nil))
	if err := cat.AddShift(foreign); !errors.Is(err, ErrUnknownCourse) {
		t.Fatalf("expected unknown course error, got %v", err)
	}
	if len(course.Shifts()) != 1 {
		t.Fatal("rejected shifts changed the course")
	}
}

func TestEnrollBothSides(t *testing.T) {
	cat := newTestCatalog()
	student, _ := cat.EnsureStudent("A100")
	course, _ := cat.EnsureCourse("Sistemas Operativos")

	if err := cat.Enroll(student, course); err != nil {
		t.Fatal(err)
	}
	if got, _ := course.Student("A100"); got != student {
		t.Fatal("course side missing")
	}
	if got, _ := student.Course(course.ID()); got != course {
		t.Fatal("student side missing")
	}

	if err := cat.Enroll(student, course); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected already enrolled, got %v", err)
	}
	if len(course.Students()) != 1 || len(student.Courses()) != 1 {
		t.Fatal("failed enrollment changed the graph")
	}
}

func TestEnrollRejectsHalfEdge(t *testing.T) {
	cat := newTestCatalog()
	student, _ := cat.EnsureStudent("A100")
	course, _ := cat.EnsureCourse("Sistemas Operativos")
	if err := student.AddCourse(course); err != nil {
		t.Fatal(err)
	}
	if err := cat.Enroll(student, course); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected already enrolled, got %v", err)
	}
	if course.HasStudent("A100") {
		t.Fatal("course side must not be written when the student side already exists")
	}
}

func TestEnrollRejectsUnregisteredStudent(t *testing.T) {
	cat := newTestCatalog()
	course, _ := cat.EnsureCourse("Sistemas Operativos")
	stray, err := model.NewStudent("A100")
	if err != nil {
		t.Fatal(err)
	}

	if err := cat.Enroll(stray, course); !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected unknown student, got %v", err)
	}
	if course.HasStudent("A100") || stray.HasCourse(course.ID()) {
		t.Fatal("rejected enrollment changed the graph")
	}

	// A registered student with the same number is a different instance.
	if _, err := cat.EnsureStudent("A100"); err != nil {
		t.Fatal(err)
	}
	if err := cat.Enroll(stray, course); !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected unknown student, got %v", err)
	}
	if _, ok := cat.Publish().Student("A100"); !ok {
		t.Fatal("registered student missing from snapshot")
	}
	if course.HasStudent("A100") {
		t.Fatal("course lists a student the snapshot does not hold")
	}
}

func TestPublishSeals(t *testing.T) {
	cat := newTestCatalog()
	course, _ := cat.EnsureCourse("Sistemas Operativos")
	student, _ := cat.EnsureStudent("A100")
	room, _ := cat.EnsureRoom("CP1", "0.08")
	shift, _ := model.NewShift(course, model.Theoretical, 1, slot(t, model.Monday, 9, 11, room))
	if err := cat.AddShift(shift); err != nil {
		t.Fatal(err)
	}
	if err := cat.Enroll(student, course); err != nil {
		t.Fatal(err)
	}

	snap := cat.Publish()
	if !cat.Sealed() || snap.ID() != cat.ID() {
		t.Fatal("catalog should be sealed")
	}
	if _, err := cat.EnsureCourse("Redes"); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected sealed, got %v", err)
	}
	if _, err := cat.EnsureRoom("CP2", "1.01"); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected sealed, got %v", err)
	}
	if _, err := cat.EnsureStudent("A200"); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected sealed, got %v", err)
	}
	if err := cat.AddShift(shift); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected sealed, got %v", err)
	}
	if err := cat.Enroll(student, course); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected sealed, got %v", err)
	}

	if len(snap.Courses()) != 1 || len(snap.Shifts()) != 1 || len(snap.Rooms()) != 1 || len(snap.Students()) != 1 {
		t.Fatal("snapshot contents")
	}
	if got, ok := snap.Shift("SistemasOperativos T1"); !ok || got != shift {
		t.Fatal("shift lookup by id")
	}
	if got, ok := snap.Room("CP1 0.08"); !ok || got != room {
		t.Fatal("room lookup by id")
	}
	if got, ok := snap.Student("A100"); !ok || got != student {
		t.Fatal("student lookup")
	}
	if got, ok := snap.Course("SistemasOperativos"); !ok || got != course {
		t.Fatal("course lookup")
	}
}

func TestSnapshotKeepsRegistrationOrder(t *testing.T) {
	cat := newTestCatalog()
	for _, name := range []string{"Redes", "Álgebra", "Bases de Dados"} {
		if _, err := cat.EnsureCourse(name); err != nil {
			t.Fatal(err)
		}
	}
	courses := cat.Publish().Courses()
	if courses[0].ID() != "Redes" || courses[1].ID() != "Algebra" || courses[2].ID() != "BasesdeDados" {
		t.Fatalf("unexpected order %v", courses)
	}
}
