package scheduler

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type fixture struct {
	t   *testing.T
	cat *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, cat: catalog.New(zap.NewNop())}
}

func (f *fixture) course(name string) *model.Course {
	c, err := f.cat.EnsureCourse(name)
	if err != nil {
		f.t.Fatal(err)
	}
	return c
}

func (f *fixture) room(building, name string, capacity int) *model.Room {
	r, err := f.cat.EnsureRoom(building, name)
	if err != nil {
		f.t.Fatal(err)
	}
	if capacity > 0 {
		if err := r.SetCapacity(capacity); err != nil {
			f.t.Fatal(err)
		}
	}
	return r
}

func (f *fixture) shift(course *model.Course, typ model.ShiftType, n int, day model.Weekday, start, end int, room *model.Room) {
	ts, err := model.NewTimeslot(day, model.MustTimeOfDay(start, 0), model.MustTimeOfDay(end, 0), room)
	if err != nil {
		f.t.Fatal(err)
	}
	s, err := model.NewShift(course, typ, n, ts)
	if err != nil {
		f.t.Fatal(err)
	}
	if err := f.cat.AddShift(s); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) enroll(number string, course *model.Course) {
	s, err := f.cat.EnsureStudent(number)
	if err != nil {
		f.t.Fatal(err)
	}
	if err := f.cat.Enroll(s, course); err != nil {
		f.t.Fatal(err)
	}
}

func findCheck(t *testing.T, r Report, name string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found", name)
	return Check{}
}

func TestValidateConsistentTimetable(t *testing.T) {
	f := newFixture(t)
	so := f.course("Sistemas Operativos")
	room := f.room("CP1", "0.08", 100)
	f.shift(so, model.Theoretical, 1, model.Monday, 9, 11, room)
	f.shift(so, model.PracticalLaboratory, 1, model.Monday, 11, 13, room)
	f.enroll("A100", so)

	report := Validate(f.cat.Publish(), zap.NewNop())
	if !report.Valid {
		t.Fatalf("expected valid report:\n%s", report)
	}
	for _, c := range report.Checks {
		if !c.OK {
			t.Fatalf("check %s failed: %v", c.Name, c.Details)
		}
	}
	if !strings.Contains(report.String(), "[  OK]: Classroom collision check.") {
		t.Fatalf("unexpected report:\n%s", report)
	}
}

func TestValidateRoomCollision(t *testing.T) {
	f := newFixture(t)
	room := f.room("CP1", "0.08", 100)
	f.shift(f.course("Sistemas Operativos"), model.Theoretical, 1, model.Monday, 9, 11, room)
	f.shift(f.course("Redes"), model.Theoretical, 1, model.Monday, 10, 12, room)
	f.shift(f.course("Bases de Dados"), model.Theoretical, 1, model.Monday, 11, 12, f.room("CP2", "1.01", 40))

	report := Validate(f.cat.Publish(), zap.NewNop())
	if report.Valid {
		t.Fatal("collision should invalidate the report")
	}
	c := findCheck(t, report, "Classroom collision")
	if c.OK || len(c.Details) != 1 {
		t.Fatalf("details = %v", c.Details)
	}
	if !strings.Contains(report.String(), "[FAIL]: Classroom collision check.") {
		t.Fatalf("unexpected report:\n%s", report)
	}
}

func TestValidateHalfEnrollment(t *testing.T) {
	f := newFixture(t)
	so := f.course("Sistemas Operativos")
	f.shift(so, model.Theoretical, 1, model.Monday, 9, 11, f.room("CP1", "0.08", 100))
	student, err := f.cat.EnsureStudent("A100")
	if err != nil {
		t.Fatal(err)
	}
	// Only one side of the enrollment.
	if err := so.AddStudent(student); err != nil {
		t.Fatal(err)
	}

	report := Validate(f.cat.Publish(), zap.NewNop())
	if report.Valid {
		t.Fatal("half enrollment should invalidate the report")
	}
	c := findCheck(t, report, "Enrollment symmetry")
	if c.OK || len(c.Details) != 1 {
		t.Fatalf("details = %v", c.Details)
	}
}

func TestValidateWarnings(t *testing.T) {
	f := newFixture(t)
	f.enroll("A100", f.course("Sistemas Operativos"))
	f.shift(f.course("Redes"), model.Theoretical, 1, model.Monday, 9, 11, f.room("CP1", "0.08", 0))

	report := Validate(f.cat.Publish(), zap.NewNop())
	if !report.Valid {
		t.Fatalf("warnings should not invalidate the report:\n%s", report)
	}
	if c := findCheck(t, report, "Course has shifts"); c.OK {
		t.Fatal("course without shifts should be reported")
	}
	if c := findCheck(t, report, "Shift capacity"); c.OK || len(c.Details) != 1 {
		t.Fatalf("unknown capacity details = %v", c.Details)
	}
	if !strings.Contains(report.String(), "[WARN]: Shift capacity check.") {
		t.Fatalf("unexpected report:\n%s", report)
	}
}
