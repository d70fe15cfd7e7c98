package scheduler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Check is the outcome of one consistency check.
type Check struct {
	Name    string   `json:"name"`
	OK      bool     `json:"ok"`
	Warning bool     `json:"warning"` // a failed warning does not invalidate the report
	Details []string `json:"details,omitempty"`
}

// Report collects every check run by Validate.
type Report struct {
	Valid  bool    `json:"valid"`
	Checks []Check `json:"checks"`
}

// Validate checks a published timetable for enrollments recorded on one side
// only, rooms booked by two shifts at once, enrolled courses without shifts
// and shifts of unknown capacity. The last two are warnings.
func Validate(snap *catalog.Snapshot, logger *zap.Logger) Report {
	checks := []Check{
		checkEnrollmentSymmetry(snap),
		checkRoomCollisions(snap),
		checkCoursesHaveShifts(snap),
		checkShiftCapacities(snap),
	}

	report := Report{Valid: true, Checks: checks}
	for _, c := range checks {
		if !c.OK && !c.Warning {
			report.Valid = false
		}
		if !c.OK {
			logger.Warn("timetable check failed",
				zap.String("check", c.Name),
				zap.Bool("warning", c.Warning),
				zap.Int("problems", len(c.Details)),
			)
		}
	}
	return report
}

// String renders the report one check per line, problems indented below.
func (r Report) String() string {
	var b strings.Builder
	for _, c := range r.Checks {
		switch {
		case c.OK:
			b.WriteString("[  OK]: ")
		case c.Warning:
			b.WriteString("[WARN]: ")
		default:
			b.WriteString("[FAIL]: ")
		}
		b.WriteString(c.Name)
		b.WriteString(" check.\n")
		for _, d := range c.Details {
			b.WriteString("    - ")
			b.WriteString(d)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func checkEnrollmentSymmetry(snap *catalog.Snapshot) Check {
	check := Check{Name: "Enrollment symmetry"}
	for _, course := range snap.Courses() {
		for _, student := range course.StudentList() {
			if held, ok := student.Course(course.ID()); !ok || held != course {
				check.Details = append(check.Details,
					fmt.Sprintf("%s lists %s, but the student does not list the course", course.ID(), student.Number()))
			}
		}
	}
	for _, student := range snap.Students() {
		for _, course := range student.CourseList() {
			if held, ok := course.Student(student.Number()); !ok || held != student {
				check.Details = append(check.Details,
					fmt.Sprintf("%s lists %s, but the course does not list the student", student.Number(), course.ID()))
			}
		}
	}
	check.OK = len(check.Details) == 0
	return check
}

type booking struct {
	shift *model.Shift
	slot  model.Timeslot
}

func checkRoomCollisions(snap *catalog.Snapshot) Check {
	check := Check{Name: "Classroom collision"}

	byRoom := make(map[string][]booking)
	var rooms []string
	for _, shift := range snap.Shifts() {
		for _, slot := range shift.Timeslots() {
			if slot.Room() == nil {
				continue
			}
			id := slot.Room().ID()
			if _, seen := byRoom[id]; !seen {
				rooms = append(rooms, id)
			}
			byRoom[id] = append(byRoom[id], booking{shift: shift, slot: slot})
		}
	}

	for _, id := range rooms {
		bookings := byRoom[id]
		for i := 0; i < len(bookings); i++ {
			for j := i + 1; j < len(bookings); j++ {
				a, b := bookings[i], bookings[j]
				if a.shift != b.shift && a.slot.Overlaps(b.slot) {
					check.Details = append(check.Details,
						fmt.Sprintf("Classroom %s assigned to %s and %s on %v", id, a.shift.ID(), b.shift.ID(), a.slot.Day()))
				}
			}
		}
	}
	check.OK = len(check.Details) == 0
	return check
}

func checkCoursesHaveShifts(snap *catalog.Snapshot) Check {
	check := Check{Name: "Course has shifts", Warning: true}
	for _, course := range snap.Courses() {
		if len(course.Students()) > 0 && len(course.Shifts()) == 0 {
			check.Details = append(check.Details,
				fmt.Sprintf("%s has %d students but no shifts", course.ID(), len(course.Students())))
		}
	}
	check.OK = len(check.Details) == 0
	return check
}

func checkShiftCapacities(snap *catalog.Snapshot) Check {
	check := Check{Name: "Shift capacity", Warning: true}
	for _, shift := range snap.Shifts() {
		if _, ok := shift.Capacity(); !ok {
			check.Details = append(check.Details, fmt.Sprintf("%s has unknown capacity", shift.ID()))
		}
	}
	check.OK = len(check.Details) == 0
	return check
}
