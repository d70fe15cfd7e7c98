package api

import (
	"sort"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// JSON views of the entities. References across the graph are rendered as
// identities, never as nested objects, so Student/Course cycles stay finite.

type roomView struct {
	ID             string `json:"id"`
	Building       string `json:"building"`
	NameInBuilding string `json:"name_in_building"`
	Capacity       *int   `json:"capacity"`
}

type timeslotView struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
	Room  string `json:"room,omitempty"`
}

type shiftView struct {
	ID        string         `json:"id"`
	Course    string         `json:"course"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Number    int            `json:"number"`
	Capacity  *int           `json:"capacity"`
	Timeslots []timeslotView `json:"timeslots"`
}

type courseSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Shifts   int    `json:"shifts"`
	Students int    `json:"students"`
}

type courseView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Shifts   []string `json:"shifts"`
	Students []string `json:"students"`
}

type studentView struct {
	Number  string   `json:"number"`
	Courses []string `json:"courses"`
}

func capacityPtr(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}

func newRoomView(r *model.Room) roomView {
	return roomView{
		ID:             r.ID(),
		Building:       r.Building(),
		NameInBuilding: r.NameInBuilding(),
		Capacity:       capacityPtr(r.Capacity()),
	}
}

func newShiftView(s *model.Shift) shiftView {
	slots := s.Timeslots()
	v := shiftView{
		ID:        s.ID(),
		Course:    s.Course().ID(),
		Name:      s.Name(),
		Type:      string(s.Type()),
		Number:    s.Number(),
		Capacity:  capacityPtr(s.Capacity()),
		Timeslots: make([]timeslotView, len(slots)),
	}
	for i, t := range slots {
		v.Timeslots[i] = timeslotView{Day: t.Day().String(), Start: t.Start().String(), End: t.End().String()}
		if t.Room() != nil {
			v.Timeslots[i].Room = t.Room().ID()
		}
	}
	return v
}

func newCourseView(c *model.Course) courseView {
	v := courseView{ID: c.ID(), Name: c.Name(), Shifts: []string{}, Students: []string{}}
	for _, s := range c.ShiftList() {
		v.Shifts = append(v.Shifts, s.Name())
	}
	for number := range c.Students() {
		v.Students = append(v.Students, number)
	}
	sort.Strings(v.Students)
	return v
}

func newStudentView(s *model.Student) studentView {
	v := studentView{Number: s.Number(), Courses: []string{}}
	for _, c := range s.CourseList() {
		v.Courses = append(v.Courses, c.ID())
	}
	return v
}
