package model

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
)

// ShiftType is the class format of a shift.
type ShiftType string

const (
	Theoretical          ShiftType = "T"
	TheoreticalPractical ShiftType = "TP"
	PracticalLaboratory  ShiftType = "PL"
	Tutorial             ShiftType = "OT"
)

// ShiftTypes lists every known shift type.
var ShiftTypes = []ShiftType{Theoretical, TheoreticalPractical, PracticalLaboratory, Tutorial}

// Longer codes first so "TP" is never read as "T".
var shiftNameRegex = regexp.MustCompile(`^(TP|PL|OT|T)([0-9]+)$`)

// Valid reports whether t is one of the known shift types.
func (t ShiftType) Valid() bool {
	for _, known := range ShiftTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Shift is a subdivision of a Course, taught in one or more non-overlapping
// timeslots. The course reference is a back-reference used for identity and
// for checking that the shift is added to the right course; the course owns
// the shift, not the other way around.
type Shift struct {
	course    *Course
	shiftType ShiftType
	number    int
	timeslots []Timeslot
}

// NewShift creates a shift of course. At least one timeslot is required and
// they are added one by one with AddTimeslot, so overlaps are reported the
// same way as later additions.
func NewShift(course *Course, shiftType ShiftType, number int, timeslots ...Timeslot) (*Shift, error) {
	if course == nil {
		return nil, errorf(ErrShift, "shift %s%d has no course", shiftType, number)
	}
	if !shiftType.Valid() {
		return nil, errorf(ErrShift, "unknown shift type %q", string(shiftType))
	}
	if number < 0 {
		return nil, errorf(ErrShift, "shift number must not be negative, got %d", number)
	}
	if len(timeslots) == 0 {
		return nil, errorf(ErrShift, "shift %s %s%d has no timeslots", course.ID(), shiftType, number)
	}

	s := &Shift{
		course:    course,
		shiftType: shiftType,
		number:    number,
		timeslots: make([]Timeslot, 0, len(timeslots)),
	}
	for _, t := range timeslots {
		if err := s.AddTimeslot(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseShiftName splits a shift code such as "TP2" into its type and number.
func ParseShiftName(name string) (ShiftType, int, error) {
	match := shiftNameRegex.FindStringSubmatch(name)
	if match == nil {
		return "", 0, errorf(ErrShift, "failed to parse shift name %q", name)
	}
	number, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, wrapf(ErrShift, err, "failed to parse shift number in %q", name)
	}
	return ShiftType(match[1]), number, nil
}

// AddTimeslot appends t unless it overlaps one of the shift's timeslots.
// On failure the shift is left untouched.
func (s *Shift) AddTimeslot(t Timeslot) error {
	for _, existing := range s.timeslots {
		if existing.Overlaps(t) {
			return errorf(ErrShift, "%v overlaps %v in shift %s", t, existing, s.ID())
		}
	}
	s.timeslots = append(s.timeslots, t)
	return nil
}

// Overlaps reports whether any timeslot of s overlaps any timeslot of other.
func (s *Shift) Overlaps(other *Shift) bool {
	for _, mine := range s.timeslots {
		for _, theirs := range other.timeslots {
			if mine.Overlaps(theirs) {
				return true
			}
		}
	}
	return false
}

// Course returns the course this shift belongs to.
func (s *Shift) Course() *Course { return s.course }

func (s *Shift) Type() ShiftType { return s.shiftType }
func (s *Shift) Number() int     { return s.number }

// Name identifies the shift within its course, e.g. "TP2".
func (s *Shift) Name() string {
	return fmt.Sprintf("%s%d", s.shiftType, s.number)
}

// ID identifies the shift globally: "{course id} {name}".
func (s *Shift) ID() string {
	return ShiftID(s.course.ID(), s.shiftType, s.number)
}

// ShiftID composes a shift identity without building one.
func ShiftID(courseID string, shiftType ShiftType, number int) string {
	return fmt.Sprintf("%s %s%d", courseID, shiftType, number)
}

// Timeslots returns a copy of the timeslot list, in insertion order.
func (s *Shift) Timeslots() []Timeslot {
	out := make([]Timeslot, len(s.timeslots))
	copy(out, s.timeslots)
	return out
}

// Rooms returns the distinct rooms the shift is taught in, in insertion order.
func (s *Shift) Rooms() []*Room {
	var rooms []*Room
	seen := make(map[string]bool)
	for _, t := range s.timeslots {
		if t.room == nil || seen[t.room.ID()] {
			continue
		}
		seen[t.room.ID()] = true
		rooms = append(rooms, t.room)
	}
	return rooms
}

// Capacity is the capacity of the smallest room the shift is taught in. It
// is unknown when there are no timeslots, or when any timeslot has no room
// or a room of unknown capacity.
func (s *Shift) Capacity() (int, bool) {
	if len(s.timeslots) == 0 {
		return 0, false
	}
	least := 0
	for i, t := range s.timeslots {
		c, ok := t.Capacity()
		if !ok {
			return 0, false
		}
		if i == 0 || c < least {
			least = c
		}
	}
	return least, true
}

// Equal compares course identity, type, number and timeslots. The course is
// compared by identity only.
func (s *Shift) Equal(other *Shift) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.course.ID() != other.course.ID() || s.shiftType != other.shiftType ||
		s.number != other.number || len(s.timeslots) != len(other.timeslots) {
		return false
	}
	for i := range s.timeslots {
		if !s.timeslots[i].Equal(other.timeslots[i]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (s *Shift) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.ID()))
	return h.Sum64()
}

// Clone returns a shift of the same course with its own timeslot list.
// Rooms stay shared.
func (s *Shift) Clone() *Shift {
	return s.cloneFor(s.course)
}

func (s *Shift) cloneFor(course *Course) *Shift {
	return &Shift{
		course:    course,
		shiftType: s.shiftType,
		number:    s.number,
		timeslots: s.Timeslots(),
	}
}

func (s *Shift) String() string {
	slots := make([]string, len(s.timeslots))
	for i, t := range s.timeslots {
		slots[i] = t.String()
	}
	return fmt.Sprintf("Shift(course=Course(id=%q, ...), shift_type=%s, number=%d, timeslots=[%s])",
		s.course.ID(), s.shiftType, s.number, strings.Join(slots, ", "))
}
