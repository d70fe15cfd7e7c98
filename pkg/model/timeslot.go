package model

import "fmt"

// Timeslot is the day, time interval and location of one class of a Shift.
// The interval is half-open: [Start, End).
type Timeslot struct {
	day   Weekday
	start TimeOfDay
	end   TimeOfDay
	room  *Room
}

// NewTimeslot fails unless start < end. room may be nil when the location is unknown.
func NewTimeslot(day Weekday, start, end TimeOfDay, room *Room) (Timeslot, error) {
	if !day.Valid() {
		return Timeslot{}, errorf(ErrTimeslot, "invalid day %v", day)
	}
	if end <= start {
		return Timeslot{}, errorf(ErrTimeslot, "start (%v) must precede end (%v)", start, end)
	}
	return Timeslot{day: day, start: start, end: end, room: room}, nil
}

func (t Timeslot) Day() Weekday     { return t.day }
func (t Timeslot) Start() TimeOfDay { return t.start }
func (t Timeslot) End() TimeOfDay   { return t.end }

// Room returns the shared room reference, or nil.
func (t Timeslot) Room() *Room { return t.room }

// Capacity is the capacity of the room, unknown when there is no room.
func (t Timeslot) Capacity() (int, bool) {
	if t.room == nil {
		return 0, false
	}
	return t.room.Capacity()
}

// Overlaps reports whether both timeslots share a day and their intervals
// intersect. Touching intervals do not overlap.
func (t Timeslot) Overlaps(other Timeslot) bool {
	return t.day == other.day && t.start < other.end && other.start < t.end
}

// Equal compares day, interval and room identity. Room capacity is ignored.
func (t Timeslot) Equal(other Timeslot) bool {
	return t.day == other.day &&
		t.start == other.start &&
		t.end == other.end &&
		t.roomID() == other.roomID()
}

func (t Timeslot) roomID() string {
	if t.room == nil {
		return ""
	}
	return t.room.ID()
}

func (t Timeslot) String() string {
	if t.room == nil {
		return fmt.Sprintf("Timeslot(day=%v, start='%v', end='%v')", t.day, t.start, t.end)
	}
	return fmt.Sprintf("Timeslot(day=%v, start='%v', end='%v', room=%q)", t.day, t.start, t.end, t.room.ID())
}
