package model

import (
	"errors"
	"testing"
)

func mustCourse(t *testing.T, name string) *Course {
	t.Helper()
	c, err := NewCourse(name)
	if err != nil {
		t.Fatalf("NewCourse(%q): %v", name, err)
	}
	return c
}

func mustStudent(t *testing.T, number string) *Student {
	t.Helper()
	s, err := NewStudent(number)
	if err != nil {
		t.Fatalf("NewStudent(%q): %v", number, err)
	}
	return s
}

func mustSlot(t *testing.T, day Weekday, start, end string, room *Room) Timeslot {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", start, err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", end, err)
	}
	slot, err := NewTimeslot(day, s, e, room)
	if err != nil {
		t.Fatalf("NewTimeslot: %v", err)
	}
	return slot
}

func mustRoom(t *testing.T, building, name string, capacity int) *Room {
	t.Helper()
	r, err := NewRoomWithCapacity(building, name, capacity)
	if err != nil {
		t.Fatalf("NewRoomWithCapacity: %v", err)
	}
	return r
}

func wantKind(t *testing.T, err error, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
}
