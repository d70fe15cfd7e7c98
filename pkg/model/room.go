package model

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// Room is a room on campus. Rooms are shared by reference between every
// Timeslot taught in them, so a capacity change is seen by all of them.
type Room struct {
	building       string
	nameInBuilding string
	capacity       int // 0 means unknown
}

// NewRoom creates a room with unknown capacity.
func NewRoom(building, nameInBuilding string) *Room {
	return &Room{building: building, nameInBuilding: nameInBuilding}
}

// NewRoomWithCapacity creates a room with a known, positive capacity.
func NewRoomWithCapacity(building, nameInBuilding string, capacity int) (*Room, error) {
	r := NewRoom(building, nameInBuilding)
	if err := r.SetCapacity(capacity); err != nil {
		return nil, err
	}
	return r, nil
}

// RoomID composes the identity of a room without building one.
func RoomID(building, nameInBuilding string) string {
	return building + " " + nameInBuilding
}

// ID identifies the room: "{building} {name in building}".
func (r *Room) ID() string { return RoomID(r.building, r.nameInBuilding) }

func (r *Room) Building() string       { return r.building }
func (r *Room) NameInBuilding() string { return r.nameInBuilding }

// Capacity returns the number of seats and whether it is known.
func (r *Room) Capacity() (int, bool) {
	return r.capacity, r.capacity > 0
}

// SetCapacity sets a known capacity. Non-positive values are rejected and the
// room keeps its previous capacity.
func (r *Room) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return errorf(ErrRoom, "capacity of %s must be positive, got %d", r.ID(), capacity)
	}
	r.capacity = capacity
	return nil
}

// ClearCapacity marks the capacity as unknown.
func (r *Room) ClearCapacity() {
	r.capacity = 0
}

// Equal compares identity and capacity.
func (r *Room) Equal(other *Room) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.building == other.building &&
		r.nameInBuilding == other.nameInBuilding &&
		r.capacity == other.capacity
}

// Hash is consistent with Equal.
func (r *Room) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(r.ID()))
	return h.Sum64()
}

// Clone returns an independent room with the same identity and capacity.
func (r *Room) Clone() *Room {
	c := *r
	return &c
}

func (r *Room) String() string {
	capacity := "None"
	if n, ok := r.Capacity(); ok {
		capacity = strconv.Itoa(n)
	}
	return fmt.Sprintf("Room(building=%q, name_in_building=%q, capacity=%s)",
		r.building, r.nameInBuilding, capacity)
}
