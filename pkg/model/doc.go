// Package model holds the timetable entities: students, courses, shifts,
// timeslots and rooms.
//
//	Student <>--> Course <>--> Shift <>--> Timeslot --> Room
//
// Entities are built with their identifying fields and grown with the Add*
// methods, which reject any change that would break an invariant and leave
// the receiver untouched when they do. Nothing is ever removed.
//
// Objects are never copied on insertion: adding a shift stores that shift,
// and a Room is shared by every Timeslot taught in it. Collection getters
// return fresh maps or slices, so changing the result never changes the
// entity, while the elements are the same shared objects.
//
// Enrollment is held on both sides (Course.AddStudent and Student.AddCourse)
// and the two are not synchronized here. Callers that build the graph must
// make both calls; see internal/catalog.
//
// The package is not safe for concurrent mutation.
package model
