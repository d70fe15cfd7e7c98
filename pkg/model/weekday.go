package model

import (
	"fmt"
	"strings"
)

// Weekday is a day on which classes can be taught. Weekends are excluded.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists every teaching day in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Valid reports whether d is one of the five teaching days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdayFromIndex maps a 0-based day index (0 = Monday) onto a Weekday.
func WeekdayFromIndex(i int) (Weekday, bool) {
	d := Weekday(i)
	return d, d.Valid()
}

// ParseWeekday accepts a case-insensitive day name.
func ParseWeekday(s string) (Weekday, bool) {
	for i, name := range weekdayNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Weekday(i), true
		}
	}
	return 0, false
}
