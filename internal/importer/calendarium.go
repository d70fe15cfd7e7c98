package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Calendarium imports courses, shifts and rooms from the Calendarium shift
// list: a JSON array with one object per (shift, timeslot).
type Calendarium struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

type calendariumShift struct {
	Title    *string `json:"title"`
	Shift    *string `json:"shift"`
	Day      *int    `json:"day"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Building *string `json:"building"`
	Room     *string `json:"room"`
}

// NewCalendarium creates an importer for url. A zero timeout disables the client timeout.
func NewCalendarium(url string, timeout time.Duration, logger *zap.Logger) *Calendarium {
	return &Calendarium{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch downloads the shift list and imports it into cat.
func (c *Calendarium) Fetch(ctx context.Context, cat *catalog.Catalog) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return importErrorf(err, "build Calendarium request")
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return importErrorf(err, "failed to obtain data from Calendarium")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return importErrorf(nil, "Calendarium responded %s", resp.Status)
	}
	c.logger.Info("Calendarium data received",
		zap.String("url", c.url),
		zap.Duration("latency", time.Since(start)),
	)
	return c.Decode(resp.Body, cat)
}

// Decode imports a Calendarium shift list read from r.
func (c *Calendarium) Decode(r io.Reader, cat *catalog.Catalog) error {
	var records []json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return importErrorf(err, "expecting a list in Calendarium's data")
	}
	for i, raw := range records {
		var record calendariumShift
		if err := json.Unmarshal(raw, &record); err != nil {
			return importErrorf(err, "record %d: expecting an object with title, shift, day, start, end, building and room", i)
		}
		if err := c.importShift(cat, &record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	c.logger.Info("Calendarium import done", zap.Int("records", len(records)))
	return nil
}

func (c *Calendarium) importShift(cat *catalog.Catalog, record *calendariumShift) error {
	if record.Title == nil || record.Shift == nil || record.Day == nil || record.Start == nil ||
		record.End == nil || record.Building == nil || record.Room == nil {
		return importErrorf(nil, "missing keys in one of Calendarium's shifts")
	}

	shiftType, number, err := model.ParseShiftName(*record.Shift)
	if err != nil {
		return importErrorf(err, "invalid shift information in Calendarium's data")
	}
	day, ok := model.WeekdayFromIndex(*record.Day)
	if !ok {
		return importErrorf(nil, "day must be between 0 and 4, got %d", *record.Day)
	}
	start, err := model.ParseTimeOfDay(*record.Start)
	if err != nil {
		return importErrorf(err, "invalid start hour")
	}
	end, err := model.ParseTimeOfDay(*record.End)
	if err != nil {
		return importErrorf(err, "invalid end hour")
	}

	course, err := cat.EnsureCourse(*record.Title)
	if err != nil {
		return importErrorf(err, "invalid course %q", *record.Title)
	}
	room, err := cat.EnsureRoom(*record.Building, *record.Room)
	if err != nil {
		return importErrorf(err, "invalid room")
	}
	timeslot, err := model.NewTimeslot(day, start, end, room)
	if err != nil {
		return importErrorf(err, "invalid timeslot for %s %s", course.ID(), *record.Shift)
	}

	// A shift taught in several timeslots appears once per timeslot, so a
	// repeated shift id is merged rather than rejected as a duplicate. Only a
	// repeat that overlaps an existing timeslot of the shift fails.
	if existing, ok := cat.Shift(model.ShiftID(course.ID(), shiftType, number)); ok {
		if err := existing.AddTimeslot(timeslot); err != nil {
			return importErrorf(err, "same shift appears more than once in Calendarium's data")
		}
		return nil
	}

	shift, err := model.NewShift(course, shiftType, number, timeslot)
	if err != nil {
		return importErrorf(err, "invalid shift information in Calendarium's data")
	}
	if err := cat.AddShift(shift); err != nil {
		return importErrorf(err, "add shift %s", shift.ID())
	}
	c.logger.Debug("shift imported",
		zap.String("shift", shift.ID()),
		zap.Stringer("day", day),
		zap.Stringer("start", start),
		zap.Stringer("end", end),
		zap.String("room", room.ID()),
	)
	return nil
}
