package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func serveFile(t *testing.T, path string) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCalendariumFetch(t *testing.T) {
	srv := serveFile(t, "testdata/calendarium.json")
	cat := catalog.New(zap.NewNop())

	imp := NewCalendarium(srv.URL, 5*time.Second, zap.NewNop())
	if err := imp.Fetch(context.Background(), cat); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	snap := cat.Publish()

	if len(snap.Courses()) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(snap.Courses()))
	}
	if len(snap.Rooms()) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(snap.Rooms()))
	}
	if len(snap.Shifts()) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(snap.Shifts()))
	}

	pl, ok := snap.Shift("SistemasOperativos PL1")
	if !ok {
		t.Fatal("PL1 missing")
	}
	slots := pl.Timeslots()
	if len(slots) != 2 || slots[0].Day() != model.Wednesday || slots[1].Day() != model.Friday {
		t.Fatalf("PL1 timeslots = %v", slots)
	}

	t1, _ := snap.Shift("SistemasOperativos T1")
	tp2, _ := snap.Shift("LaboratoriosdeProgramacao TP2")
	if t1.Timeslots()[0].Room() != tp2.Timeslots()[0].Room() {
		t.Fatal("rooms with the same id should be shared")
	}
	course, _ := snap.Course("LaboratoriosdeProgramacao")
	if course.Name() != "Laboratórios de Programação" {
		t.Fatalf("course name = %q", course.Name())
	}
}

func TestCalendariumFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewCalendarium(srv.URL, time.Second, zap.NewNop()).Fetch(context.Background(), catalog.New(zap.NewNop()))
	if !errors.Is(err, ErrImport) {
		t.Fatalf("expected import error, got %v", err)
	}
}

func TestCalendariumFetchCanceled(t *testing.T) {
	srv := serveFile(t, "testdata/calendarium.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCalendarium(srv.URL, 0, zap.NewNop()).Fetch(ctx, catalog.New(zap.NewNop()))
	if !errors.Is(err, ErrImport) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled import error, got %v", err)
	}
}

func TestCalendariumDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind error
	}{
		{"not a list", `{"title": "x"}`, nil},
		{"not an object", `[1]`, nil},
		{"missing key", `[{"title": "SO", "shift": "T1", "day": 0, "start": "09:00", "end": "10:00", "building": "CP1"}]`, nil},
		{"wrong type", `[{"title": 3, "shift": "T1", "day": 0, "start": "09:00", "end": "10:00", "building": "CP1", "room": "1"}]`, nil},
		{"bad shift", `[{"title": "SO", "shift": "X1", "day": 0, "start": "09:00", "end": "10:00", "building": "CP1", "room": "1"}]`, model.ErrShift},
		{"bad day", `[{"title": "SO", "shift": "T1", "day": 5, "start": "09:00", "end": "10:00", "building": "CP1", "room": "1"}]`, nil},
		{"bad hour", `[{"title": "SO", "shift": "T1", "day": 0, "start": "9h", "end": "10:00", "building": "CP1", "room": "1"}]`, model.ErrTimeslot},
		{"signed hour", `[{"title": "SO", "shift": "T1", "day": 0, "start": "+9:00", "end": "10:00", "building": "CP1", "room": "1"}]`, model.ErrTimeslot},
		{"empty interval", `[{"title": "SO", "shift": "T1", "day": 0, "start": "10:00", "end": "10:00", "building": "CP1", "room": "1"}]`, model.ErrTimeslot},
		{"duplicate record", `[
			{"title": "SO", "shift": "T1", "day": 0, "start": "09:00", "end": "10:00", "building": "CP1", "room": "1"},
			{"title": "SO", "shift": "T1", "day": 0, "start": "09:00", "end": "10:00", "building": "CP1", "room": "1"}]`, model.ErrShift},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			imp := NewCalendarium("", 0, zap.NewNop())
			err := imp.Decode(strings.NewReader(tc.body), catalog.New(zap.NewNop()))
			if !errors.Is(err, ErrImport) {
				t.Fatalf("expected import error, got %v", err)
			}
			if tc.kind != nil && !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v in chain, got %v", tc.kind, err)
			}
		})
	}
}
