package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
)

// Run performs one import session over every configured source and
// publishes the result. Shifts come first so the room file can attach
// capacities to rooms already referenced by timeslots; rosters follow.
func Run(ctx context.Context, cfg config.ImportConfig, delim rune, logger *zap.Logger) (*catalog.Snapshot, error) {
	cat := catalog.New(logger)

	if cfg.CalendariumURL != "" {
		if err := NewCalendarium(cfg.CalendariumURL, cfg.HTTPTimeout, logger).Fetch(ctx, cat); err != nil {
			return nil, err
		}
	}
	if cfg.RoomsCSV != "" {
		if _, err := csvio.LoadRooms(cfg.RoomsCSV, delim, cat, logger); err != nil {
			return nil, importErrorf(err, "load rooms from %s", cfg.RoomsCSV)
		}
	}
	if cfg.EnrollmentDir != "" {
		if err := NewBlackboard(cat, logger).LoadDirectory(cfg.EnrollmentDir); err != nil {
			return nil, err
		}
	}
	if cfg.EnrollmentCSV != "" {
		if _, err := csvio.LoadEnrollments(cfg.EnrollmentCSV, delim, cat, logger); err != nil {
			return nil, importErrorf(err, "load enrollments from %s", cfg.EnrollmentCSV)
		}
	}
	return cat.Publish(), nil
}
