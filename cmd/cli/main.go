package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/importer"
	applogger "github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/scheduler"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code so deferred cleanup, including the logger
// flush, runs before the process exits.
func realMain(args []string) int {
	fs := flag.NewFlagSet("timetable", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("timetable import failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	delim := cfg.CSV.Comma()

	snap, err := importer.Run(ctx, cfg.Import, delim, logger)
	if err != nil {
		return err
	}

	report := scheduler.Validate(snap, logger)
	fmt.Print(report)

	if path := cfg.Export.TimetableCSV; path != "" {
		if err := csvio.ExportTimetable(snap, path, delim); err != nil {
			return err
		}
		fmt.Println("Exported timetable to: " + path)
	}
	if path := cfg.Export.EnrollmentCSV; path != "" {
		if err := csvio.ExportEnrollments(snap, path, delim); err != nil {
			return err
		}
		fmt.Println("Exported enrollments to: " + path)
	}
	if path := cfg.Export.Workbook; path != "" {
		if err := csvio.ExportWorkbook(snap, path); err != nil {
			return err
		}
		fmt.Println("Exported workbook to: " + path)
	}

	if !report.Valid {
		return fmt.Errorf("timetable failed validation")
	}
	return nil
}
