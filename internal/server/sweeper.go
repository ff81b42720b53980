package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/stmt-sorter/internal/fileutils"
	"fjacquet/stmt-sorter/internal/logging"
)

// reportPrefix marks files the sweeper is allowed to remove. The output
// directory defaults to the system temp dir, which other processes share.
const reportPrefix = "Bank_Summary_"

// Sweeper removes generated reports older than the retention period.
// Reports only exist so the client can download them right after an
// upload, so bounded retention keeps the output directory from growing
// forever.
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	logger    logging.Logger
}

// NewSweeper creates a Sweeper over the given directory.
func NewSweeper(dir string, retention, interval time.Duration, logger logging.Logger) *Sweeper {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Sweeper{
		dir:       dir,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Run sweeps once immediately and then on every interval tick until the
// context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes expired reports and returns how many were deleted.
func (s *Sweeper) Sweep() int {
	cutoff := time.Now().Add(-s.retention)
	removed := 0

	for _, extension := range []string{".xlsx", ".csv"} {
		files, err := fileutils.ListFilesWithExtension(s.dir, extension)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to list generated reports",
				logging.Field{Key: logging.FieldFile, Value: s.dir})
			continue
		}

		for _, path := range files {
			if !strings.HasPrefix(filepath.Base(path), reportPrefix) {
				continue
			}
			info, err := os.Stat(path)
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(path); err != nil {
				s.logger.WithError(err).Warn("Failed to remove expired report",
					logging.Field{Key: logging.FieldFile, Value: path})
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("Removed expired reports",
			logging.Field{Key: logging.FieldCount, Value: removed})
	}
	return removed
}
