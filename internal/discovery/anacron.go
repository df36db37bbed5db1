package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
)

// anacronStub is the compatibility script anacron drops into periodic
// directories; it is never a job of its own.
const anacronStub = "0anacron"

// AnaCronSource absorbs an anacron periodic-job directory into explicit cron
// jobs so its scripts become visible and editable like ordinary entries.
//
// Absorption only runs once the aggregator has collected at least one tab:
// it needs an existing job that invokes anacron (or run-parts) on the
// directory to serve as the schedule template. Each executable script in the
// directory becomes one job copying the template's schedule, and the template
// job is then deleted from its owning tab so the directory does not
// double-fire.
type AnaCronSource struct {
	eng *crontab.Engine
	log *logger.Logger
}

// NewAnaCronSource returns an anacron absorption source.
func NewAnaCronSource(eng *crontab.Engine, log *logger.Logger) *AnaCronSource {
	return &AnaCronSource{eng: eng, log: log}
}

// Discover absorbs the periodic directory at path. An absent path or an
// empty aggregator yields nothing. A directory listing failure is fatal for
// this location only: the seeded handle is dropped and the template job is
// left in place.
func (s *AnaCronSource) Discover(path string, agg *Aggregator) ([]*crontab.Tab, error) {
	if agg == nil || len(agg.Tabs()) == 0 {
		return nil, nil
	}
	path = filepath.Clean(path)
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return nil, nil
	}

	seed := crontab.NewSystemTab()
	tabs := []*crontab.Tab{seed}

	matches := agg.FindCommand(path)
	if len(matches) == 0 {
		// No anacron launcher installed; keep the empty seeded handle.
		return tabs, nil
	}
	template := matches[0]

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == anacronStub || strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(path, name)
		if !isExecutable(entry) {
			s.log.Debug("skipping non-executable periodic entry",
				logger.Field{Key: "path", Value: full})
			continue
		}
		job := seed.NewJob(full, template.User, "Anacron "+lastDotSegment(path))
		job.CopyScheduleFrom(template)
	}

	// The directory is now absorbed script by script; the original launcher
	// must not fire as well.
	template.Delete()
	return tabs, nil
}

// isExecutable reports whether the entry is a regular file with any execute
// bit set.
func isExecutable(entry os.DirEntry) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// lastDotSegment returns the part of path after its last dot, naming the
// periodic interval: /etc/cron.daily -> "daily".
func lastDotSegment(path string) string {
	parts := strings.Split(path, ".")
	return parts[len(parts)-1]
}
