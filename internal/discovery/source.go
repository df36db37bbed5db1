// Package discovery enumerates every crontab-like job source on the system —
// per-user spool files, system crontab files, cron.d drop-in directories and
// anacron periodic directories — and aggregates them into a single read-only
// merged view.
//
// Discovery is a one-shot, synchronous pass over a small fixed set of
// locations. An Aggregator and the tabs it owns are not safe for concurrent
// mutation; callers embedding this in a multi-threaded host must synchronize
// externally.
package discovery

import (
	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
)

// Source is one discovery strategy. Discover inspects a filesystem location
// and returns zero or more tab handles. The aggregator passes itself in so
// strategies that depend on previously collected jobs (anacron absorption)
// can search the collection so far.
type Source interface {
	Discover(path string, agg *Aggregator) ([]*crontab.Tab, error)
}

// Location pairs a strategy with the path it inspects. Registry order
// determines the order tabs appear in the aggregate and matters for anacron
// absorption, which must run after the system tabs it searches.
type Location struct {
	Source Source
	Path   string
}

// DefaultLocations returns the known discovery locations for the current
// platform family.
func DefaultLocations(eng *crontab.Engine, log *logger.Logger) []Location {
	return []Location{
		// Known Linux locations (Debian, RedHat, etc)
		{NewUserSpoolSource(eng, log), eng.SpoolDir},
		{NewSystemTabSource(eng, log), "/etc/crontab"},
		{NewSystemTabSource(eng, log), "/etc/cron.d"},
		// Anacron digestion
		{NewAnaCronSource(eng, log), "/etc/cron.hourly"},
		{NewAnaCronSource(eng, log), "/etc/cron.daily"},
		{NewAnaCronSource(eng, log), "/etc/cron.weekly"},
		{NewAnaCronSource(eng, log), "/etc/cron.monthly"},
		// MacOSX, BSD, Windows: no known locations
	}
}
