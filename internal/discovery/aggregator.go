package discovery

import (
	"strings"

	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
)

// Aggregator owns the full collection of discovered tabs and a lazily built
// merged view of every job across every tab.
//
// Construct one explicitly and keep it in the composition root; call Reset
// between test runs instead of relying on process-global state.
type Aggregator struct {
	eng *crontab.Engine
	log *logger.Logger

	tabs   []*crontab.Tab
	merged *crontab.Tab
	errs   []error
}

// New returns an empty aggregator. Nothing is discovered until Discover or
// Add is called.
func New(eng *crontab.Engine, log *logger.Logger) *Aggregator {
	return &Aggregator{eng: eng, log: log}
}

// Discover runs every registry location in order. Later locations may depend
// on tabs collected by earlier ones, so the walk is strictly sequential.
func (a *Aggregator) Discover(locations []Location) {
	for _, loc := range locations {
		a.Add(loc.Source, loc.Path)
	}
}

// Add invokes one strategy on one path, appends every returned tab to the
// collection and invalidates the merged-view cache. A strategy yielding zero
// tabs is not an error; a failing strategy is recorded and logged but never
// aborts the pass.
func (a *Aggregator) Add(src Source, path string) {
	tabs, err := src.Discover(path, a)
	if err != nil {
		lerr := &LocationError{Path: path, Err: err}
		a.errs = append(a.errs, lerr)
		a.log.Warn("location discovery failed",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "error", Value: err})
	}
	for _, tab := range tabs {
		a.tabs = append(a.tabs, tab)
		a.merged = nil
	}
}

// Tabs returns the owned tab handles in discovery order.
func (a *Aggregator) Tabs() []*crontab.Tab {
	return a.tabs
}

// Errs returns the per-location errors collected so far. An empty result
// means every registered location was either read or genuinely absent.
func (a *Aggregator) Errs() []error {
	return a.errs
}

// All returns the merged view: one ownerless aggregate holding a copy of
// every job from every owned tab in insertion order, each with a non-empty
// effective user (the tab's user, else the fallback label).
//
// The view is read-only from the caller's perspective. Its jobs are detached
// copies and the aggregate has no backing engine, so it cannot be persisted
// as if it were a real tab file.
func (a *Aggregator) All() *crontab.Tab {
	if a.merged != nil {
		return a.merged
	}
	merged := crontab.NewSystemTab()
	for _, tab := range a.tabs {
		for _, job := range tab.Jobs() {
			c := job.Clone()
			if c.User == "" {
				c.User = tab.User
			}
			if c.User == "" {
				c.User = FallbackUser
			}
			merged.Append(c)
		}
	}
	a.merged = merged
	return merged
}

// FindCommand searches every owned tab, in order, for enabled jobs whose
// command contains substr. Unlike All, the returned jobs are the live
// entries, so deleting one removes it from its owning tab.
func (a *Aggregator) FindCommand(substr string) []*crontab.Job {
	var jobs []*crontab.Job
	for _, tab := range a.tabs {
		jobs = append(jobs, tab.FindCommand(substr)...)
	}
	return jobs
}

// Reset drops every collected tab, the merged-view cache and the recorded
// errors. Routine use never calls this; it exists for test isolation and for
// hosts that want to rescan.
func (a *Aggregator) Reset() {
	a.tabs = nil
	a.merged = nil
	a.errs = nil
}

// String summarizes the collection for logging.
func (a *Aggregator) String() string {
	var b strings.Builder
	for i, tab := range a.tabs {
		if i > 0 {
			b.WriteString(", ")
		}
		switch {
		case tab.User != "":
			b.WriteString("user:" + tab.User)
		case tab.Path != "":
			b.WriteString("file:" + tab.Path)
		default:
			b.WriteString("system")
		}
	}
	return b.String()
}
