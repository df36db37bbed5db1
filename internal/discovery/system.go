package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
)

// SystemTabSource discovers system-owned crontabs: either a single file
// (/etc/crontab) or a directory of drop-in files (/etc/cron.d).
type SystemTabSource struct {
	eng *crontab.Engine
	log *logger.Logger
}

// NewSystemTabSource returns a system tab source.
func NewSystemTabSource(eng *crontab.Engine, log *logger.Logger) *SystemTabSource {
	return &SystemTabSource{eng: eng, log: log}
}

// Discover yields one ownerless tab per non-dot-prefixed file when path is a
// directory, exactly one tab when path is a file, and nothing when the path
// does not exist. Directory entries come back in lexical order (os.ReadDir
// sorts), keeping the aggregate deterministic.
func (s *SystemTabSource) Discover(path string, _ *Aggregator) ([]*crontab.Tab, error) {
	fi, err := os.Stat(path)
	if err != nil {
		// Absent location, silently empty.
		return nil, nil
	}

	if !fi.IsDir() {
		tab, err := s.eng.OpenFile(path, true)
		if err != nil {
			return nil, err
		}
		return []*crontab.Tab{tab}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		// Recorded against this location only; the pass continues.
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	var tabs []*crontab.Tab
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		tab, err := s.eng.OpenFile(full, true)
		if err != nil {
			s.log.Warn("skipping unreadable drop-in",
				logger.Field{Key: "path", Value: full},
				logger.Field{Key: "error", Value: err})
			continue
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}
