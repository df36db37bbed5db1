package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
	"github.com/stretchr/testify/require"
)

// testLogger returns a logger that only reports errors, keeping test output
// quiet.
func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

// testEngine returns an engine bound to a temporary spool directory.
func testEngine(t *testing.T) *crontab.Engine {
	t.Helper()
	return &crontab.Engine{SpoolDir: t.TempDir()}
}

// writeFile creates a file with the given content and mode under dir.
func writeFile(t *testing.T, dir, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

// fixedOwner returns an OwnerFunc that reports the same owner for every path.
func fixedOwner(name string) OwnerFunc {
	return func(string) (string, error) {
		return name, nil
	}
}

// ownerByEntry returns an OwnerFunc mapping base names to owners; paths not
// in the map resolve to their own base name.
func ownerByEntry(owners map[string]string) OwnerFunc {
	return func(path string) (string, error) {
		base := filepath.Base(path)
		if owner, ok := owners[base]; ok {
			return owner, nil
		}
		return base, nil
	}
}
