package crontab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEngine returns an engine bound to a temporary spool directory that
// installs tabs by writing the spool file directly.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	return &Engine{SpoolDir: t.TempDir()}
}

func TestEngine_OpenUser_Existing(t *testing.T) {
	eng := testEngine(t)
	spoolFile := filepath.Join(eng.SpoolDir, "alice")
	require.NoError(t, os.WriteFile(spoolFile, []byte("5 4 * * * /bin/task\n"), 0600))

	tab, err := eng.OpenUser("alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", tab.User)
	assert.Equal(t, spoolFile, tab.Path)
	assert.False(t, tab.System)
	require.Len(t, tab.Jobs(), 1)
	assert.Equal(t, "/bin/task", tab.Jobs()[0].Command)
}

func TestEngine_OpenUser_Missing(t *testing.T) {
	eng := testEngine(t)

	tab, err := eng.OpenUser("nobody-here")

	// A missing personal tab is an empty writable handle, not an error.
	require.NoError(t, err)
	assert.Equal(t, "nobody-here", tab.User)
	assert.Empty(t, tab.Jobs())
}

func TestEngine_OpenFile_Missing(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.OpenFile(filepath.Join(t.TempDir(), "absent"), true)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngine_OpenFile_SystemFormat(t *testing.T) {
	eng := testEngine(t)
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("17 * * * * root cd / && run-parts /etc/cron.hourly\n"), 0644))

	tab, err := eng.OpenFile(path, true)

	require.NoError(t, err)
	assert.True(t, tab.System)
	assert.Empty(t, tab.User)
	require.Len(t, tab.Jobs(), 1)
	assert.Equal(t, "root", tab.Jobs()[0].User)
}

func TestTab_WriteToUser_SpoolInstall(t *testing.T) {
	eng := testEngine(t)
	tab, err := eng.OpenUser("pi")
	require.NoError(t, err)

	tab.NewJob("/usr/bin/play-adhan", "", "adhan fajr")

	require.NoError(t, tab.WriteToUser("pi"))

	data, err := os.ReadFile(filepath.Join(eng.SpoolDir, "pi"))
	require.NoError(t, err)
	assert.Equal(t, "* * * * * /usr/bin/play-adhan # adhan fajr\n", string(data))
}

func TestTab_WriteToPath(t *testing.T) {
	eng := testEngine(t)
	path := filepath.Join(t.TempDir(), "dropin")
	require.NoError(t, os.WriteFile(path, []byte("1 1 * * * root /bin/a\n"), 0644))

	tab, err := eng.OpenFile(path, true)
	require.NoError(t, err)
	tab.NewJob("/bin/b", "root", "")

	require.NoError(t, tab.WriteToPath(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 1 * * * root /bin/a\n* * * * * root /bin/b\n", string(data))
}

func TestTab_Write_NoBackingEngine(t *testing.T) {
	tab := NewSystemTab()
	tab.NewJob("/bin/a", "root", "")

	assert.ErrorIs(t, tab.WriteToUser("root"), ErrNoBacking)
	assert.ErrorIs(t, tab.WriteToPath("/tmp/x"), ErrNoBacking)
}
