package discovery

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSpoolSource_EmptyDirectory_FallsBackToCurrentUser(t *testing.T) {
	eng := testEngine(t)
	src := NewUserSpoolSource(eng, testLogger(t))

	tabs, err := src.Discover(t.TempDir(), nil)

	require.NoError(t, err)
	// Never zero, never an error: the invoking user's personal tab.
	require.Len(t, tabs, 1)
	current, cerr := user.Current()
	if cerr == nil {
		assert.Equal(t, current.Username, tabs[0].User)
	}
}

func TestUserSpoolSource_AbsentDirectory_FallsBackToCurrentUser(t *testing.T) {
	eng := testEngine(t)
	src := NewUserSpoolSource(eng, testLogger(t))

	tabs, err := src.Discover(filepath.Join(t.TempDir(), "no-such-spool"), nil)

	require.NoError(t, err)
	require.Len(t, tabs, 1)
}

func TestUserSpoolSource_OwnedEntry(t *testing.T) {
	eng := testEngine(t)
	writeFile(t, eng.SpoolDir, "alice", "5 4 * * * /bin/task\n", 0600)

	src := NewUserSpoolSource(eng, testLogger(t))
	src.Owner = fixedOwner("alice")

	tabs, err := src.Discover(eng.SpoolDir, nil)

	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "alice", tabs[0].User)
	require.Len(t, tabs[0].Jobs(), 1)
	assert.Equal(t, "/bin/task", tabs[0].Jobs()[0].Command)
}

func TestUserSpoolSource_OwnershipMismatch_Abandoned(t *testing.T) {
	eng := testEngine(t)
	path := writeFile(t, eng.SpoolDir, "alice", "5 4 * * * /bin/task\n", 0600)

	src := NewUserSpoolSource(eng, testLogger(t))
	// The file under "alice" is owned by bob: abandoned.
	src.Owner = fixedOwner("bob")

	tabs, err := src.Discover(eng.SpoolDir, nil)

	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Empty(t, tabs[0].User, "abandoned tabs carry no user identity")
	assert.Equal(t, path, tabs[0].Path)
	require.Len(t, tabs[0].Jobs(), 1)
}

func TestUserSpoolSource_UnresolvableOwner_Abandoned(t *testing.T) {
	eng := testEngine(t)
	writeFile(t, eng.SpoolDir, "ghost", "1 2 * * * /bin/old\n", 0600)

	src := NewUserSpoolSource(eng, testLogger(t))
	src.Owner = func(string) (string, error) {
		return "", errors.New("unknown uid 4242")
	}

	tabs, err := src.Discover(eng.SpoolDir, nil)

	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Empty(t, tabs[0].User)
}

func TestUserSpoolSource_MixedEntries(t *testing.T) {
	eng := testEngine(t)
	writeFile(t, eng.SpoolDir, "alice", "5 4 * * * /bin/a\n", 0600)
	writeFile(t, eng.SpoolDir, "bob", "6 4 * * * /bin/b\n", 0600)
	require.NoError(t, os.Mkdir(filepath.Join(eng.SpoolDir, "subdir"), 0755))

	src := NewUserSpoolSource(eng, testLogger(t))
	src.Owner = ownerByEntry(map[string]string{"bob": "someone-else"})

	tabs, err := src.Discover(eng.SpoolDir, nil)

	require.NoError(t, err)
	require.Len(t, tabs, 2)

	users := map[string]bool{}
	for _, tab := range tabs {
		users[tab.User] = true
	}
	assert.True(t, users["alice"], "alice's tab is owned")
	assert.True(t, users[""], "bob's tab is abandoned")
}
