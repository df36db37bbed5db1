package crontab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTab(t *testing.T, content string, system bool) *Tab {
	t.Helper()
	tab := &Tab{System: system}
	tab.parse(content)
	return tab
}

func TestTab_Parse_UserFormat(t *testing.T) {
	content := "# m h dom mon dow command\n" +
		"SHELL=/bin/sh\n" +
		"\n" +
		"30 5 * * * /usr/bin/backup.sh # nightly backup\n" +
		"@daily /usr/bin/rotate-logs\n"

	tab := parseTab(t, content, false)

	jobs := tab.Jobs()
	require.Len(t, jobs, 2)

	assert.Equal(t, "30", jobs[0].Minute)
	assert.Equal(t, "5", jobs[0].Hour)
	assert.Equal(t, "/usr/bin/backup.sh", jobs[0].Command)
	assert.Equal(t, "nightly backup", jobs[0].Comment)
	assert.True(t, jobs[0].Enabled)

	assert.Equal(t, "@daily", jobs[1].Special)
	assert.Equal(t, "/usr/bin/rotate-logs", jobs[1].Command)
}

func TestTab_Parse_SystemFormat(t *testing.T) {
	content := "25 6 * * * root test -x /usr/sbin/anacron || run-parts /etc/cron.daily\n"

	tab := parseTab(t, content, true)

	jobs := tab.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "root", jobs[0].User)
	assert.Equal(t, "test -x /usr/sbin/anacron || run-parts /etc/cron.daily", jobs[0].Command)
	assert.Equal(t, "25 6 * * *", jobs[0].Spec())
}

func TestTab_Parse_InvalidScheduleKeptAsDisabled(t *testing.T) {
	content := "99 99 * * * /usr/bin/broken.sh\n"

	tab := parseTab(t, content, false)

	jobs := tab.Jobs()
	require.Len(t, jobs, 1)
	assert.False(t, jobs[0].Enabled)
	assert.Equal(t, "99 99 * * * /usr/bin/broken.sh", jobs[0].Raw)

	// Disabled jobs round-trip untouched and are excluded from search.
	assert.Contains(t, tab.Render(), "99 99 * * * /usr/bin/broken.sh")
	assert.Empty(t, tab.FindCommand("broken"))
}

func TestTab_Parse_RoundTrip(t *testing.T) {
	content := "# comment line\n" +
		"MAILTO=ops@example.com\n" +
		"\n" +
		"15 3 * * * /usr/local/bin/sync.sh # sync\n"

	tab := parseTab(t, content, false)

	assert.Equal(t, content, tab.Render())
}

func TestTab_NewJob_DefaultSchedule(t *testing.T) {
	tab := NewSystemTab()

	job := tab.NewJob("/etc/cron.daily/logrotate", "root", "Anacron daily")

	assert.Equal(t, "* * * * *", job.Spec())
	assert.True(t, job.Enabled)
	require.Len(t, tab.Jobs(), 1)
	assert.Equal(t, "* * * * * root /etc/cron.daily/logrotate # Anacron daily\n", tab.Render())
}

func TestJob_SetSchedule(t *testing.T) {
	tab := NewSystemTab()
	job := tab.NewJob("/bin/true", "", "")

	require.NoError(t, job.SetSchedule("30", "4", "", "", ""))
	assert.Equal(t, "30 4 * * *", job.Spec())

	err := job.SetSchedule("99", "", "", "", "")
	assert.Error(t, err)
	// Failed updates must not clobber the previous schedule.
	assert.Equal(t, "30 4 * * *", job.Spec())
}

func TestJob_CopyScheduleFrom(t *testing.T) {
	tab := NewSystemTab()
	template := tab.NewJob("run-parts /etc/cron.daily", "root", "")
	require.NoError(t, template.SetSchedule("25", "6", "*", "*", "*"))

	job := tab.NewJob("/etc/cron.daily/apt", "root", "")
	job.CopyScheduleFrom(template)

	assert.Equal(t, "25 6 * * *", job.Spec())
}

func TestJob_Delete(t *testing.T) {
	tab := parseTab(t, "1 2 * * * /bin/one\n3 4 * * * /bin/two\n", false)
	jobs := tab.Jobs()
	require.Len(t, jobs, 2)

	jobs[0].Delete()

	remaining := tab.Jobs()
	require.Len(t, remaining, 1)
	assert.Equal(t, "/bin/two", remaining[0].Command)

	// Deleting twice is a no-op.
	jobs[0].Delete()
	assert.Len(t, tab.Jobs(), 1)
}

func TestTab_RemoveByComment(t *testing.T) {
	content := "0 5 * * * /bin/a # adhan\n" +
		"0 6 * * * /bin/b # adhan\n" +
		"0 7 * * * /bin/c # keep\n"
	tab := parseTab(t, content, false)

	removed := tab.RemoveByComment("adhan")

	assert.Equal(t, 2, removed)
	jobs := tab.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "/bin/c", jobs[0].Command)
}

func TestTab_FindCommand(t *testing.T) {
	content := "25 6 * * * root test -x /usr/sbin/anacron || run-parts /etc/cron.daily\n" +
		"47 6 * * 7 root run-parts /etc/cron.weekly\n"
	tab := parseTab(t, content, true)

	matches := tab.FindCommand("/etc/cron.daily")

	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Command, "cron.daily")
}

func TestJob_Clone_Detached(t *testing.T) {
	tab := parseTab(t, "5 0 * * * /bin/x\n", false)
	job := tab.Jobs()[0]

	clone := job.Clone()
	clone.User = "alice"
	clone.Delete() // detached, must not touch the tab

	assert.Len(t, tab.Jobs(), 1)
	assert.Empty(t, job.User)
}
