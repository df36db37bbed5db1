package crontab

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wasilibs/go-re2"
)

// Line classification patterns. Anything that is neither an environment
// assignment, a comment, nor a parseable job line is preserved verbatim.
var (
	envLineRe     = re2.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*=`)
	commentLineRe = re2.MustCompile(`^\s*#`)
	specialLineRe = re2.MustCompile(`^@[A-Za-z]+`)
)

// tabLine is one line of a crontab file: either a job or preserved text
// (blank lines, comments, environment assignments, unrecognized content).
type tabLine struct {
	text string
	job  *Job
}

// Tab is the in-memory representation of one crontab file's job list plus its
// owning context.
//
// A Tab is not safe for concurrent mutation; callers sharing one across
// goroutines must synchronize externally.
type Tab struct {
	// User is the owning account name, empty for ownerless (system) tabs.
	User string

	// Path is the backing file, empty for user tabs resolved through the
	// engine and for synthetic tabs that were never read from disk.
	Path string

	// System marks system-format tabs whose job lines carry a run-as
	// user column between the schedule and the command.
	System bool

	lines []tabLine
	eng   *Engine
}

// NewSystemTab returns an empty ownerless tab. Such a tab has no backing
// engine and cannot be written to a user.
func NewSystemTab() *Tab {
	return &Tab{System: true}
}

// parse fills the tab from raw file content. Parsing is tolerant: lines that
// do not form a valid job are preserved as text so Render round-trips.
func (t *Tab) parse(content string) {
	rows := strings.Split(content, "\n")
	if len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	for _, row := range rows {
		t.lines = append(t.lines, t.parseLine(row))
	}
}

func (t *Tab) parseLine(row string) tabLine {
	trim := strings.TrimSpace(row)
	if trim == "" || commentLineRe.MatchString(trim) || envLineRe.MatchString(trim) {
		return tabLine{text: row}
	}
	job := parseJob(trim, t.System)
	if job == nil {
		return tabLine{text: row}
	}
	job.tab = t
	return tabLine{job: job}
}

// parseJob tokenizes one candidate job line. Returns nil when the line does
// not have enough fields to be a job at all.
func parseJob(trim string, system bool) *Job {
	var job Job
	var rest string

	if specialLineRe.MatchString(trim) {
		n := 1
		if system {
			n = 2
		}
		fields, r, ok := fieldsN(trim, n)
		if !ok {
			return nil
		}
		job.Special = fields[0]
		if system {
			job.User = fields[1]
		}
		rest = r
	} else {
		n := 5
		if system {
			n = 6
		}
		fields, r, ok := fieldsN(trim, n)
		if !ok {
			return nil
		}
		job.Minute, job.Hour, job.DayOfMonth, job.Month, job.DayOfWeek = fields[0], fields[1], fields[2], fields[3], fields[4]
		if system {
			job.User = fields[5]
		}
		rest = r
	}

	job.Command, job.Comment = splitInlineComment(rest)
	job.Enabled = ValidateSchedule(job.Spec()) == nil
	if !job.Enabled {
		job.Raw = trim
	}
	return &job
}

// fieldsN splits off the first n whitespace-separated fields and returns them
// together with the remainder of the line.
func fieldsN(s string, n int) ([]string, string, bool) {
	fields := make([]string, 0, n)
	rest := strings.TrimSpace(s)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(rest, unicode.IsSpace)
		if idx < 0 {
			return nil, "", false
		}
		fields = append(fields, rest[:idx])
		rest = strings.TrimSpace(rest[idx:])
	}
	if rest == "" {
		return nil, "", false
	}
	return fields, rest, true
}

// splitInlineComment splits "command # comment" on the last comment marker.
func splitInlineComment(rest string) (command, comment string) {
	if idx := strings.LastIndex(rest, " # "); idx >= 0 {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+3:])
	}
	return rest, ""
}

// Jobs returns the tab's jobs in file order.
func (t *Tab) Jobs() []*Job {
	var jobs []*Job
	for _, ln := range t.lines {
		if ln.job != nil {
			jobs = append(jobs, ln.job)
		}
	}
	return jobs
}

// NewJob appends a new enabled job with the default "* * * * *" schedule.
func (t *Tab) NewJob(command, user, comment string) *Job {
	job := &Job{
		Minute:     "*",
		Hour:       "*",
		DayOfMonth: "*",
		Month:      "*",
		DayOfWeek:  "*",
		Command:    command,
		Comment:    comment,
		User:       user,
		Enabled:    true,
		tab:        t,
	}
	t.lines = append(t.lines, tabLine{job: job})
	return job
}

// Append adopts an existing job into the tab.
func (t *Tab) Append(job *Job) {
	job.tab = t
	t.lines = append(t.lines, tabLine{job: job})
}

// Remove deletes the job from the tab. Unknown jobs are ignored.
func (t *Tab) Remove(job *Job) {
	for i, ln := range t.lines {
		if ln.job == job {
			t.lines = append(t.lines[:i], t.lines[i+1:]...)
			job.tab = nil
			return
		}
	}
}

// RemoveByComment deletes every job whose comment equals tag and returns how
// many were removed.
func (t *Tab) RemoveByComment(tag string) int {
	removed := 0
	kept := t.lines[:0]
	for _, ln := range t.lines {
		if ln.job != nil && ln.job.Comment == tag {
			ln.job.tab = nil
			removed++
			continue
		}
		kept = append(kept, ln)
	}
	t.lines = kept
	return removed
}

// FindCommand returns every enabled job whose command contains substr.
func (t *Tab) FindCommand(substr string) []*Job {
	var jobs []*Job
	for _, ln := range t.lines {
		if ln.job != nil && ln.job.Enabled && strings.Contains(ln.job.Command, substr) {
			jobs = append(jobs, ln.job)
		}
	}
	return jobs
}

// Render serializes the tab back to crontab text.
func (t *Tab) Render() string {
	var b strings.Builder
	for _, ln := range t.lines {
		if ln.job != nil {
			b.WriteString(ln.job.Render(t.System))
		} else {
			b.WriteString(ln.text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteToUser installs the tab as the crontab of the named user.
func (t *Tab) WriteToUser(name string) error {
	if t.eng == nil {
		return fmt.Errorf("write crontab for %s: %w", name, ErrNoBacking)
	}
	return t.eng.writeUser(t, name)
}

// WriteToPath writes the rendered tab to an explicit file path.
func (t *Tab) WriteToPath(path string) error {
	if t.eng == nil {
		return fmt.Errorf("write crontab to %s: %w", path, ErrNoBacking)
	}
	return t.eng.writePath(t, path)
}
