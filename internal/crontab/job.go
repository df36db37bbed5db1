package crontab

import "strings"

// Job is one schedule+command entry belonging to exactly one Tab.
//
// The five schedule fields are kept as raw crontab field strings so a job can
// be copied or rewritten without normalizing what the administrator wrote.
// Special holds an @descriptor (e.g. "@daily") and takes precedence over the
// five fields when set.
type Job struct {
	Minute     string
	Hour       string
	DayOfMonth string
	Month      string
	DayOfWeek  string
	Special    string

	Command string
	Comment string

	// User is the run-as account for jobs from system-format tabs. It is
	// empty for per-user tabs, where the owning tab supplies the identity.
	User string

	// Enabled is false for lines whose schedule failed validation; such
	// jobs round-trip through Raw untouched.
	Enabled bool
	Raw     string

	tab *Tab
}

// Spec returns the job's schedule expression.
func (j *Job) Spec() string {
	if j.Special != "" {
		return j.Special
	}
	return strings.Join([]string{j.Minute, j.Hour, j.DayOfMonth, j.Month, j.DayOfWeek}, " ")
}

// SetSchedule replaces all five schedule fields. Empty arguments mean "*".
func (j *Job) SetSchedule(minute, hour, dayOfMonth, month, dayOfWeek string) error {
	fields := []string{minute, hour, dayOfMonth, month, dayOfWeek}
	for i, f := range fields {
		if f == "" {
			fields[i] = "*"
		}
	}
	expr := strings.Join(fields, " ")
	if err := ValidateSchedule(expr); err != nil {
		return err
	}
	j.Minute, j.Hour, j.DayOfMonth, j.Month, j.DayOfWeek = fields[0], fields[1], fields[2], fields[3], fields[4]
	j.Special = ""
	return nil
}

// CopyScheduleFrom copies every schedule field of other verbatim, including
// an @descriptor if other uses one.
func (j *Job) CopyScheduleFrom(other *Job) {
	j.Minute = other.Minute
	j.Hour = other.Hour
	j.DayOfMonth = other.DayOfMonth
	j.Month = other.Month
	j.DayOfWeek = other.DayOfWeek
	j.Special = other.Special
}

// SetComment replaces the job's inline comment.
func (j *Job) SetComment(text string) {
	j.Comment = text
}

// Delete removes the job from its owning tab. Deleting a detached copy (e.g.
// a job from the aggregated view) is a no-op.
func (j *Job) Delete() {
	if j.tab != nil {
		j.tab.Remove(j)
	}
}

// Clone returns a detached copy of the job, not attached to any tab.
func (j *Job) Clone() *Job {
	c := *j
	c.tab = nil
	return &c
}

// Render serializes the job as one crontab line. withUser controls whether
// the system-format run-as column is emitted.
func (j *Job) Render(withUser bool) string {
	if !j.Enabled && j.Raw != "" {
		return j.Raw
	}

	parts := make([]string, 0, 8)
	parts = append(parts, j.Spec())
	if withUser && j.User != "" {
		parts = append(parts, j.User)
	}
	parts = append(parts, j.Command)
	line := strings.Join(parts, " ")
	if j.Comment != "" {
		line += " # " + j.Comment
	}
	return line
}
