// Package crontab reads, edits and writes crontab files. A Tab is the parsed
// form of one crontab file together with its owning context (a user name, a
// backing path, or neither for synthetic system tabs). Schedule expressions
// are validated with the robfig/cron parser; lines that do not validate are
// preserved verbatim so a rewrite never loses content.
package crontab

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts the standard 5-field crontab format plus @descriptors.
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule checks whether expression is a valid 5-field cron
// expression or @descriptor.
func ValidateSchedule(expression string) error {
	if _, err := scheduleParser.Parse(expression); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// NextRun returns the next time after the given one at which the expression
// fires.
func NextRun(expression string, after time.Time) (time.Time, error) {
	schedule, err := scheduleParser.Parse(expression)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule.Next(after), nil
}
