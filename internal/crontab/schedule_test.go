package crontab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "every minute", expression: "* * * * *", wantErr: false},
		{name: "fixed time", expression: "30 5 * * *", wantErr: false},
		{name: "ranges and steps", expression: "*/15 9-17 * * 1-5", wantErr: false},
		{name: "descriptor", expression: "@daily", wantErr: false},
		{name: "minute out of range", expression: "99 * * * *", wantErr: true},
		{name: "too few fields", expression: "* * *", wantErr: true},
		{name: "empty", expression: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextRun(t *testing.T) {
	after := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)

	next, err := NextRun("30 5 * * *", after)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 5, 30, 0, 0, time.UTC), next)
}

func TestNextRun_Invalid(t *testing.T) {
	_, err := NextRun("not a schedule", time.Now())
	assert.Error(t, err)
}
