package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 8, cfg.Business.OpenHour)
	assert.Equal(t, 22, cfg.Business.CloseHour)
	assert.Equal(t, 100, cfg.Business.ConfirmAward)
	assert.Equal(t, 10, cfg.Business.CompleteAward)
	assert.Equal(t, time.Hour, cfg.Business.OverlapWindow)

	day, err := cfg.Business.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("CLOSED_WEEKDAY", "Monday")
	t.Setenv("CONFIRM_AWARD", "50")
	t.Setenv("OVERLAP_WINDOW", "90m")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 50, cfg.Business.ConfirmAward)
	assert.Equal(t, 90*time.Minute, cfg.Business.OverlapWindow)

	day, err := cfg.Business.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	loc, err := cfg.Business.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"inverted hours", map[string]string{"OPEN_HOUR": "22", "CLOSE_HOUR": "8"}},
		{"bad weekday", map[string]string{"CLOSED_WEEKDAY": "caturday"}},
		{"negative award", map[string]string{"COMPLETE_AWARD": "-1"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
