package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/config"
)

func TestRules_CheckTiming(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name string
		at   time.Time
		want error
	}{
		{"opening time", at(1, 8, 0), nil},
		{"closing time", at(1, 22, 0), nil},
		{"evening", at(1, 19, 30), nil},
		{"one minute before opening", at(1, 7, 59), apperrors.ErrOutsideBusinessHours},
		{"one minute after closing", at(1, 22, 1), apperrors.ErrOutsideBusinessHours},
		{"sunday", at(6, 12, 0), apperrors.ErrClosedDay},
		{"in the past", at(-1, 12, 0), apperrors.ErrInvalidTiming},
		{"exactly now", testNow, apperrors.ErrInvalidTiming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.CheckTiming(tt.at, testNow)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidTiming), "every timing failure is an InvalidTiming")
		})
	}
}

func TestRules_LocalTimeZone(t *testing.T) {
	rules := testRules()
	rules.Location = time.FixedZone("UTC-5", -5*3600)

	// 02:00 UTC on Tuesday is 21:00 Monday local.
	assert.NoError(t, rules.CheckTiming(time.Date(2030, 1, 8, 2, 0, 0, 0, time.UTC), testNow))
	// 12:30 UTC on Monday is 07:30 local.
	assert.ErrorIs(t, rules.CheckTiming(time.Date(2030, 1, 7, 12, 30, 0, 0, time.UTC), testNow), apperrors.ErrOutsideBusinessHours)
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.Business{
		OpenHour:      9,
		CloseHour:     23,
		ClosedWeekday: "Monday",
		ConfirmAward:  50,
		CompleteAward: 5,
		OverlapWindow: 90 * time.Minute,
		Timezone:      "UTC",
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Monday, rules.ClosedDay)
	assert.Equal(t, 9, rules.OpenHour)
	assert.Equal(t, 90*time.Minute, rules.OverlapWindow)
	assert.Equal(t, time.UTC, rules.Location)

	_, err = RulesFromConfig(config.Business{ClosedWeekday: "someday", Timezone: "UTC"})
	assert.Error(t, err)
}
