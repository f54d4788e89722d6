package services

import (
	"time"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/config"
)

// Rules are the booking constraints applied to every reservation write.
type Rules struct {
	OpenHour      int
	CloseHour     int
	ClosedDay     time.Weekday
	ConfirmAward  int
	CompleteAward int
	OverlapWindow time.Duration
	Location      *time.Location
}

func DefaultRules() Rules {
	return Rules{
		OpenHour:      8,
		CloseHour:     22,
		ClosedDay:     time.Sunday,
		ConfirmAward:  100,
		CompleteAward: 10,
		OverlapWindow: time.Hour,
		Location:      time.Local,
	}
}

func RulesFromConfig(b config.Business) (Rules, error) {
	day, err := b.Weekday()
	if err != nil {
		return Rules{}, err
	}
	loc, err := b.Location()
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		OpenHour:      b.OpenHour,
		CloseHour:     b.CloseHour,
		ClosedDay:     day,
		ConfirmAward:  b.ConfirmAward,
		CompleteAward: b.CompleteAward,
		OverlapWindow: b.OverlapWindow,
		Location:      loc,
	}, nil
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// CheckTiming rejects date-times that are not strictly after now, fall
// outside opening hours or land on the closed day. Both ends of the opening
// hours are inclusive at minute precision.
func (r Rules) CheckTiming(at, now time.Time) error {
	if !at.After(now) {
		return apperrors.New(apperrors.KindInvalidTiming, "reservation date must be in the future")
	}
	local := at.In(r.location())
	hour := float64(local.Hour()) + float64(local.Minute())/60
	if hour < float64(r.OpenHour) || hour > float64(r.CloseHour) {
		return apperrors.New(apperrors.KindOutsideBusinessHours,
			"reservations are only accepted between %02d:00 and %02d:00", r.OpenHour, r.CloseHour)
	}
	if local.Weekday() == r.ClosedDay {
		return apperrors.New(apperrors.KindClosedDay, "the restaurant is closed on %s", r.ClosedDay)
	}
	return nil
}

// normalize is the stored form of a date-time.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
