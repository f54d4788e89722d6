package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind", NotFound("table 5 not found"), ErrNotFound, true},
		{"different kind", NotFound("table 5 not found"), ErrSlotConflict, false},
		{"business hours is invalid timing", New(KindOutsideBusinessHours, "closed"), ErrInvalidTiming, true},
		{"closed day is invalid timing", New(KindClosedDay, "sunday"), ErrInvalidTiming, true},
		{"closed day keeps own kind", New(KindClosedDay, "sunday"), ErrClosedDay, true},
		{"invalid timing is not closed day", New(KindInvalidTiming, "past"), ErrClosedDay, false},
		{"wrapped", fmt.Errorf("create: %w", New(KindSlotConflict, "taken")), ErrSlotConflict, true},
		{"plain error", errors.New("boom"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDuplicateKey, KindOf(fmt.Errorf("wrap: %w", New(KindDuplicateKey, "dup"))))
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, "not_found", ErrNotFound.Error())
	assert.Equal(t, "table 3 not found", NotFound("table %d not found", 3).Error())
}
