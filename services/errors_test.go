package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-ordering/models"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		message  string
	}{
		{newValidationError("items", "must not be empty"), ErrValidation, "items: must not be empty"},
		{&NotFoundError{Resource: "order", ID: "abc"}, ErrNotFound, "order abc not found"},
		{&NotFoundError{Resource: "restaurant"}, ErrNotFound, "restaurant not found"},
		{&ItemUnavailableError{ItemID: 7}, ErrItemUnavailable, "item 7 is not available"},
		{&ModifierOptionNotFoundError{ItemID: 7, OptionID: 9}, ErrModifierOptionNotFound, "modifier option 9 not found for item 7"},
		{&InvalidStatusError{Value: "DONE"}, ErrInvalidStatus, `invalid status "DONE"`},
		{&TransitionError{From: models.OrderStatusServed, To: models.OrderStatusNew}, ErrInvalidTransition, "cannot move order from SERVED to NEW"},
		{&ConflictError{Message: "item 3 is referenced by orders"}, ErrConflict, "item 3 is referenced by orders"},
	}

	for _, tc := range cases {
		wrapped := fmt.Errorf("create order: %w", tc.err)
		assert.True(t, errors.Is(wrapped, tc.sentinel), tc.message)
		assert.Equal(t, tc.message, tc.err.Error())
	}

	assert.False(t, errors.Is(&ItemUnavailableError{ItemID: 1}, ErrNotFound))
}
