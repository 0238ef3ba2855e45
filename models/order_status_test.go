package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"NEW", "PREPARING", "READY", "SERVED", "CANCELLED"} {
		st, ok := ParseOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, OrderStatus(s), st)
	}

	for _, s := range []string{"", "new", "DONE", " NEW"} {
		_, ok := ParseOrderStatus(s)
		assert.False(t, ok, s)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, OrderStatusNew.IsTerminal())
	assert.False(t, OrderStatusPreparing.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
	assert.True(t, OrderStatusServed.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestParseOrderType(t *testing.T) {
	ot, ok := ParseOrderType("DINE_IN")
	assert.True(t, ok)
	assert.Equal(t, OrderTypeDineIn, ot)

	ot, ok = ParseOrderType("TAKEAWAY")
	assert.True(t, ok)
	assert.Equal(t, OrderTypeTakeaway, ot)

	_, ok = ParseOrderType("DELIVERY")
	assert.False(t, ok)
}

func TestOrderShortCode(t *testing.T) {
	o := Order{ID: "019a0c3e-7b40-7d2a-9f1c-70867728950e"}
	assert.Equal(t, "7728950e", o.ShortCode())
	assert.Equal(t, "abc", (&Order{ID: "abc"}).ShortCode())
}
