package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus_FollowsForwardSequence(t *testing.T) {
	tests := []struct {
		current OrderStatus
		next    OrderStatus
		ok      bool
	}{
		{StatusReceived, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusDelivered, true},
		{StatusDelivered, "", false},
		{StatusCancelled, "", false},
		{OrderStatus("bogus"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			next, ok := NextStatus(tt.current)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestOrderStatus_Classification(t *testing.T) {
	for _, s := range []OrderStatus{StatusReceived, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("recebido").IsValid())
	assert.False(t, OrderStatus("").IsValid())

	assert.True(t, StatusReceived.IsActive())
	assert.True(t, StatusPreparing.IsActive())
	assert.False(t, StatusReady.IsActive())

	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestOrder_ItemTotals(t *testing.T) {
	order := Order{Items: []OrderItem{
		{ProductName: "A", Quantity: 2, UnitPrice: 10},
		{ProductName: "B", Quantity: 1, UnitPrice: 5},
	}}

	assert.Equal(t, 3, order.ItemCount())
	assert.InDelta(t, 25.0, order.ItemsTotal(), 1e-9)
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryHotDog.IsValid())
	assert.True(t, CategoryBeverage.IsValid())
	assert.False(t, Category("Hot Dogs").IsValid())
}
