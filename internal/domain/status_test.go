package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusActive.CanTransitionTo(OrderStatusAssigned))
	assert.True(t, OrderStatusActive.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusAssigned.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusAssigned.CanTransitionTo(OrderStatusCancelled))

	assert.False(t, OrderStatusActive.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusAssigned))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusActive))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCancelled))
}

func TestDriverStatusProgression(t *testing.T) {
	assert.True(t, DriverStatusAssigned.CanAdvanceTo(DriverStatusArrivedVendor))
	// Forward skips are allowed.
	assert.True(t, DriverStatusArrivedVendor.CanAdvanceTo(DriverStatusCompleted))
	// Same status is legal (idempotent re-submission).
	assert.True(t, DriverStatusEnRouteClient.CanAdvanceTo(DriverStatusEnRouteClient))

	assert.False(t, DriverStatusEnRouteClient.CanAdvanceTo(DriverStatusAssigned))
	assert.False(t, DriverStatusCompleted.CanAdvanceTo(DriverStatusArrivedClient))
	assert.False(t, DriverStatusAssigned.CanAdvanceTo("UNKNOWN"))
}

func TestEntityTypeOrderResolution(t *testing.T) {
	variant, ok := EntityCateringRequest.OrderVariantFor()
	assert.True(t, ok)
	assert.Equal(t, VariantCatering, variant)

	variant, ok = EntityOnDemand.OrderVariantFor()
	assert.True(t, ok)
	assert.Equal(t, VariantOnDemand, variant)

	_, ok = EntityUser.OrderVariantFor()
	assert.False(t, ok)
	_, ok = EntityOther.OrderVariantFor()
	assert.False(t, ok)
}

func TestDispatchOrderRefRoundTrip(t *testing.T) {
	var d Dispatch
	ref := OrderRef{Variant: VariantOnDemand, ID: 42}
	d.SetOrderRef(ref)

	assert.Nil(t, d.CateringRequestID)
	assert.NotNil(t, d.OnDemandID)
	assert.Equal(t, ref, d.OrderRef())

	d.SetOrderRef(OrderRef{Variant: VariantCatering, ID: 7})
	assert.Nil(t, d.OnDemandID)
	assert.Equal(t, OrderRef{Variant: VariantCatering, ID: 7}, d.OrderRef())
}
