package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostZeroIsZero(t *testing.T) {
	rates := DefaultPricingRates()

	cost, err := rates.Cost(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}

func TestCostDistanceOnly(t *testing.T) {
	rates := DefaultPricingRates()

	cost, err := rates.Cost(10, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 10*rates.PerKm, cost, 1e-9)
}

func TestCostDriveOnly(t *testing.T) {
	rates := DefaultPricingRates()

	cost, err := rates.Cost(0, 120, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2*rates.DrivePerMinute, cost, 1e-9)
}

func TestCostParkOnly(t *testing.T) {
	rates := DefaultPricingRates()

	cost, err := rates.Cost(0, 0, 180)
	require.NoError(t, err)
	assert.InDelta(t, 3*rates.ParkPerMinute, cost, 1e-9)
}

func TestCostLineItemsSum(t *testing.T) {
	rates := PricingRates{PerKm: 0.5, DrivePerMinute: 3, ParkPerMinute: 0.25}

	items, err := rates.LineItems(8, 600, 300)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, items.KmCost, 1e-9)
	assert.InDelta(t, 30.0, items.DriveCost, 1e-9)
	assert.InDelta(t, 1.25, items.ParkCost, 1e-9)

	cost, err := rates.Cost(8, 600, 300)
	require.NoError(t, err)
	assert.InDelta(t, items.KmCost+items.DriveCost+items.ParkCost, cost, 1e-9)
}

func TestCostMonotonic(t *testing.T) {
	rates := DefaultPricingRates()

	base, err := rates.Cost(5, 300, 120)
	require.NoError(t, err)

	moreDistance, err := rates.Cost(6, 300, 120)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, moreDistance, base)

	moreDrive, err := rates.Cost(5, 360, 120)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, moreDrive, base)

	morePark, err := rates.Cost(5, 300, 180)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, morePark, base)
}

func TestCostNegativeInputsRejected(t *testing.T) {
	rates := DefaultPricingRates()

	var invalidInput *InvalidInputError

	_, err := rates.Cost(-1, 0, 0)
	assert.ErrorAs(t, err, &invalidInput)

	_, err = rates.Cost(0, -1, 0)
	assert.ErrorAs(t, err, &invalidInput)

	_, err = rates.Cost(0, 0, -1)
	assert.ErrorAs(t, err, &invalidInput)
}
