package fleet

import "fmt"

// PricingRates is the swappable pricing policy. Operators retune rates via
// env without touching the formula.
type PricingRates struct {
	PerKm          float64
	DrivePerMinute float64
	ParkPerMinute  float64
}

func DefaultPricingRates() PricingRates {
	return PricingRates{
		PerKm:          1,
		DrivePerMinute: 2,
		ParkPerMinute:  1,
	}
}

type LineItems struct {
	KmCost    float64 `json:"kmCost"`
	DriveCost float64 `json:"driveCost"`
	ParkCost  float64 `json:"parkCost"`
}

func (r PricingRates) LineItems(distanceKm float64, driveSeconds, parkSeconds int64) (LineItems, error) {
	if distanceKm < 0 || driveSeconds < 0 || parkSeconds < 0 {
		// negative inputs indicate an upstream bug, never clamp silently
		return LineItems{}, &InvalidInputError{
			Reason: fmt.Sprintf(
				"pricing inputs must be non-negative, got distanceKm=%v driveSeconds=%v parkSeconds=%v",
				distanceKm, driveSeconds, parkSeconds),
		}
	}
	return LineItems{
		KmCost:    distanceKm * r.PerKm,
		DriveCost: float64(driveSeconds) / 60 * r.DrivePerMinute,
		ParkCost:  float64(parkSeconds) / 60 * r.ParkPerMinute,
	}, nil
}

func (r PricingRates) Cost(distanceKm float64, driveSeconds, parkSeconds int64) (float64, error) {
	items, err := r.LineItems(distanceKm, driveSeconds, parkSeconds)
	if err != nil {
		return 0, err
	}
	return items.KmCost + items.DriveCost + items.ParkCost, nil
}
