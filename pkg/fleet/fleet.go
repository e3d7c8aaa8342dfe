package fleet

import (
	"time"

	"tracknrent.xyz/fleet-rental-service/pkg/db"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
)

type IDevice interface {
	IngestTelemetry(deviceID string, patch *models.DevicePatch) (*models.Device, error)
	UpsertDevice(deviceID string, patch *models.DevicePatch) (*models.Device, error)
	GetDevice(deviceID string) (*models.Device, error)
	ListDevices() ([]models.Device, error)
	DeleteDevice(deviceID string) error
	GetControlDefaults() (*models.ControlState, error)
	UpdateControlDefaults(patch *models.ControlPatch) (*models.ControlState, error)
}

type IRental interface {
	StartRental(deviceID string) (*models.Device, error)
	EndRental(deviceID string) (*models.Trip, error)
	SetParkMode(deviceID string, parked bool) (*models.Device, error)
	ControlDevice(deviceID string, patch *models.ControlPatch) (*models.Device, error)
	RecordMotion(deviceID string) (*models.Device, error)
	ResetTripData(deviceID string) (int64, error)
}

type ITrip interface {
	AppendRoutePoint(tripID string, lat, lon float64, timestamp time.Time) error
	SyncSnapshot(tripID string, device *models.Device) error
	Finalize(tripID string, snapshot *models.Device, parkDuration int64, totalCost float64, endTime time.Time) error
	GetTrip(tripID string) (*models.Trip, error)
	GetRoute(tripID string) ([]models.RoutePoint, error)
	ListTrips(q models.TripQuery) ([]models.Trip, error)
	DeleteDeviceTrips(deviceID string) (int64, error)
}

type Fleet struct {
	Db    db.DB
	Rates PricingRates

	// Clock is swappable for deterministic park/drive accounting in tests.
	Clock func() time.Time

	Device IDevice
	Rental IRental
	Trip   ITrip
}

type ServiceOpts struct {
	Device IDevice
	Rental IRental
	Trip   ITrip
}

func (f *Fleet) WithServices(opts ServiceOpts) *Fleet {
	if opts.Device != nil {
		f.Device = opts.Device
	}
	if opts.Rental != nil {
		f.Rental = opts.Rental
	}
	if opts.Trip != nil {
		f.Trip = opts.Trip
	}
	return f
}

func (f *Fleet) now() time.Time {
	if f.Clock != nil {
		return f.Clock()
	}
	return time.Now().UTC()
}
