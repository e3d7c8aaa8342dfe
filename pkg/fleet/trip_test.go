package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
	_ "tracknrent.xyz/fleet-rental-service/pkg/testing"
)

func startTripForTest(t *testing.T, fleetObj *Fleet) (deviceID, tripID string) {
	t.Helper()

	deviceID = uuid.NewString()
	device, err := fleetObj.Rental.StartRental(deviceID)
	require.NoError(t, err)
	require.NotNil(t, device.TripID)
	return deviceID, *device.TripID
}

func TestAppendRoutePointOrdered(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, tripID := startTripForTest(t, fleetObj)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 4; i++ {
		err := fleetObj.Trip.AppendRoutePoint(tripID, 38.0+float64(i), 35.0+float64(i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	points, err := fleetObj.Trip.GetRoute(tripID)
	require.NoError(t, err)
	require.Len(t, points, 4)
	for i, p := range points {
		assert.InDelta(t, 38.0+float64(i), p.Lat, 1e-9)
	}
}

func TestAppendRoutePointUnknownTrip(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	err := fleetObj.Trip.AppendRoutePoint("trip_"+uuid.NewString(), 38, 35, time.Now())
	assert.ErrorIs(t, err, ErrTripNotFound)

	_, err = fleetObj.Trip.GetRoute("trip_" + uuid.NewString())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestFinalizeIsOneShot(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID, tripID := startTripForTest(t, fleetObj)

	device, err := fleetObj.Device.GetDevice(deviceID)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, fleetObj.Trip.Finalize(tripID, device, 60, 12.5, now))

	trip, err := fleetObj.Trip.GetTrip(tripID)
	require.NoError(t, err)
	require.NotNil(t, trip.EndTime)
	assert.InDelta(t, 12.5, trip.TotalCost, 1e-9)
	assert.Equal(t, int64(60), trip.ParkDuration)

	// second finalize and late appends are both rejected
	assert.ErrorIs(t, fleetObj.Trip.Finalize(tripID, device, 60, 12.5, now), ErrTripFinalized)
	assert.ErrorIs(t, fleetObj.Trip.AppendRoutePoint(tripID, 38, 35, now), ErrTripFinalized)
	assert.ErrorIs(t, fleetObj.Trip.SyncSnapshot(tripID, device), ErrTripFinalized)
}

func TestSyncSnapshot(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID, tripID := startTripForTest(t, fleetObj)

	_, err := fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{
		Lat:           floatPtr(38.7),
		Lon:           floatPtr(35.5),
		Speed:         floatPtr(22),
		TotalDistance: floatPtr(3.3),
		AvgSpeed:      floatPtr(19),
		TripDuration:  intPtr(420),
	})
	require.NoError(t, err)

	device, err := fleetObj.Device.GetDevice(deviceID)
	require.NoError(t, err)
	require.NoError(t, fleetObj.Trip.SyncSnapshot(tripID, device))

	trip, err := fleetObj.Trip.GetTrip(tripID)
	require.NoError(t, err)
	require.NotNil(t, trip.Lat)
	assert.InDelta(t, 38.7, *trip.Lat, 1e-9)
	assert.InDelta(t, 3.3, trip.TotalDistance, 1e-9)
	assert.Equal(t, int64(420), trip.TripDuration)
}

func TestListTrips(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	now := time.Now().UTC()

	_, err := fleetObj.Device.UpsertDevice(deviceID, nil)
	require.NoError(t, err)

	distances := []float64{5, 20, 10}
	for i, distance := range distances {
		trip := models.Trip{
			TripID:        "trip_" + uuid.NewString(),
			DeviceID:      deviceID,
			TotalDistance: distance,
			AvgSpeed:      distance * 2,
			TripDuration:  int64(distance * 60),
			StartTime:     now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, fleetObj.Db.Conn.Create(&trip).Error)
	}

	byDistance, err := fleetObj.Trip.ListTrips(models.TripQuery{DeviceID: deviceID, SortBy: "distance"})
	require.NoError(t, err)
	require.Len(t, byDistance, 3)
	assert.InDelta(t, 20.0, byDistance[0].TotalDistance, 1e-9)
	assert.InDelta(t, 5.0, byDistance[2].TotalDistance, 1e-9)

	newestFirst, err := fleetObj.Trip.ListTrips(models.TripQuery{DeviceID: deviceID})
	require.NoError(t, err)
	require.Len(t, newestFirst, 3)
	assert.InDelta(t, 10.0, newestFirst[0].TotalDistance, 1e-9)

	limited, err := fleetObj.Trip.ListTrips(models.TripQuery{DeviceID: deviceID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	otherDevice, err := fleetObj.Trip.ListTrips(models.TripQuery{DeviceID: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, otherDevice)
}

func TestDeleteDeviceTripsCascadesRoute(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID, tripID := startTripForTest(t, fleetObj)

	require.NoError(t, fleetObj.Trip.AppendRoutePoint(tripID, 38, 35, time.Now()))

	deleted, err := fleetObj.Trip.DeleteDeviceTrips(deviceID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, fleetObj.Db.Conn.Model(&models.RoutePoint{}).Where("trip_id = ?", tripID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
