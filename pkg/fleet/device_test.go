package fleet

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
	_ "tracknrent.xyz/fleet-rental-service/pkg/testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestUpsertDeviceDefaults(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	device, err := fleetObj.Device.UpsertDevice(deviceID, nil)
	require.NoError(t, err)

	assert.True(t, device.GpsSend)
	assert.True(t, device.StatsSend)
	assert.False(t, device.RentalActive)
	assert.False(t, device.ParkMode)
	assert.Nil(t, device.Lat)
	assert.Nil(t, device.TripID)
	assert.False(t, device.CreatedAt.IsZero())
}

func TestUpsertDeviceMergeNeverReverts(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	_, err := fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{
		Lat:   floatPtr(38.69913),
		Lon:   floatPtr(35.55313),
		Speed: floatPtr(12.5),
	})
	require.NoError(t, err)

	// a later patch that omits the fix must not revert it to unknown
	device, err := fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{
		TotalDistance: floatPtr(4.2),
		TripDuration:  intPtr(300),
	})
	require.NoError(t, err)

	require.NotNil(t, device.Lat)
	assert.InDelta(t, 38.69913, *device.Lat, 1e-9)
	require.NotNil(t, device.Speed)
	assert.InDelta(t, 12.5, *device.Speed, 1e-9)
	assert.InDelta(t, 4.2, device.TotalDistance, 1e-9)
	assert.Equal(t, int64(300), device.TripDuration)

	// but an explicitly provided boolean always overwrites
	device, err = fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{
		GpsSend: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, device.GpsSend)
	assert.True(t, device.StatsSend)
}

func TestUpsertDeviceRefreshesUpdatedAt(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	clock := newFakeClock()
	fleetObj.Clock = clock.Now

	deviceID := uuid.NewString()

	first, err := fleetObj.Device.UpsertDevice(deviceID, nil)
	require.NoError(t, err)

	clock.Advance(10 * time.Second)

	second, err := fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{Speed: floatPtr(1)})
	require.NoError(t, err)

	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestGetDeviceNotFound(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, err := fleetObj.Device.GetDevice(uuid.NewString())
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestListDevicesMostRecentFirst(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	clock := newFakeClock()
	fleetObj.Clock = clock.Now

	older := uuid.NewString()
	newer := uuid.NewString()

	_, err := fleetObj.Device.UpsertDevice(older, nil)
	require.NoError(t, err)

	clock.Advance(5 * time.Second)

	_, err = fleetObj.Device.UpsertDevice(newer, nil)
	require.NoError(t, err)

	devices, err := fleetObj.Device.ListDevices()
	require.NoError(t, err)

	posOlder, posNewer := -1, -1
	for i, d := range devices {
		if d.DeviceID == older {
			posOlder = i
		}
		if d.DeviceID == newer {
			posNewer = i
		}
	}
	require.NotEqual(t, -1, posOlder)
	require.NotEqual(t, -1, posNewer)
	assert.Less(t, posNewer, posOlder, "most recently updated device should come first")
}

func TestDeleteDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	_, err := fleetObj.Device.UpsertDevice(deviceID, nil)
	require.NoError(t, err)

	require.NoError(t, fleetObj.Device.DeleteDevice(deviceID))

	_, err = fleetObj.Device.GetDevice(deviceID)
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	assert.ErrorIs(t, fleetObj.Device.DeleteDevice(deviceID), ErrDeviceNotFound)
}

func TestControlDefaults(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	state, err := fleetObj.Device.GetControlDefaults()
	require.NoError(t, err)
	assert.False(t, state.RentalActive)
	assert.False(t, state.ParkMode)
	assert.True(t, state.GpsSend)
	assert.True(t, state.StatsSend)

	updated, err := fleetObj.Device.UpdateControlDefaults(&models.ControlPatch{
		ParkMode:  boolPtr(true),
		StatsSend: boolPtr(false),
	})
	require.NoError(t, err)
	assert.True(t, updated.ParkMode)
	assert.False(t, updated.StatsSend)
	assert.True(t, updated.GpsSend)

	reloaded, err := fleetObj.Device.GetControlDefaults()
	require.NoError(t, err)
	assert.True(t, reloaded.ParkMode)
	assert.False(t, reloaded.StatsSend)
}

func TestIngestTelemetryFeedsTripLedgerWhileRenting(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, mockITrip := GetMockFleetWithMemorySqliteDialector(t, false, false, true)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	// idle ingest never touches the ledger
	_, err := fleetObj.Device.IngestTelemetry(deviceID, &models.DevicePatch{
		Lat: floatPtr(38.7), Lon: floatPtr(35.5), Speed: floatPtr(10),
	})
	require.NoError(t, err)

	device, err := fleetObj.Rental.StartRental(deviceID)
	require.NoError(t, err)
	require.NotNil(t, device.TripID)
	tripID := *device.TripID

	mockITrip.EXPECT().
		AppendRoutePoint(gomock.Eq(tripID), 38.8, 35.6, gomock.Any()).
		Return(nil).
		Times(1)
	mockITrip.EXPECT().
		SyncSnapshot(gomock.Eq(tripID), gomock.Any()).
		Return(nil).
		Times(2)

	_, err = fleetObj.Device.IngestTelemetry(deviceID, &models.DevicePatch{
		Lat: floatPtr(38.8), Lon: floatPtr(35.6), Speed: floatPtr(20),
	})
	require.NoError(t, err)

	// stats-only ingest syncs the snapshot without appending a point
	_, err = fleetObj.Device.IngestTelemetry(deviceID, &models.DevicePatch{
		TotalDistance: floatPtr(1.2),
		AvgSpeed:      floatPtr(18),
		TripDuration:  intPtr(65),
	})
	require.NoError(t, err)
}

func TestUpsertDevice_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	_, err := fleetObj.Device.UpsertDevice(deviceID, &models.DevicePatch{Lat: floatPtr(38.7)})
	require.NoError(t, err)

	logs := ParseLogs(buf)

	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["category"] == "device" &&
			lobj["logger"] == "fleet_core" &&
			lobj["msg"] == "Upserted device" &&
			lobj["device_id"] == deviceID {
			found = true
		}
	}
	assert.True(t, found, "log not found")
}
