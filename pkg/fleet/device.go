package fleet

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
)

func (f *Fleet) upsertDevice(deviceID string, patch *models.DevicePatch) (*models.Device, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetDevice),
	)

	now := f.now()

	var device models.Device
	err := f.Db.Conn.First(&device, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		device = models.Device{
			DeviceID:  deviceID,
			GpsSend:   true,
			StatsSend: true,
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, err
	}

	if patch != nil {
		patch.ApplyTo(&device)
	}
	device.UpdatedAt = now

	err = f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(&device).Error
	if err != nil {
		return nil, err
	}

	logger.Info("Upserted device", zap.String("device_id", deviceID))
	return &device, nil
}

// ingestTelemetry merges a decoded telemetry patch into the device row and,
// while a rental is open, feeds the trip ledger.
func (f *Fleet) ingestTelemetry(deviceID string, patch *models.DevicePatch) (*models.Device, error) {
	device, err := f.upsertDevice(deviceID, patch)
	if err != nil {
		return nil, err
	}

	if !device.RentalActive || device.TripID == nil {
		return device, nil
	}

	if f.Trip == nil {
		return nil, fmt.Errorf("trip service not available")
	}

	if patch != nil && patch.Lat != nil && patch.Lon != nil {
		if err := f.Trip.AppendRoutePoint(*device.TripID, *patch.Lat, *patch.Lon, f.now()); err != nil {
			return nil, err
		}
	}
	if err := f.Trip.SyncSnapshot(*device.TripID, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (f *Fleet) getDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	err := f.Db.Conn.First(&device, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (f *Fleet) listDevices() ([]models.Device, error) {
	var devices []models.Device
	err := f.Db.Conn.
		Order("updated_at desc").
		Find(&devices).Error
	return devices, err
}

func (f *Fleet) deleteDevice(deviceID string) error {
	result := f.Db.Conn.Delete(&models.Device{}, "device_id = ?", deviceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (f *Fleet) getControlDefaults() (*models.ControlState, error) {
	var state models.ControlState
	err := f.Db.Conn.First(&state, "state_id = ?", models.ControlStateDefaultID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ControlState{
			StateID:   models.ControlStateDefaultID,
			GpsSend:   true,
			StatsSend: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (f *Fleet) updateControlDefaults(patch *models.ControlPatch) (*models.ControlState, error) {
	state, err := f.getControlDefaults()
	if err != nil {
		return nil, err
	}

	if patch != nil {
		if patch.RentalActive != nil {
			state.RentalActive = *patch.RentalActive
		}
		if patch.ParkMode != nil {
			state.ParkMode = *patch.ParkMode
		}
		if patch.GpsSend != nil {
			state.GpsSend = *patch.GpsSend
		}
		if patch.StatsSend != nil {
			state.StatsSend = *patch.StatsSend
		}
	}
	state.UpdatedAt = f.now()

	err = f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_id"}},
		UpdateAll: true,
	}).Create(state).Error
	if err != nil {
		return nil, err
	}
	return state, nil
}

type IDeviceImpl struct {
	fleet *Fleet
}

func (id *IDeviceImpl) IngestTelemetry(deviceID string, patch *models.DevicePatch) (*models.Device, error) {
	return id.fleet.ingestTelemetry(deviceID, patch)
}

func (id *IDeviceImpl) UpsertDevice(deviceID string, patch *models.DevicePatch) (*models.Device, error) {
	return id.fleet.upsertDevice(deviceID, patch)
}

func (id *IDeviceImpl) GetDevice(deviceID string) (*models.Device, error) {
	return id.fleet.getDevice(deviceID)
}

func (id *IDeviceImpl) ListDevices() ([]models.Device, error) {
	return id.fleet.listDevices()
}

func (id *IDeviceImpl) DeleteDevice(deviceID string) error {
	return id.fleet.deleteDevice(deviceID)
}

func (id *IDeviceImpl) GetControlDefaults() (*models.ControlState, error) {
	return id.fleet.getControlDefaults()
}

func (id *IDeviceImpl) UpdateControlDefaults(patch *models.ControlPatch) (*models.ControlState, error) {
	return id.fleet.updateControlDefaults(patch)
}

func (f *Fleet) GetIDevice() IDevice {
	return &IDeviceImpl{fleet: f}
}
