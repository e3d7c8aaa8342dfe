package fleet

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
)

func (f *Fleet) rentalLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetRental),
	)
}

func (f *Fleet) startRental(deviceID string) (*models.Device, error) {
	logger := f.rentalLogger()
	now := f.now()

	device, err := f.getDevice(deviceID)
	if err == ErrDeviceNotFound {
		device = &models.Device{
			DeviceID:  deviceID,
			GpsSend:   true,
			StatsSend: true,
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, err
	}

	if device.RentalActive {
		return nil, &ConflictError{Reason: fmt.Sprintf("device %s already rented", deviceID)}
	}

	tripID := "trip_" + uuid.NewString()

	device.RentalActive = true
	device.ParkMode = false
	device.GpsSend = true
	device.StatsSend = true
	device.TripID = &tripID
	device.ParkDuration = 0
	device.ParkStartTime = nil
	device.MotionDetected = false
	device.LastMotionTime = nil
	device.TotalDistance = 0
	device.AvgSpeed = 0
	device.TripDuration = 0
	device.UpdatedAt = now

	err = f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(device).Error
	if err != nil {
		return nil, err
	}

	trip := models.Trip{
		TripID:    tripID,
		DeviceID:  deviceID,
		StartTime: now,
	}
	if err := f.Db.Conn.Create(&trip).Error; err != nil {
		return nil, err
	}

	logger.Info("Rental started",
		zap.String("device_id", deviceID),
		zap.String("trip_id", tripID))

	return device, nil
}

func (f *Fleet) setParkMode(deviceID string, parked bool) (*models.Device, error) {
	logger := f.rentalLogger()
	now := f.now()

	device, err := f.getDevice(deviceID)
	if err != nil {
		return nil, err
	}

	if device.ParkMode == parked {
		// idempotent
		return device, nil
	}

	if !device.RentalActive {
		return nil, &ConflictError{Reason: fmt.Sprintf("device %s is not rented", deviceID)}
	}

	if parked {
		device.ParkMode = true
		device.ParkStartTime = &now
	} else {
		if device.ParkStartTime != nil {
			if elapsed := int64(now.Sub(*device.ParkStartTime).Seconds()); elapsed > 0 {
				device.ParkDuration += elapsed
			}
		}
		device.ParkMode = false
		device.ParkStartTime = nil
		device.MotionDetected = false
		device.LastMotionTime = nil
	}
	device.UpdatedAt = now

	if err := f.Db.Conn.Save(device).Error; err != nil {
		return nil, err
	}

	logger.Info("Park mode changed",
		zap.String("device_id", deviceID),
		zap.Bool("park_mode", parked),
		zap.Int64("park_duration", device.ParkDuration))

	return device, nil
}

func (f *Fleet) endRental(deviceID string) (*models.Trip, error) {
	logger := f.rentalLogger()
	now := f.now()

	device, err := f.getDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if !device.RentalActive {
		return nil, &ConflictError{Reason: fmt.Sprintf("device %s is not rented", deviceID)}
	}

	// close the open park interval exactly as unparking would
	finalParkDuration := device.EffectiveParkDuration(now)

	driveDuration := device.TripDuration - finalParkDuration
	if driveDuration < 0 {
		driveDuration = 0
	}

	totalCost, err := f.Rates.Cost(device.TotalDistance, driveDuration, finalParkDuration)
	if err != nil {
		return nil, err
	}

	tripID := device.TripID
	if tripID != nil {
		if f.Trip == nil {
			return nil, fmt.Errorf("trip service not available")
		}
		if err := f.Trip.Finalize(*tripID, device, finalParkDuration, totalCost, now); err != nil {
			return nil, err
		}
	}

	device.RentalActive = false
	device.ParkMode = true // post-rental default
	device.GpsSend = true
	device.StatsSend = true
	device.TripID = nil
	device.ParkDuration = 0
	device.ParkStartTime = nil
	device.MotionDetected = false
	device.LastMotionTime = nil
	device.TotalDistance = 0
	device.AvgSpeed = 0
	device.TripDuration = 0
	device.UpdatedAt = now

	if err := f.Db.Conn.Save(device).Error; err != nil {
		return nil, err
	}

	logger.Info("Rental ended",
		zap.String("device_id", deviceID),
		zap.Float64("total_cost", totalCost),
		zap.Int64("park_duration", finalParkDuration))

	if tripID == nil {
		return nil, ErrTripNotFound
	}
	return f.Trip.GetTrip(*tripID)
}

func (f *Fleet) controlDevice(deviceID string, patch *models.ControlPatch) (*models.Device, error) {
	if patch != nil && patch.ParkMode != nil {
		if _, err := f.setParkMode(deviceID, *patch.ParkMode); err != nil {
			return nil, err
		}
	}

	if patch != nil && (patch.GpsSend != nil || patch.StatsSend != nil) {
		return f.upsertDevice(deviceID, &models.DevicePatch{
			GpsSend:   patch.GpsSend,
			StatsSend: patch.StatsSend,
		})
	}

	return f.getDevice(deviceID)
}

func (f *Fleet) recordMotion(deviceID string) (*models.Device, error) {
	logger := f.rentalLogger()
	now := f.now()

	device, err := f.getDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if !device.ParkMode {
		return nil, &ConflictError{Reason: fmt.Sprintf("device %s is not in park mode", deviceID)}
	}

	device.GpsSend = true
	device.MotionDetected = true
	device.LastMotionTime = &now
	device.UpdatedAt = now

	if err := f.Db.Conn.Save(device).Error; err != nil {
		return nil, err
	}

	logger.Info("Motion detected while parked", zap.String("device_id", deviceID))
	return device, nil
}

func (f *Fleet) resetTripData(deviceID string) (int64, error) {
	logger := f.rentalLogger()

	device, err := f.getDevice(deviceID)
	if err != nil {
		return 0, err
	}
	if device.RentalActive {
		return 0, &ConflictError{Reason: fmt.Sprintf("device %s has an active rental, end it before resetting", deviceID)}
	}

	device.TotalDistance = 0
	device.AvgSpeed = 0
	device.TripDuration = 0
	device.ParkDuration = 0
	device.ParkStartTime = nil
	device.UpdatedAt = f.now()

	if err := f.Db.Conn.Save(device).Error; err != nil {
		return 0, err
	}

	if f.Trip == nil {
		return 0, fmt.Errorf("trip service not available")
	}
	deleted, err := f.Trip.DeleteDeviceTrips(deviceID)
	if err != nil {
		return 0, err
	}

	logger.Info("Trip data reset",
		zap.String("device_id", deviceID),
		zap.Int64("trips_deleted", deleted))
	return deleted, nil
}

type IRentalImpl struct {
	fleet *Fleet
}

func (ir *IRentalImpl) StartRental(deviceID string) (*models.Device, error) {
	return ir.fleet.startRental(deviceID)
}

func (ir *IRentalImpl) EndRental(deviceID string) (*models.Trip, error) {
	return ir.fleet.endRental(deviceID)
}

func (ir *IRentalImpl) SetParkMode(deviceID string, parked bool) (*models.Device, error) {
	return ir.fleet.setParkMode(deviceID, parked)
}

func (ir *IRentalImpl) ControlDevice(deviceID string, patch *models.ControlPatch) (*models.Device, error) {
	return ir.fleet.controlDevice(deviceID, patch)
}

func (ir *IRentalImpl) RecordMotion(deviceID string) (*models.Device, error) {
	return ir.fleet.recordMotion(deviceID)
}

func (ir *IRentalImpl) ResetTripData(deviceID string) (int64, error) {
	return ir.fleet.resetTripData(deviceID)
}

func (f *Fleet) GetIRental() IRental {
	return &IRentalImpl{fleet: f}
}
