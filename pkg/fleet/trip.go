package fleet

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
)

const (
	tripListDefaultLimit = 100
	tripListMaxLimit     = 1000
)

func (f *Fleet) loadTrip(tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := f.Db.Conn.First(&trip, "trip_id = ?", tripID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (f *Fleet) appendRoutePoint(tripID string, lat, lon float64, timestamp time.Time) error {
	trip, err := f.loadTrip(tripID)
	if err != nil {
		return err
	}
	if trip.Finalized() {
		return ErrTripFinalized
	}

	point := models.RoutePoint{
		TripID:    tripID,
		Lat:       lat,
		Lon:       lon,
		Timestamp: timestamp,
	}
	return f.Db.Conn.Create(&point).Error
}

// syncSnapshot copies the device's live telemetry onto the open trip row.
func (f *Fleet) syncSnapshot(tripID string, device *models.Device) error {
	trip, err := f.loadTrip(tripID)
	if err != nil {
		return err
	}
	if trip.Finalized() {
		return ErrTripFinalized
	}

	return f.Db.Conn.Model(trip).Updates(map[string]any{
		"lat":            device.Lat,
		"lon":            device.Lon,
		"speed":          device.Speed,
		"total_distance": device.TotalDistance,
		"avg_speed":      device.AvgSpeed,
		"trip_duration":  device.TripDuration,
	}).Error
}

func (f *Fleet) finalizeTrip(tripID string, snapshot *models.Device, parkDuration int64, totalCost float64, endTime time.Time) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetTrip),
	)

	trip, err := f.loadTrip(tripID)
	if err != nil {
		return err
	}
	if trip.Finalized() {
		return ErrTripFinalized
	}

	err = f.Db.Conn.Model(trip).Updates(map[string]any{
		"lat":            snapshot.Lat,
		"lon":            snapshot.Lon,
		"speed":          snapshot.Speed,
		"total_distance": snapshot.TotalDistance,
		"avg_speed":      snapshot.AvgSpeed,
		"trip_duration":  snapshot.TripDuration,
		"park_duration":  parkDuration,
		"total_cost":     totalCost,
		"end_time":       endTime,
	}).Error
	if err != nil {
		return err
	}

	logger.Info("Trip finalized",
		zap.String("trip_id", tripID),
		zap.Float64("total_cost", totalCost))
	return nil
}

func (f *Fleet) getTrip(tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := f.Db.Conn.
		Preload("Route", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_points.timestamp asc, route_points.id asc")
		}).
		First(&trip, "trip_id = ?", tripID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (f *Fleet) getRoute(tripID string) ([]models.RoutePoint, error) {
	if _, err := f.loadTrip(tripID); err != nil {
		return nil, err
	}

	var points []models.RoutePoint
	err := f.Db.Conn.
		Where("trip_id = ?", tripID).
		Order("timestamp asc, id asc").
		Find(&points).Error
	return points, err
}

func (f *Fleet) listTrips(q models.TripQuery) ([]models.Trip, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = tripListDefaultLimit
	}
	if limit > tripListMaxLimit {
		limit = tripListMaxLimit
	}

	query := f.Db.Conn.
		Preload("Route", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_points.timestamp asc, route_points.id asc")
		}).
		Limit(limit)

	if q.DeviceID != "" {
		query = query.Where("device_id = ?", q.DeviceID)
	}

	switch q.SortBy {
	case "speed":
		query = query.Order("avg_speed desc")
	case "distance":
		query = query.Order("total_distance desc")
	case "duration":
		query = query.Order("trip_duration desc")
	default:
		query = query.Order("start_time desc")
	}

	var trips []models.Trip
	err := query.Find(&trips).Error
	return trips, err
}

func (f *Fleet) deleteDeviceTrips(deviceID string) (int64, error) {
	result := f.Db.Conn.Delete(&models.Trip{}, "device_id = ?", deviceID)
	return result.RowsAffected, result.Error
}

type ITripImpl struct {
	fleet *Fleet
}

func (it *ITripImpl) AppendRoutePoint(tripID string, lat, lon float64, timestamp time.Time) error {
	return it.fleet.appendRoutePoint(tripID, lat, lon, timestamp)
}

func (it *ITripImpl) SyncSnapshot(tripID string, device *models.Device) error {
	return it.fleet.syncSnapshot(tripID, device)
}

func (it *ITripImpl) Finalize(tripID string, snapshot *models.Device, parkDuration int64, totalCost float64, endTime time.Time) error {
	return it.fleet.finalizeTrip(tripID, snapshot, parkDuration, totalCost, endTime)
}

func (it *ITripImpl) GetTrip(tripID string) (*models.Trip, error) {
	return it.fleet.getTrip(tripID)
}

func (it *ITripImpl) GetRoute(tripID string) ([]models.RoutePoint, error) {
	return it.fleet.getRoute(tripID)
}

func (it *ITripImpl) ListTrips(q models.TripQuery) ([]models.Trip, error) {
	return it.fleet.listTrips(q)
}

func (it *ITripImpl) DeleteDeviceTrips(deviceID string) (int64, error) {
	return it.fleet.deleteDeviceTrips(deviceID)
}

func (f *Fleet) GetITrip() ITrip {
	return &ITripImpl{fleet: f}
}
