package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/fleet"
	"tracknrent.xyz/fleet-rental-service/pkg/models"
	"tracknrent.xyz/fleet-rental-service/pkg/packet"
)

func (rs *RestfulServer) respondError(c *gin.Context, err error) {
	var conflictErr *fleet.ConflictError
	var invalidErr *fleet.InvalidInputError
	switch {
	case errors.Is(err, fleet.ErrDeviceNotFound) || errors.Is(err, fleet.ErrTripNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &conflictErr) || errors.Is(err, fleet.ErrTripFinalized):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type DataRequest struct {
	DeviceID      string     `json:"deviceId"`
	Lat           *float64   `json:"lat"`
	Lon           *float64   `json:"lon"`
	Speed         *float64   `json:"speed"`
	TotalDistance *float64   `json:"totalDistance"`
	AvgSpeed      *float64   `json:"avgSpeed"`
	TripDuration  *int64     `json:"tripDuration"`
	Motion        *bool      `json:"motion"`
	Timestamp     *time.Time `json:"timestamp"`
}

// PostData is the single ingestion endpoint. Devices either POST a JSON body
// or the raw binary frame; the content type decides which decoder runs.
func (rs *RestfulServer) PostData(c *gin.Context) {
	if strings.Contains(c.ContentType(), "application/json") {
		rs.postDataJSON(c)
		return
	}
	rs.postDataBinary(c)
}

func (rs *RestfulServer) postDataJSON(c *gin.Context) {
	var req DataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json body"})
		return
	}
	if req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "deviceId is required"})
		return
	}

	if !rs.CheckDeviceLimiter(req.DeviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if req.Motion != nil && *req.Motion {
		rs.ingestMotion(c, req.DeviceID)
		return
	}

	patch := &models.DevicePatch{
		Lat:           req.Lat,
		Lon:           req.Lon,
		Speed:         req.Speed,
		TotalDistance: req.TotalDistance,
		AvgSpeed:      req.AvgSpeed,
		TripDuration:  req.TripDuration,
	}
	if _, err := rs.Fleet.Device.IngestTelemetry(req.DeviceID, patch); err != nil {
		rs.respondError(c, err)
		return
	}

	c.String(http.StatusOK, "OK")
}

func (rs *RestfulServer) postDataBinary(c *gin.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetPacket),
	)

	frame, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable body"})
		return
	}

	event, err := packet.Decode(frame, rs.PacketOpts)
	if err != nil {
		logger.Warn("Rejected binary frame", zap.Error(err), zap.Int("frame_len", len(frame)))
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if !rs.CheckDeviceLimiter(event.DeviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	switch event.Kind {
	case packet.KindMotion:
		rs.ingestMotion(c, event.DeviceID)
		return
	case packet.KindGPS:
		patch := &models.DevicePatch{
			Lat:   &event.Lat,
			Lon:   &event.Lon,
			Speed: &event.Speed,
		}
		if _, err := rs.Fleet.Device.IngestTelemetry(event.DeviceID, patch); err != nil {
			rs.respondError(c, err)
			return
		}
	case packet.KindStats:
		patch := &models.DevicePatch{
			TotalDistance: event.TotalDistance,
			AvgSpeed:      event.AvgSpeed,
			TripDuration:  event.TripDuration,
		}
		if _, err := rs.Fleet.Device.IngestTelemetry(event.DeviceID, patch); err != nil {
			rs.respondError(c, err)
			return
		}
	}

	c.String(http.StatusOK, "OK")
}

// ingestMotion handles motion events arriving on the ingestion path. A unit
// that is not parked (or not yet registered) reports motion harmlessly, so
// state errors degrade to a 200 instead of bouncing the device.
func (rs *RestfulServer) ingestMotion(c *gin.Context, deviceID string) {
	logger := common.GetLoggerWith(
		common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetRental),
	)

	var conflictErr *fleet.ConflictError
	if _, err := rs.Fleet.Rental.RecordMotion(deviceID); err != nil {
		if errors.Is(err, fleet.ErrDeviceNotFound) || errors.As(err, &conflictErr) {
			logger.Info("Ignored motion event",
				zap.String("device_id", deviceID), zap.String("reason", err.Error()))
		} else {
			rs.respondError(c, err)
			return
		}
	}

	c.String(http.StatusOK, "OK")
}

type MotionRequest struct {
	DeviceId string `json:"deviceId"`
}

var motionRequestSchema = z.Struct(z.Shape{
	"deviceId": z.String().Required(),
})

// PostMotion is the explicit intrusion-alarm endpoint. Unlike the ingestion
// path it surfaces state errors to the caller.
func (rs *RestfulServer) PostMotion(c *gin.Context) {
	var req MotionRequest
	if err := motionRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Fleet.Rental.RecordMotion(req.DeviceId)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"message":          "Motion recorded",
		"deviceId":         device.DeviceID,
		"motionDetectedAt": device.LastMotionTime,
	})
}

// GetControl serves the legacy firmware poll format as plain text.
func (rs *RestfulServer) GetControl(c *gin.Context) {
	state, err := rs.Fleet.Device.GetControlDefaults()
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.String(http.StatusOK, "rent=%d&park=%d&gps=%d&stats=%d",
		boolToInt(state.RentalActive), boolToInt(state.ParkMode),
		boolToInt(state.GpsSend), boolToInt(state.StatsSend))
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// GetAdminState returns device-scoped flags when a deviceId is given and that
// device exists, otherwise the global default row.
func (rs *RestfulServer) GetAdminState(c *gin.Context) {
	deviceID := c.Query("deviceId")

	if deviceID != "" {
		device, err := rs.Fleet.Device.GetDevice(deviceID)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"deviceId":     device.DeviceID,
				"rentalActive": device.RentalActive,
				"parkMode":     device.ParkMode,
				"gpsSend":      device.GpsSend,
				"statsSend":    device.StatsSend,
				"tripId":       device.TripID,
			})
			return
		}
		if !errors.Is(err, fleet.ErrDeviceNotFound) {
			rs.respondError(c, err)
			return
		}
	}

	state, err := rs.Fleet.Device.GetControlDefaults()
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type StateRequest struct {
	DeviceID     *string `json:"deviceId"`
	RentalActive *bool   `json:"rentalActive"`
	ParkMode     *bool   `json:"parkMode"`
	GpsSend      *bool   `json:"gpsSend"`
	StatsSend    *bool   `json:"statsSend"`
}

// PostAdminState updates control flags. With a deviceId the rentalActive bit
// is routed through the rental lifecycle so the trip ledger stays consistent;
// without one only the global default row changes.
func (rs *RestfulServer) PostAdminState(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json body"})
		return
	}

	if req.DeviceID == nil || *req.DeviceID == "" {
		state, err := rs.Fleet.Device.UpdateControlDefaults(&models.ControlPatch{
			RentalActive: req.RentalActive,
			ParkMode:     req.ParkMode,
			GpsSend:      req.GpsSend,
			StatsSend:    req.StatsSend,
		})
		if err != nil {
			rs.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "state": state})
		return
	}

	deviceID := *req.DeviceID

	if req.RentalActive != nil {
		device, err := rs.Fleet.Device.GetDevice(deviceID)
		active := err == nil && device.RentalActive
		if err != nil && !errors.Is(err, fleet.ErrDeviceNotFound) {
			rs.respondError(c, err)
			return
		}

		if *req.RentalActive && !active {
			if _, err := rs.Fleet.Rental.StartRental(deviceID); err != nil {
				rs.respondError(c, err)
				return
			}
		} else if !*req.RentalActive && active {
			if _, err := rs.Fleet.Rental.EndRental(deviceID); err != nil {
				rs.respondError(c, err)
				return
			}
		}
	}

	if req.ParkMode != nil || req.GpsSend != nil || req.StatsSend != nil {
		_, err := rs.Fleet.Rental.ControlDevice(deviceID, &models.ControlPatch{
			ParkMode:  req.ParkMode,
			GpsSend:   req.GpsSend,
			StatsSend: req.StatsSend,
		})
		if err != nil {
			rs.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (rs *RestfulServer) deviceView(device *models.Device, now time.Time) gin.H {
	return gin.H{
		"lat":            device.Lat,
		"lon":            device.Lon,
		"speed":          device.Speed,
		"totalDistance":  device.TotalDistance,
		"avgSpeed":       device.AvgSpeed,
		"tripDuration":   device.TripDuration,
		"rentalActive":   device.RentalActive,
		"parkMode":       device.ParkMode,
		"gpsSend":        device.GpsSend,
		"statsSend":      device.StatsSend,
		"tripId":         device.TripID,
		"parkDuration":   device.EffectiveParkDuration(now),
		"motionDetected": device.MotionDetected,
		"lastMotionTime": device.LastMotionTime,
		"updatedAt":      device.UpdatedAt,
	}
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	rows, err := rs.Fleet.Device.ListDevices()
	if err != nil {
		rs.respondError(c, err)
		return
	}

	now := time.Now().UTC()
	devices := common.Mapper(rows, func(d models.Device) gin.H {
		return gin.H{"deviceId": d.DeviceID, "value": rs.deviceView(&d, now)}
	})

	c.JSON(http.StatusOK, gin.H{"devices": devices, "total": len(devices)})
}

func (rs *RestfulServer) DeleteDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	if err := rs.Fleet.Device.DeleteDevice(deviceID); err != nil {
		rs.respondError(c, err)
		return
	}
	rs.RemoveLimiter(deviceID)

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Device deleted", "deviceId": deviceID})
}

func (rs *RestfulServer) ListTrips(c *gin.Context) {
	q := models.TripQuery{
		DeviceID: c.Query("deviceId"),
		SortBy:   c.Query("sortBy"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "limit must be an integer"})
			return
		}
		q.Limit = limit
	}

	trips, err := rs.Fleet.Trip.ListTrips(q)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	grouped := common.Reducer(trips, func(acc map[string][]models.Trip, t models.Trip) map[string][]models.Trip {
		acc[t.DeviceID] = append(acc[t.DeviceID], t)
		return acc
	}, map[string][]models.Trip{})

	sortedBy := q.SortBy
	if sortedBy == "" {
		sortedBy = "timestamp"
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"trips":    trips,
		"grouped":  grouped,
		"sortedBy": sortedBy,
		"total":    len(trips),
	})
}

func (rs *RestfulServer) GetTrip(c *gin.Context) {
	trip, err := rs.Fleet.Trip.GetTrip(c.Param("trip_id"))
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "trip": trip, "routePoints": trip.Route})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

// ClearAll wipes every table. Test-bench tooling only.
func (rs *RestfulServer) ClearAll(c *gin.Context) {
	conn := rs.Fleet.Db.Conn
	for _, table := range []string{"route_points", "trips", "devices", "control_states"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			rs.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "All data cleared"})
}

type RentalStartRequest struct {
	DeviceId string `json:"deviceId"`
}

var rentalStartRequestSchema = z.Struct(z.Shape{
	"deviceId": z.String().Required(),
})

func (rs *RestfulServer) StartRental(c *gin.Context) {
	var req RentalStartRequest
	if err := rentalStartRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Fleet.Rental.StartRental(req.DeviceId)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"message":      "Rental started",
		"deviceId":     device.DeviceID,
		"tripId":       device.TripID,
		"rentalActive": device.RentalActive,
	})
}

type RoutePointRequest struct {
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Timestamp *time.Time `json:"timestamp"`
}

type RentalEndRequest struct {
	DeviceID      string              `json:"deviceId"`
	RealtimeRoute []RoutePointRequest `json:"realtimeRoute"`
}

func (rs *RestfulServer) EndRental(c *gin.Context) {
	var req RentalEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json body"})
		return
	}
	if req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "deviceId is required"})
		return
	}

	// the server-side route is authoritative; a client-submitted route is
	// accepted for backward compatibility but never persisted
	if len(req.RealtimeRoute) > 0 {
		logger := common.GetLoggerWith(
			common.LoggerNameRestfulServer,
			zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryFleetRental),
		)
		logger.Info("Discarding client-submitted route",
			zap.String("device_id", req.DeviceID),
			zap.Int("points", len(req.RealtimeRoute)))
	}

	trip, err := rs.Fleet.Rental.EndRental(req.DeviceID)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Rental ended",
		"tripId":  trip.TripID,
		"trip":    trip,
	})
}

func (rs *RestfulServer) RentalStatus(c *gin.Context) {
	deviceID := c.Param("device_id")

	device, err := rs.Fleet.Device.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, fleet.ErrDeviceNotFound) {
			// unknown units read as not-rented rather than erroring, so
			// kiosks can poll before the first telemetry arrives
			c.JSON(http.StatusOK, gin.H{
				"deviceId":     deviceID,
				"rentalActive": false,
				"tripId":       nil,
			})
			return
		}
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deviceId":     device.DeviceID,
		"rentalActive": device.RentalActive,
		"tripId":       device.TripID,
		"parkMode":     device.ParkMode,
		"gpsSend":      device.GpsSend,
		"statsSend":    device.StatsSend,
		"parkDuration": device.EffectiveParkDuration(time.Now().UTC()),
	})
}

type ControlRequest struct {
	ParkMode  *bool `json:"parkMode"`
	GpsSend   *bool `json:"gpsSend"`
	StatsSend *bool `json:"statsSend"`
}

func (rs *RestfulServer) ControlDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json body"})
		return
	}

	device, err := rs.Fleet.Rental.ControlDevice(deviceID, &models.ControlPatch{
		ParkMode:  req.ParkMode,
		GpsSend:   req.GpsSend,
		StatsSend: req.StatsSend,
	})
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"message":   "Device control updated",
		"deviceId":  device.DeviceID,
		"parkMode":  device.ParkMode,
		"gpsSend":   device.GpsSend,
		"statsSend": device.StatsSend,
	})
}

func (rs *RestfulServer) ResetTrip(c *gin.Context) {
	deviceID := c.Param("device_id")

	deleted, err := rs.Fleet.Rental.ResetTripData(deviceID)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"message":      "Trip data reset",
		"deviceId":     deviceID,
		"tripsDeleted": deleted,
	})
}
