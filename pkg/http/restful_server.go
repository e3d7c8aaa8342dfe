package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"tracknrent.xyz/fleet-rental-service/pkg/fleet"
	"tracknrent.xyz/fleet-rental-service/pkg/packet"
)

type RestfulServer struct {
	Server           *gin.Engine
	Fleet            *fleet.Fleet
	RateLimiterStore *fleet.RateLimiterStore
	PacketOpts       packet.Options
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) RemoveLimiter(deviceID string) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.RemoveLimiter(deviceID)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	// device-facing surface
	rs.Server.POST("/data", rs.PostData)
	rs.Server.POST("/motion", rs.PostMotion)
	rs.Server.GET("/control", rs.GetControl)

	admin := rs.Server.Group("/admin")
	{
		admin.GET("/state", rs.GetAdminState)
		admin.POST("/state", rs.PostAdminState)
		admin.GET("/devices", rs.ListDevices)
		admin.DELETE("/devices/:device_id", rs.DeleteDevice)
		admin.GET("/trips", rs.ListTrips)
		admin.GET("/trips/:trip_id", rs.GetTrip)
		admin.POST("/limiter/:device_id", rs.PostLimiter)
		admin.POST("/clear-all", rs.ClearAll)
	}

	rental := rs.Server.Group("/rental")
	{
		rental.POST("/start", rs.StartRental)
		rental.POST("/end", rs.EndRental)
		rental.GET("/status/:device_id", rs.RentalStatus)
		rental.POST("/control/:device_id", rs.ControlDevice)
	}

	rs.Server.POST("/trip/reset/:device_id", rs.ResetTrip)
}
