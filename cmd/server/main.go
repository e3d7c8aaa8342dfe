package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"tracknrent.xyz/fleet-rental-service/pkg/common"
	"tracknrent.xyz/fleet-rental-service/pkg/db"
	"tracknrent.xyz/fleet-rental-service/pkg/fleet"
	fleetHttp "tracknrent.xyz/fleet-rental-service/pkg/http"
	"tracknrent.xyz/fleet-rental-service/pkg/packet"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	fleetDbType := os.Getenv(common.EnvKeyFleetDBType)
	switch fleetDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FLEET_DB_TYPE: " + fleetDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFleetHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFleetDefaultRate), 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFleetDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	rates := fleet.DefaultPricingRates()
	overrideRate(&rates.PerKm, common.EnvKeyFleetPricePerKm)
	overrideRate(&rates.DrivePerMinute, common.EnvKeyFleetPriceDrivePerMin)
	overrideRate(&rates.ParkPerMinute, common.EnvKeyFleetPriceParkPerMin)

	verifyCRC := os.Getenv(common.EnvKeyFleetVerifyPacketCRC) == "true"

	logger := common.GetLogger()

	fleetCore := fleet.Fleet{
		Db:    *dbInstance,
		Rates: rates,
	}
	fleetCore.WithServices(fleet.ServiceOpts{
		Device: fleetCore.GetIDevice(),
		Rental: fleetCore.GetIRental(),
		Trip:   fleetCore.GetITrip(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &fleetHttp.RestfulServer{
		Server:           gin.Default(),
		Fleet:            &fleetCore,
		RateLimiterStore: fleet.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		PacketOpts:       packet.Options{VerifyCRC: verifyCRC},
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)),
		zap.Bool("verify_packet_crc", verifyCRC),
		zap.String("pricing",
			fmt.Sprintf("{\"per_km\": %v, \"drive_per_min\": %v, \"park_per_min\": %v}",
				rates.PerKm, rates.DrivePerMinute, rates.ParkPerMinute)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}

func overrideRate(target *float64, envKey string) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s, should be a float64 value", envKey)
	}
	*target = parsed
}
