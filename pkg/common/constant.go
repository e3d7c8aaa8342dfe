package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFleetDBType string = "FLEET_DB_TYPE"
	EnvKeyFleetDbPath string = "FLEET_DB_PATH"

	EnvKeyFleetHttpHostPort string = "FLEET_HTTP_HOST_PORT"

	EnvKeyFleetDefaultRate  string = "FLEET_DEFAULT_RATE"
	EnvKeyFleetDefaultBurst string = "FLEET_DEFAULT_BURST"

	EnvKeyFleetVerifyPacketCRC string = "FLEET_VERIFY_PACKET_CRC"

	EnvKeyFleetPricePerKm       string = "FLEET_PRICE_PER_KM"
	EnvKeyFleetPriceDrivePerMin string = "FLEET_PRICE_DRIVE_PER_MIN"
	EnvKeyFleetPriceParkPerMin  string = "FLEET_PRICE_PARK_PER_MIN"

	LoggerNameFleetCore      string = "fleet_core"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerFieldFleetCategory string = "category"

	LoggerCategoryFleetDevice string = "device"
	LoggerCategoryFleetRental string = "rental"
	LoggerCategoryFleetTrip   string = "trip"
	LoggerCategoryFleetPacket string = "packet"
)
