package fleet

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"tracknrent.xyz/fleet-rental-service/pkg/db"
	"tracknrent.xyz/fleet-rental-service/pkg/fleet/mocks"
)

func GetMockFleetWithMemorySqliteDialector(t *testing.T, useMockIDevice, useMockIRental, useMockITrip bool) (
	*gomock.Controller,
	*Fleet,
	*mocks.MockIDevice,
	*mocks.MockIRental,
	*mocks.MockITrip,
) {
	ctrl := gomock.NewController(t)

	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockIRental := mocks.NewMockIRental(ctrl)
	mockITrip := mocks.NewMockITrip(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	fleetInstance := &Fleet{
		Db:    *dbInstance,
		Rates: DefaultPricingRates(),
	}

	deviceService := fleetInstance.GetIDevice()
	if useMockIDevice {
		deviceService = mockIDevice
	}

	rentalService := fleetInstance.GetIRental()
	if useMockIRental {
		rentalService = mockIRental
	}

	tripService := fleetInstance.GetITrip()
	if useMockITrip {
		tripService = mockITrip
	}

	fleetInstance.WithServices(ServiceOpts{
		Device: deviceService,
		Rental: rentalService,
		Trip:   tripService,
	})

	return ctrl, fleetInstance, mockIDevice, mockIRental, mockITrip
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

// fakeClock makes park/drive accounting deterministic without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Now().UTC().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
