package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxDevices int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			registerDevice(deviceIDs[i])
			fmt.Printf("\rregistered device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			runRental(deviceIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rran rentals for %v devices: used time=%v seconds, throughput=%v rental/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

// checksum mirrors the firmware's XOR over device byte, mod, prop, len and
// payload.
func checksum(deviceByte, mod, prop byte, payload []byte) byte {
	crc := deviceByte ^ mod ^ prop ^ byte(len(payload))
	for _, b := range payload {
		crc ^= b
	}
	return crc
}

func encodeFrame(deviceID string, mod, prop byte, payload string) []byte {
	var deviceByte byte
	if len(deviceID) > 0 {
		deviceByte = deviceID[0]
	}
	data := []byte(payload)
	frame := make([]byte, 0, len(data)+7)
	frame = append(frame, 0x02, deviceByte, mod, prop, byte(len(data)))
	frame = append(frame, data...)
	frame = append(frame, checksum(deviceByte, mod, prop, data), 0x03)
	return frame
}

func postFrame(frame []byte) {
	resp, err := http.Post(fmt.Sprintf("http://%s/data", httpHostPort), "application/octet-stream", bytes.NewReader(frame))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
		fmt.Printf("\nunexpected status for frame: %v\n", resp.StatusCode)
	}
}

func postJSON(path string, payload any) *http.Response {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return nil
	}
	return resp
}

// registerDevice fires the first GPS fix so the device row exists before the
// rental starts.
func registerDevice(deviceID string) {
	lat := rndFloat64(38.0, 39.0, 5)
	lon := rndFloat64(35.0, 36.0, 5)
	payload := fmt.Sprintf("%s|%f,%f,%f", deviceID, lat, lon, 0.0)
	postFrame(encodeFrame(deviceID, 0x01, 0x02, payload))
}

// runRental drives one full lifecycle: start, a burst of GPS fixes and stats
// reports, a park interval with a motion event, then end.
func runRental(deviceID string) {
	resp := postJSON("/rental/start", map[string]string{"deviceId": deviceID})
	if resp == nil {
		return
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nrental start failed for %v: %v\n", deviceID, resp.StatusCode)
		return
	}

	lat := rndFloat64(38.0, 39.0, 5)
	lon := rndFloat64(35.0, 36.0, 5)
	fixes := 3 + rnd.Intn(5)
	for i := 0; i < fixes; i++ {
		lat += rndFloat64(-0.001, 0.001, 6)
		lon += rndFloat64(-0.001, 0.001, 6)
		speed := rndFloat64(0.0, 40.0, 2)
		payload := fmt.Sprintf("%s|%f,%f,%f", deviceID, lat, lon, speed)
		postFrame(encodeFrame(deviceID, 0x01, 0x02, payload))

		if i%2 == 1 {
			km := rndFloat64(0.1, 5.0, 3)
			avg := rndFloat64(5.0, 30.0, 2)
			statsPayload := fmt.Sprintf("%s|km=%f,avg=%f,time=%d", deviceID, km, avg, (i+1)*60)
			postFrame(encodeFrame(deviceID, 0x20, 0x01, statsPayload))
		}

		time.Sleep(time.Duration(50+rnd.Int31n(200)) * time.Millisecond)
	}

	if resp := postJSON("/rental/control/"+deviceID, map[string]bool{"parkMode": true}); resp != nil {
		resp.Body.Close()
	}

	// parked scooter gets bumped
	postFrame(encodeFrame(deviceID, 0x10, 0x01, deviceID+"|1"))

	time.Sleep(time.Duration(100+rnd.Int31n(500)) * time.Millisecond)

	if resp := postJSON("/rental/control/"+deviceID, map[string]bool{"parkMode": false}); resp != nil {
		resp.Body.Close()
	}

	resp = postJSON("/rental/end", map[string]string{"deviceId": deviceID})
	if resp == nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nrental end failed for %v: %v\n", deviceID, resp.StatusCode)
		return
	}

	fmt.Printf("\rcompleted rental for device %v", deviceID)
}
