// Package packet decodes the compact binary frames sent by field tracking
// units and encodes them for simulators and tests.
//
// Frame layout: START(0x02) DEVICE_BYTE MOD PROP LEN DATA[LEN] CRC STOP(0x03).
// The payload carries a pipe-delimited full device id; the header byte is only
// a fallback hint. CRC is the XOR of DEVICE_BYTE^MOD^PROP^LEN^DATA and is
// verified only when Options.VerifyCRC is set, since deployed firmware is
// known to send placeholder values.
package packet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	StartByte byte = 0x02
	StopByte  byte = 0x03

	ModGPS  byte = 0x01
	PropGPS byte = 0x02

	ModMPU     byte = 0x10
	PropMotion byte = 0x01

	ModStats  byte = 0x20
	PropStats byte = 0x01

	// START + DEVICE_BYTE + MOD + PROP + LEN + CRC + STOP with empty payload
	minFrameLen = 7
)

var (
	ErrMalformedFrame     = errors.New("malformed frame")
	ErrUnknownFrameType   = errors.New("unknown mod/prop combination")
	ErrUnparseablePayload = errors.New("unparseable payload")
	ErrBadChecksum        = errors.New("checksum mismatch")
)

type Kind int

const (
	KindGPS Kind = iota
	KindStats
	KindMotion
)

func (k Kind) String() string {
	switch k {
	case KindGPS:
		return "gps"
	case KindStats:
		return "stats"
	case KindMotion:
		return "motion"
	default:
		return "unknown"
	}
}

// Event is one decoded telemetry event. GPS fields are set for KindGPS;
// the stats fields are each independently optional for KindStats.
type Event struct {
	Kind     Kind
	DeviceID string

	Lat   float64
	Lon   float64
	Speed float64

	TotalDistance *float64
	AvgSpeed      *float64
	TripDuration  *int64
}

type Options struct {
	VerifyCRC bool
}

// Checksum computes the XOR over device byte, mod, prop, len and payload.
func Checksum(deviceByte, mod, prop byte, payload []byte) byte {
	crc := deviceByte ^ mod ^ prop ^ byte(len(payload))
	for _, b := range payload {
		crc ^= b
	}
	return crc
}

func Decode(frame []byte, opts Options) (*Event, error) {
	if len(frame) < minFrameLen {
		return nil, fmt.Errorf("%w: frame too short (%d bytes)", ErrMalformedFrame, len(frame))
	}
	if frame[0] != StartByte || frame[len(frame)-1] != StopByte {
		return nil, fmt.Errorf("%w: bad start/stop bytes", ErrMalformedFrame)
	}

	deviceByte := frame[1]
	mod := frame[2]
	prop := frame[3]
	dataLen := int(frame[4])

	if 5+dataLen+2 > len(frame) {
		return nil, fmt.Errorf("%w: truncated payload (len byte %d)", ErrMalformedFrame, dataLen)
	}
	payload := frame[5 : 5+dataLen]

	if opts.VerifyCRC {
		if got, want := frame[5+dataLen], Checksum(deviceByte, mod, prop, payload); got != want {
			return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrBadChecksum, got, want)
		}
	}

	deviceID, data := splitDeviceID(deviceByte, string(payload))

	switch {
	case mod == ModGPS && prop == PropGPS:
		return decodeGPS(deviceID, data)
	case mod == ModStats && prop == PropStats:
		return decodeStats(deviceID, data)
	case mod == ModMPU && prop == PropMotion:
		return &Event{Kind: KindMotion, DeviceID: deviceID}, nil
	default:
		return nil, fmt.Errorf("%w: mod=0x%02x prop=0x%02x", ErrUnknownFrameType, mod, prop)
	}
}

// splitDeviceID pulls the pipe-delimited device id off the payload. The
// header byte is a degenerate single-byte encoding kept only as a fallback
// for firmware that omits the prefix.
func splitDeviceID(deviceByte byte, payload string) (string, string) {
	if idx := strings.Index(payload, "|"); idx > 0 {
		return payload[:idx], payload[idx+1:]
	}
	return fmt.Sprintf("device_%02x", deviceByte), payload
}

func decodeGPS(deviceID, data string) (*Event, error) {
	parts := strings.Split(data, ",")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: gps payload needs lat,lon,speed, got %q", ErrUnparseablePayload, data)
	}

	ev := &Event{Kind: KindGPS, DeviceID: deviceID}
	var err error
	if ev.Lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return nil, fmt.Errorf("%w: bad lat %q", ErrUnparseablePayload, parts[0])
	}
	if ev.Lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return nil, fmt.Errorf("%w: bad lon %q", ErrUnparseablePayload, parts[1])
	}
	if ev.Speed, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
		return nil, fmt.Errorf("%w: bad speed %q", ErrUnparseablePayload, parts[2])
	}
	return ev, nil
}

func decodeStats(deviceID, data string) (*Event, error) {
	ev := &Event{Kind: KindStats, DeviceID: deviceID}

	for _, pair := range strings.Split(data, ",") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(k) {
		case "km":
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad km value %q", ErrUnparseablePayload, v)
			}
			ev.TotalDistance = &f
		case "avg":
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad avg value %q", ErrUnparseablePayload, v)
			}
			ev.AvgSpeed = &f
		case "time":
			i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad time value %q", ErrUnparseablePayload, v)
			}
			ev.TripDuration = &i
		}
	}
	return ev, nil
}

// Encode builds a full frame around the given payload, computing the CRC the
// way the firmware does.
func Encode(deviceID string, mod, prop byte, payload string) []byte {
	var deviceByte byte
	if len(deviceID) > 0 {
		deviceByte = deviceID[0]
	}

	data := []byte(payload)
	if len(data) > 255 {
		data = data[:255]
	}

	frame := make([]byte, 0, len(data)+minFrameLen)
	frame = append(frame, StartByte, deviceByte, mod, prop, byte(len(data)))
	frame = append(frame, data...)
	frame = append(frame, Checksum(deviceByte, mod, prop, data), StopByte)
	return frame
}

func EncodeGPS(deviceID string, lat, lon, speed float64) []byte {
	payload := fmt.Sprintf("%s|%f,%f,%f", deviceID, lat, lon, speed)
	return Encode(deviceID, ModGPS, PropGPS, payload)
}

func EncodeStats(deviceID string, totalDistance, avgSpeed float64, tripDuration int64) []byte {
	payload := fmt.Sprintf("%s|km=%f,avg=%f,time=%d", deviceID, totalDistance, avgSpeed, tripDuration)
	return Encode(deviceID, ModStats, PropStats, payload)
}

func EncodeMotion(deviceID string) []byte {
	return Encode(deviceID, ModMPU, PropMotion, deviceID+"|1")
}
