package models

import "time"

// Device is the live, mutable projection of one tracking unit. Nullable
// telemetry fields stay nil until the first fix arrives.
type Device struct {
	DeviceID string `gorm:"primaryKey" json:"deviceId"`

	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Speed *float64 `json:"speed"`

	TotalDistance float64 `json:"totalDistance"`
	AvgSpeed      float64 `json:"avgSpeed"`
	TripDuration  int64   `json:"tripDuration"`

	RentalActive bool    `json:"rentalActive"`
	ParkMode     bool    `json:"parkMode"`
	GpsSend      bool    `json:"gpsSend"`
	StatsSend    bool    `json:"statsSend"`
	TripID       *string `gorm:"index" json:"tripId"`

	ParkDuration  int64      `json:"parkDuration"`
	ParkStartTime *time.Time `json:"parkStartTime"`

	MotionDetected bool       `json:"motionDetected"`
	LastMotionTime *time.Time `json:"lastMotionTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`

	Trips []Trip `gorm:"foreignKey:DeviceID;references:DeviceID;constraint:OnDelete:CASCADE" json:"-"`
}

// EffectiveParkDuration adds the open park interval (if any) to the closed
// ones; ParkDuration itself only ever reflects closed intervals.
func (d *Device) EffectiveParkDuration(now time.Time) int64 {
	total := d.ParkDuration
	if d.ParkMode && d.ParkStartTime != nil {
		if elapsed := int64(now.Sub(*d.ParkStartTime).Seconds()); elapsed > 0 {
			total += elapsed
		}
	}
	return total
}

// DevicePatch is a partial update applied with last-non-null-wins per field.
// A nil field leaves the stored value untouched; a non-nil boolean always
// overwrites, explicit false included.
type DevicePatch struct {
	Lat   *float64
	Lon   *float64
	Speed *float64

	TotalDistance *float64
	AvgSpeed      *float64
	TripDuration  *int64

	GpsSend   *bool
	StatsSend *bool

	MotionDetected *bool
	LastMotionTime *time.Time
}

func (p *DevicePatch) ApplyTo(d *Device) {
	if p.Lat != nil {
		d.Lat = p.Lat
	}
	if p.Lon != nil {
		d.Lon = p.Lon
	}
	if p.Speed != nil {
		d.Speed = p.Speed
	}
	if p.TotalDistance != nil {
		d.TotalDistance = *p.TotalDistance
	}
	if p.AvgSpeed != nil {
		d.AvgSpeed = *p.AvgSpeed
	}
	if p.TripDuration != nil {
		d.TripDuration = *p.TripDuration
	}
	if p.GpsSend != nil {
		d.GpsSend = *p.GpsSend
	}
	if p.StatsSend != nil {
		d.StatsSend = *p.StatsSend
	}
	if p.MotionDetected != nil {
		d.MotionDetected = *p.MotionDetected
	}
	if p.LastMotionTime != nil {
		d.LastMotionTime = p.LastMotionTime
	}
}

// Trip is the durable rental record. Open while EndTime is nil, immutable
// once finalized.
type Trip struct {
	TripID   string `gorm:"primaryKey" json:"tripId"`
	DeviceID string `gorm:"index" json:"deviceId"`

	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Speed *float64 `json:"speed"`

	TotalDistance float64 `json:"totalDistance"`
	AvgSpeed      float64 `json:"avgSpeed"`
	TripDuration  int64   `json:"tripDuration"`
	ParkDuration  int64   `json:"parkDuration"`
	TotalCost     float64 `json:"totalCost"`

	StartTime time.Time  `json:"timestamp"`
	EndTime   *time.Time `json:"rentalEndTime"`

	Route []RoutePoint `gorm:"foreignKey:TripID;references:TripID;constraint:OnDelete:CASCADE" json:"realtimeRoute"`
}

func (t *Trip) Finalized() bool {
	return t.EndTime != nil
}

// RoutePoint is one GPS fix on a trip's route, append-only while the trip
// is open.
type RoutePoint struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	TripID    string    `gorm:"index" json:"-"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

const ControlStateDefaultID = "default"

// ControlState holds the single global-default control row consulted when
// no device-scoped record exists. One row in the same store, never process
// memory.
type ControlState struct {
	StateID      string    `gorm:"primaryKey" json:"-"`
	RentalActive bool      `json:"rentalActive"`
	ParkMode     bool      `json:"parkMode"`
	GpsSend      bool      `json:"gpsSend"`
	StatsSend    bool      `json:"statsSend"`
	UpdatedAt    time.Time `json:"-"`
}

// ControlPatch is a partial update for control flags, device-scoped or
// global.
type ControlPatch struct {
	RentalActive *bool
	ParkMode     *bool
	GpsSend      *bool
	StatsSend    *bool
}

// TripQuery filters and orders trip listings. SortBy is one of
// timestamp|speed|distance|duration; zero Limit means the default cap.
type TripQuery struct {
	DeviceID string
	SortBy   string
	Limit    int
}
