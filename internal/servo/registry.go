package servo

import (
	"math"

	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	ServoMap = cmap.New[*Servo]()
)

// Status is a point in time view of a servo.
type Status struct {
	ID         string   `json:"id"`
	Pin        int      `json:"pin"`
	Channel    int      `json:"channel"`
	Frequency  int      `json:"frequency"`
	Resolution int      `json:"resolution"`
	Limit      [2]int   `json:"limit"`
	Angle      *int     `json:"angle,omitempty"`
	AngleAvg   *float64 `json:"angleAvg,omitempty"`
	Active     bool     `json:"active"`
	Duty       uint32   `json:"duty"`
	MaxDuty    uint32   `json:"maxDuty"`
}

func (s *Servo) GetStatus() Status {
	status := Status{
		ID:         s.config.ID,
		Pin:        s.config.Pin,
		Channel:    s.config.Channel,
		Frequency:  s.config.Frequency,
		Resolution: s.config.Resolution,
		Limit:      [2]int{s.limit.Min, s.limit.Max},
		Active:     s.IsActive(),
		Duty:       s.GetDuty(),
		MaxDuty:    s.GetMaxDuty(),
	}
	if avg := s.GetAngleAvg(); !math.IsNaN(avg) {
		status.AngleAvg = &avg
	}
	// an immediate stop leaves the horn wherever it was
	if status.Active {
		angle := s.GetAngle()
		status.Angle = &angle
	}
	return status
}

// Statuses returns the status of every registered servo, keyed by id.
func Statuses() map[string]Status {
	result := map[string]Status{}
	for id, s := range ServoMap.Items() {
		result[id] = s.GetStatus()
	}
	return result
}
