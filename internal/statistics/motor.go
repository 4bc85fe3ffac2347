package statistics

import (
	"github.com/markusressel/servo2go/internal/motor"
	"github.com/prometheus/client_golang/prometheus"
)

const motorSubsystem = "motor"

type MotorCollector struct {
	motor     motor.Driver
	direction *prometheus.Desc
}

func NewMotorCollector(m motor.Driver) *MotorCollector {
	return &MotorCollector{
		motor: m,
		direction: prometheus.NewDesc(prometheus.BuildFQName(namespace, motorSubsystem, "direction"),
			"Current drive direction, 1 for the active direction",
			[]string{"direction"}, nil,
		),
	}
}

func (collector *MotorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.direction
}

// Collect implements required collect function for all prometheus collectors
func (collector *MotorCollector) Collect(ch chan<- prometheus.Metric) {
	current := collector.motor.GetDirection()
	for _, direction := range motor.Directions {
		value := 0.0
		if direction == current {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.direction, prometheus.GaugeValue, value, string(direction))
	}
}
