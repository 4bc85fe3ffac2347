package statistics

import (
	"math"

	"github.com/markusressel/servo2go/internal/servo"
	"github.com/prometheus/client_golang/prometheus"
)

const servoSubsystem = "servo"

type ServoCollector struct {
	servos   []*servo.Servo
	angle    *prometheus.Desc
	angleAvg *prometheus.Desc
	duty     *prometheus.Desc
	maxDuty  *prometheus.Desc
}

func NewServoCollector(servos []*servo.Servo) *ServoCollector {
	return &ServoCollector{
		servos: servos,
		angle: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "angle"),
			"Last commanded angle of the servo in degrees",
			[]string{"id"}, nil,
		),
		angleAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "angle_avg"),
			"Moving average of recently commanded angles",
			[]string{"id"}, nil,
		),
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "duty"),
			"Last duty value written to the PWM channel",
			[]string{"id"}, nil,
		),
		maxDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, servoSubsystem, "duty_max"),
			"Highest duty value the PWM channel accepts",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ServoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.angle
	ch <- collector.angleAvg
	ch <- collector.duty
	ch <- collector.maxDuty
}

// Collect implements required collect function for all prometheus collectors
func (collector *ServoCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range collector.servos {
		servoId := s.GetId()
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(s.GetDuty()), servoId)
		ch <- prometheus.MustNewConstMetric(collector.maxDuty, prometheus.GaugeValue, float64(s.GetMaxDuty()), servoId)

		if s.IsActive() {
			ch <- prometheus.MustNewConstMetric(collector.angle, prometheus.GaugeValue, float64(s.GetAngle()), servoId)
		}
		if avg := s.GetAngleAvg(); !math.IsNaN(avg) {
			ch <- prometheus.MustNewConstMetric(collector.angleAvg, prometheus.GaugeValue, avg, servoId)
		}
	}
}
