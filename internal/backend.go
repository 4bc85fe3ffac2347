package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/servo2go/internal/api"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/motor"
	"github.com/markusressel/servo2go/internal/persistence"
	"github.com/markusressel/servo2go/internal/sequence"
	"github.com/markusressel/servo2go/internal/servo"
	"github.com/markusressel/servo2go/internal/statistics"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence at %s: %v", config.DbPath, err)
	}

	servos, m, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("%v", err)
	}

	statistics.Register(statistics.NewServoCollector(servos))
	if m != nil {
		statistics.Register(statistics.NewMotorCollector(m))
	}

	// nothing else may drive the servos while the boot sequences run
	RunBootSequences(servos, pers, sequence.NewSystemClock())

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving metrics on %s/metrics", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(m, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Serving REST API on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start REST API: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST API...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST API: %v", err)
				} else {
					ui.Info("REST API stopped.")
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	Shutdown(servos, m)

	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

// InitializeObjects opens every configured servo and the motor driver (if any)
// and registers the servos in servo.ServoMap.
func InitializeObjects(config configuration.Configuration) ([]*servo.Servo, motor.Driver, error) {
	var servoList []*servo.Servo
	for _, servoConfig := range config.Servos {
		s, err := servo.Open(servoConfig)
		if err != nil {
			Shutdown(servoList, nil)
			return nil, nil, fmt.Errorf("unable to process servo configuration %s: %w", servoConfig.ID, err)
		}
		ui.Debug("Servo %s uses pin %d, channel %d at %d Hz with %d bit", servoConfig.ID, servoConfig.Pin, servoConfig.Channel, servoConfig.Frequency, servoConfig.Resolution)
		servo.ServoMap.Set(servoConfig.ID, s)
		servoList = append(servoList, s)
	}

	if len(servoList) == 0 {
		return nil, nil, errors.New("no valid servo configurations, exiting")
	}

	if config.Motor == nil {
		return servoList, nil, nil
	}

	m, err := motor.NewDriver(*config.Motor)
	if err != nil {
		Shutdown(servoList, nil)
		return nil, nil, fmt.Errorf("unable to process motor configuration: %w", err)
	}
	return servoList, m, nil
}

// RunBootSequences runs the boot sequence of every servo that has one, one
// after another on the calling goroutine, and records each run.
func RunBootSequences(servos []*servo.Servo, pers persistence.Persistence, clock sequence.Clock) []persistence.SequenceRun {
	var runs []persistence.SequenceRun
	for _, s := range servos {
		name := s.GetConfig().BootSequence
		if len(name) == 0 || name == configuration.SequenceNone {
			continue
		}

		r, err := RunSequence(s, name, pers, clock)
		if err != nil {
			ui.Error("Boot sequence of servo %s failed: %v", s.GetId(), err)
			continue
		}
		runs = append(runs, r)
	}
	return runs
}

// RunSequence runs the named sequence on the given servo and saves the run
// record. A failure to save is logged, the run itself is still returned.
func RunSequence(s *servo.Servo, name string, pers persistence.Persistence, clock sequence.Clock) (persistence.SequenceRun, error) {
	start := time.Now()
	result, err := sequence.Run(name, s, clock)
	if err != nil {
		return persistence.SequenceRun{}, err
	}

	r := persistence.SequenceRun{
		ServoId:    s.GetId(),
		Sequence:   result.Sequence,
		Start:      start,
		Duration:   time.Duration(result.ElapsedMs) * time.Millisecond,
		Commands:   result.Commands,
		FinalAngle: result.FinalAngle,
	}
	if pers != nil {
		if err := pers.SaveSequenceRun(r); err != nil {
			ui.Warning("Unable to save sequence run of servo %s: %v", s.GetId(), err)
		}
	}
	return r, nil
}

// Shutdown stops the motor, returns every servo to neutral and releases all outputs.
func Shutdown(servos []*servo.Servo, m motor.Driver) {
	if m != nil {
		if err := m.Close(); err != nil {
			ui.Warning("Unable to release motor: %v", err)
		}
	}

	for _, s := range servos {
		if err := s.Stop(false); err != nil {
			ui.Warning("Unable to return servo %s to neutral: %v", s.GetId(), err)
		}
		if err := s.Close(); err != nil {
			ui.Warning("Unable to release servo %s: %v", s.GetId(), err)
		}
		servo.ServoMap.Remove(s.GetId())
	}
}
