package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/observability"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

// ErrUnavailable is returned while the model could not be set up.
var ErrUnavailable = errors.New("prediction unavailable")

type Prediction struct {
	simulator.Result
	Display  string                 `json:"magnitude_display"`
	Features [InputFeatures]float64 `json:"features"`
}

type Service struct {
	network  *Network
	setupErr error
	scaler   Scaler
	rng      simulator.Source
	clock    clockwork.Clock
	delay    time.Duration
	metrics  *observability.Metrics
}

type Option func(*serviceOptions)

type serviceOptions struct {
	build  func() (*Network, error)
	rng    simulator.Source
	clock  clockwork.Clock
	scaler Scaler
}

func WithRand(rng simulator.Source) Option {
	return func(o *serviceOptions) { o.rng = rng }
}

func WithClock(clock clockwork.Clock) Option {
	return func(o *serviceOptions) { o.clock = clock }
}

func WithScaler(s Scaler) Option {
	return func(o *serviceOptions) { o.scaler = s }
}

// WithNetworkBuilder replaces model setup, e.g. to simulate a failure.
func WithNetworkBuilder(build func() (*Network, error)) Option {
	return func(o *serviceOptions) { o.build = build }
}

// NewService sets up the model. A setup failure is logged and leaves the
// service running with predictions disabled.
func NewService(delay time.Duration, metrics *observability.Metrics, opts ...Option) *Service {
	o := serviceOptions{
		build:  func() (*Network, error) { return NewNetwork(Topology) },
		rng:    simulator.Entropy,
		clock:  clockwork.NewRealClock(),
		scaler: DefaultScaler,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		scaler:  o.scaler,
		rng:     o.rng,
		clock:   o.clock,
		delay:   delay,
		metrics: metrics,
	}

	network, err := o.build()
	if err != nil {
		s.setupErr = err
		slog.Error("model setup failed, predictions disabled", "error", err)
		metrics.PredictionEnabled.Set(0)
		return s
	}

	s.network = network
	metrics.PredictionEnabled.Set(1)
	slog.Info("model initialized", "layers", len(network.Layers()), "params", network.ParamCount())
	return s
}

// Ready reports why predictions are disabled, or nil.
func (s *Service) Ready() error {
	if s.network == nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, s.setupErr)
	}
	return nil
}

func (s *Service) Network() *Network {
	return s.network
}

// Predict validates the input, waits out the inference delay, then runs the
// simulator. Concurrent calls are independent of each other.
func (s *Service) Predict(ctx context.Context, lat, lng, depth float64) (*Prediction, error) {
	if err := s.Ready(); err != nil {
		s.metrics.PredictionErrors.WithLabelValues("unavailable").Inc()
		return nil, err
	}
	if err := simulator.Validate(lat, lng, depth); err != nil {
		s.metrics.PredictionErrors.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	start := s.clock.Now()
	features := s.scaler.Normalize(lat, lng, depth)

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			s.metrics.PredictionErrors.WithLabelValues("canceled").Inc()
			return nil, ctx.Err()
		case <-s.clock.After(s.delay):
		}
	}

	res := simulator.Simulate(s.rng, lat, lng, depth)

	s.metrics.Predictions.WithLabelValues(string(res.Severity)).Inc()
	s.metrics.PredictionDuration.Observe(s.clock.Since(start).Seconds())
	slog.Debug("prediction served",
		"lat", lat, "lng", lng, "depth", depth,
		"magnitude", res.Magnitude, "in_zone", res.InSeismicZone)

	return &Prediction{
		Result:   res,
		Display:  strconv.FormatFloat(res.Magnitude, 'f', 1, 64),
		Features: features,
	}, nil
}
