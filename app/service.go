// Package app assembles the advisor and its collaborators from the
// configuration.
package app

import (
	"context"
	"fmt"

	"github.com/pitlane-analytics/pitwall/config"
	"github.com/pitlane-analytics/pitwall/core/advisor"
	coremetrics "github.com/pitlane-analytics/pitwall/core/metrics"
	"github.com/pitlane-analytics/pitwall/core/predict"
	"github.com/pitlane-analytics/pitwall/infra/logger"
	"github.com/pitlane-analytics/pitwall/infra/metrics"
	"github.com/pitlane-analytics/pitwall/infra/modelstore"
	"github.com/pitlane-analytics/pitwall/infra/mqtt"
)

// Service runs the advisor behind the configured listener and metrics
// surfaces.
type Service struct {
	Advisor *advisor.Advisor

	cfg      *config.Config
	listener *mqtt.Listener
	log      logger.Logger
}

// NewAdvisor builds the recommendation pipeline alone, without listener or
// metrics server. Used by one-shot commands.
func NewAdvisor(cfg *config.Config) *advisor.Advisor {
	return buildAdvisor(cfg, coremetrics.NopSink{})
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.PredictionSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.PredictionSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	svc := &Service{Advisor: buildAdvisor(cfg, sink), cfg: cfg, log: logg}
	if cfg.MQTT.Enabled {
		listener, err := mqtt.NewListener(cfg.MQTT, svc.Advisor)
		if err != nil {
			return nil, fmt.Errorf("mqtt listener: %w", err)
		}
		svc.listener = listener
	}
	return svc, nil
}

func buildAdvisor(cfg *config.Config, sink coremetrics.PredictionSink) *advisor.Advisor {
	store := modelstore.New(cfg.ModelDir)
	var opts []predict.Option
	if cfg.Fallback {
		opts = append(opts, predict.WithFallback())
	}
	logg := logger.New("advisor")
	engine := predict.New(store, cfg.Policy, logg, opts...)
	return advisor.New(engine, cfg.Policy, sink, logg)
}

// Run starts the configured surfaces and blocks until the context is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.listener != nil {
		if err := s.listener.Start(); err != nil {
			return err
		}
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.listener != nil {
		s.listener.Close()
	}
	return nil
}
