package vin

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"profitlogic/internal/metrics"
	"profitlogic/internal/model"
)

// Strategy names accepted by configuration
const (
	StrategyStatic = "static"
	StrategyVPIC   = "vpic"
)

// Service coalesces concurrent decodes of the same VIN and falls back
// to the offline tables when the primary decoder fails.
type Service struct {
	strategy string
	primary  Decoder
	fallback Decoder
	group    singleflight.Group
}

// NewService wires a primary decoder with an optional fallback
func NewService(strategy string, primary, fallback Decoder) *Service {
	return &Service{strategy: strategy, primary: primary, fallback: fallback}
}

// Strategy configured primary strategy name
func (s *Service) Strategy() string {
	return s.strategy
}

// Decode validates and decodes a VIN
func (s *Service) Decode(ctx context.Context, raw string) (model.DecodedVIN, error) {
	v, err := Normalize(raw)
	if err != nil {
		metrics.VINDecodes.WithLabelValues(s.strategy, "invalid").Inc()
		return model.DecodedVIN{}, err
	}

	result, err, _ := s.group.Do(v, func() (interface{}, error) {
		return s.decode(ctx, v)
	})
	if err != nil {
		return model.DecodedVIN{}, err
	}
	return result.(model.DecodedVIN), nil
}

func (s *Service) decode(ctx context.Context, v string) (model.DecodedVIN, error) {
	decoded, err := s.primary.Decode(ctx, v)
	if err == nil {
		metrics.VINDecodes.WithLabelValues(s.strategy, "ok").Inc()
		return decoded, nil
	}
	if s.fallback == nil {
		metrics.VINDecodes.WithLabelValues(s.strategy, "error").Inc()
		return model.DecodedVIN{}, err
	}

	log.Printf("[VIN] %s decode failed for %s: %v, using static tables", s.strategy, v, err)
	metrics.VINDecodes.WithLabelValues(s.strategy, "fallback").Inc()
	return s.fallback.Decode(ctx, v)
}
