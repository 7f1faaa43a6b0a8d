package usecase

import (
	"context"
	"errors"

	"case-analysis/pkg/llmprovider"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess         = "success"
	outcomeInvalidRequest  = "invalid_request"
	outcomeAuthentication  = "authentication_error"
	outcomePayloadTooLarge = "payload_too_large"
	outcomeCanceled        = "canceled"
	outcomeProviderError   = "provider_error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	updates  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "case_analysis",
			Name:      "requests_total",
			Help:      "Analysis requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "case_analysis",
			Name:      "request_duration_seconds",
			Help:      "Time spent waiting for the provider to finish.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		}, []string{"provider"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "case_analysis",
			Name:      "stream_updates_total",
			Help:      "Partial text updates delivered to callers.",
		}, []string{"provider"}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.updates} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func outcomeOf(err error) string {
	var authErr *llmprovider.AuthenticationError
	var tooLarge *llmprovider.PayloadTooLargeError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &authErr):
		return outcomeAuthentication
	case errors.As(err, &tooLarge):
		return outcomePayloadTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case errors.Is(err, llmprovider.ErrUnsupportedProvider):
		return outcomeInvalidRequest
	default:
		return outcomeProviderError
	}
}
