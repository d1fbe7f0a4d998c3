package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "sharaya-service/kv-store"

// kvStore wraps a backend with a span and Prometheus observations per call.
type kvStore struct {
	next    repository.KeyValueStore
	metrics *metrics.MetricsManager
	tracer  trace.Tracer
	backend string
}

func NewKVStore(next repository.KeyValueStore, backend string, m *metrics.MetricsManager) repository.KeyValueStore {
	return &kvStore{
		next:    next,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
		backend: backend,
	}
}

func (s *kvStore) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "kv."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("kv.backend", s.backend),
			attribute.String("kv.key", key),
		),
	)
}

func (s *kvStore) finish(span trace.Span, op string, started time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if s.metrics != nil {
		s.metrics.ObserveStorageOp(op, started, err)
	}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	ctx, span := s.start(ctx, "get", key)
	started := time.Now()

	val, err := s.next.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		span.SetAttributes(attribute.Bool("kv.found", false))
		s.finish(span, "get", started, nil)
		return "", err
	}
	if err == nil {
		span.SetAttributes(attribute.Bool("kv.found", true), attribute.Int("kv.value_bytes", len(val)))
	}
	s.finish(span, "get", started, err)
	return val, err
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	ctx, span := s.start(ctx, "set", key)
	span.SetAttributes(attribute.Int("kv.value_bytes", len(value)))
	started := time.Now()

	err := s.next.Set(ctx, key, value)
	s.finish(span, "set", started, err)
	return err
}

func (s *kvStore) Remove(ctx context.Context, key string) error {
	ctx, span := s.start(ctx, "remove", key)
	started := time.Now()

	err := s.next.Remove(ctx, key)
	s.finish(span, "remove", started, err)
	return err
}
