package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"govledger/internal/validation"
	"govledger/internal/validation/adapters/legacy"
	"govledger/internal/validation/metrics"
	"govledger/internal/validation/ports"
	dErrors "govledger/pkg/domain-errors"
	"govledger/pkg/platform/audit"
)

const (
	tracerName         = "govledger/validation"
	defaultConcurrency = 8
)

// Service wraps the validation engine for embedding callers. It adds
// structured logging, metrics, tracing and an audit trail around each
// evaluation; none of these ever change a Report.
type Service struct {
	engine         *validation.Engine
	decoder        *legacy.Decoder
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher ports.AuditPublisher
	tracer         trace.Tracer
	concurrency    int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithConcurrency bounds how many operations ValidateBatch evaluates at once.
// Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithDecoder overrides the legacy payload decoder used by ValidateRaw.
func WithDecoder(decoder *legacy.Decoder) Option {
	return func(s *Service) {
		s.decoder = decoder
	}
}

func New(engine *validation.Engine, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, dErrors.New(dErrors.CodeInvalidConfig, "engine is required")
	}
	s := &Service{
		engine:      engine,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.decoder == nil {
		s.decoder = legacy.NewDecoder(engine.Catalog())
	}
	return s, nil
}

// BatchReport holds the reports of one ValidateBatch call in input order.
type BatchReport struct {
	RunID   uuid.UUID           `json:"run_id"`
	Reports []validation.Report `json:"reports"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
}

// Validate evaluates op and records the outcome.
func (s *Service) Validate(ctx context.Context, op validation.Operation) validation.Report {
	return s.validate(ctx, op, "")
}

// ValidateRaw decodes a legacy {kind, payload} pair and validates it. An
// error is returned only when the payload is not a JSON object; unusable
// values inside it are reported as validation errors.
func (s *Service) ValidateRaw(ctx context.Context, kind string, payload json.RawMessage) (validation.Report, error) {
	op, err := s.decoder.Decode(kind, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "legacy payload rejected",
			"operation_kind", kind,
			"error", err,
		)
		return validation.Report{}, err
	}
	return s.Validate(ctx, op), nil
}

// ValidateBatch evaluates ops concurrently, bounded by the configured
// concurrency, and returns their reports in input order. It stops early and
// returns the context error when ctx is cancelled.
func (s *Service) ValidateBatch(ctx context.Context, ops []validation.Operation) (BatchReport, error) {
	runID := uuid.New()
	ctx, span := s.tracer.Start(ctx, "validation.ValidateBatch",
		trace.WithAttributes(
			attribute.String("batch.run_id", runID.String()),
			attribute.Int("batch.size", len(ops)),
		),
	)
	defer span.End()

	s.metrics.ObserveBatchSize(len(ops))
	batch := BatchReport{RunID: runID, Reports: make([]validation.Report, len(ops))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, op := range ops {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batch.Reports[i] = s.validate(gctx, op, runID.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch cancelled")
		s.logger.WarnContext(ctx, "batch validation cancelled",
			"run_id", runID.String(),
			"error", err,
		)
		return BatchReport{RunID: runID}, err
	}

	for _, r := range batch.Reports {
		if r.Valid {
			batch.Valid++
		} else {
			batch.Invalid++
		}
	}
	span.SetAttributes(attribute.Int("batch.invalid", batch.Invalid))
	s.logger.InfoContext(ctx, "batch validated",
		"run_id", runID.String(),
		"operation_count", len(ops),
		"invalid_count", batch.Invalid,
	)
	s.emit(ctx, audit.Event{
		Action:        string(audit.EventBatchValidated),
		OperationKind: "batch",
		Valid:         batch.Invalid == 0,
		BatchID:       runID.String(),
	})
	return batch, nil
}

func (s *Service) validate(ctx context.Context, op validation.Operation, batchID string) validation.Report {
	kind := operationKind(op)
	ctx, span := s.tracer.Start(ctx, "validation.Validate",
		trace.WithAttributes(attribute.String("operation.kind", kind)),
	)
	defer span.End()

	start := time.Now()
	report := s.engine.Validate(op)
	s.metrics.ObserveValidateLatency(time.Since(start))

	label := metricKind(kind)
	s.metrics.IncrementOutcome(label, report.Valid)
	for _, c := range report.Failed {
		s.metrics.IncrementCheckFailure(label, string(c))
	}
	for _, c := range report.Skipped {
		s.metrics.IncrementCheckSkip(label, string(c))
	}
	span.SetAttributes(
		attribute.Bool("validation.valid", report.Valid),
		attribute.Int("validation.error_count", len(report.Errors)),
		attribute.Int("validation.skipped_count", len(report.Skipped)),
	)

	s.logSkippedCeiling(ctx, kind, report)
	if report.Valid {
		s.logger.DebugContext(ctx, "operation validated",
			"operation_kind", kind,
			"skipped_checks", checkNames(report.Skipped),
		)
	} else {
		s.logger.InfoContext(ctx, "operation rejected",
			"operation_kind", kind,
			"error_count", len(report.Errors),
			"failed_checks", checkNames(report.Failed),
		)
	}

	action := audit.EventOperationValidated
	if !report.Valid {
		action = audit.EventOperationRejected
	}
	s.emit(ctx, audit.Event{
		Action:        string(action),
		OperationKind: kind,
		Valid:         report.Valid,
		Errors:        report.Errors,
		Failed:        checkNames(report.Failed),
		Skipped:       checkNames(report.Skipped),
		BatchID:       batchID,
		SubjectIDHash: subjectHash(op),
	})
	return report
}

// logSkippedCeiling flags moments that have a ceiling but were accepted
// without the amount or line needed to check it.
func (s *Service) logSkippedCeiling(ctx context.Context, kind string, report validation.Report) {
	for _, c := range report.Skipped {
		switch c {
		case validation.CheckAvailability, validation.CheckAccrualVsCommitted, validation.CheckPaymentVsAccrued:
			s.logger.WarnContext(ctx, "ceiling check skipped: amount or line missing",
				"operation_kind", kind,
				"check", string(c),
			)
		}
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
			"operation_kind", event.OperationKind,
		)
	}
}

func operationKind(op validation.Operation) string {
	if op = validation.Deref(op); op == nil {
		return "unknown"
	}
	if k := string(op.Kind()); k != "" {
		return k
	}
	return "unknown"
}

// metricKind keeps label cardinality bounded: kinds sent by callers that the
// engine does not know share one label.
func metricKind(kind string) string {
	if k, ok := validation.ParseOperationKind(kind); ok {
		return string(k)
	}
	return "unrecognized"
}

func subjectHash(op validation.Operation) string {
	if c, ok := validation.Deref(op).(validation.IdentifierCheck); ok && c.Value != nil {
		return audit.HashSubject(*c.Value)
	}
	return ""
}

func checkNames(checks []validation.Check) []string {
	if len(checks) == 0 {
		return nil
	}
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = string(c)
	}
	return out
}
