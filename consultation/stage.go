package consultation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/observability"
)

// stageRun tracks one stage: its span, timing and final report.
type stageRun struct {
	svc      *Service
	ctx      context.Context
	span     trace.Span
	res      *Result
	name     string
	provider string
	status   string
	errText  string
	start    time.Time
}

func (s *Service) startStage(ctx context.Context, res *Result, name string) *stageRun {
	ctx, span := observability.StartSpan(ctx, observability.SpanStagePrefix+name)
	observability.SetSpanAttribute(ctx, observability.AttrStage, name)
	return &stageRun{svc: s, ctx: ctx, span: span, res: res, name: name, start: time.Now()}
}

func (r *stageRun) ok() { r.finish(StatusOK, "") }

func (r *stageRun) skip(provider, reason string) {
	r.provider = provider
	r.finish(StatusSkipped, reason)
}

func (r *stageRun) fail(err error) {
	observability.SetSpanError(r.ctx, err)
	r.finish(StatusFailed, err.Error())
}

func (r *stageRun) finish(status, detail string) {
	r.status = status
	r.errText = detail
}

// end records the report on the result, then closes the span.
func (r *stageRun) end() {
	d := time.Since(r.start)
	report := StageReport{
		Stage:      r.name,
		Status:     r.status,
		Provider:   r.provider,
		Error:      r.errText,
		DurationMs: d.Milliseconds(),
	}
	if r.res != nil {
		r.res.Stages = append(r.res.Stages, report)
	}

	observability.SetSpanAttribute(r.ctx, observability.AttrStatus, r.status)
	if r.provider != "" {
		observability.SetSpanAttribute(r.ctx, observability.AttrProvider, r.provider)
	}
	r.svc.metrics.RecordStage(r.ctx, r.name, r.provider, r.status, d)

	fields := logger.Fields(
		logger.FieldStage, r.name,
		logger.FieldStatus, r.status,
		logger.FieldProvider, r.provider,
		logger.FieldDuration, d.Milliseconds(),
	)
	log := r.svc.log.WithContext(r.ctx)
	if r.status == StatusFailed {
		fields[logger.FieldError] = r.errText
		log.Warn("consultation stage degraded", fields)
	} else {
		log.Debug("consultation stage done", fields)
	}
	r.span.End()
}
