package dispatchsvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yusufsyaifudin/ylog"
	"go.opentelemetry.io/otel/trace"

	"github.com/sailhq/sailpost/internal/docgen"
	"github.com/sailhq/sailpost/pkg/mailclient"
	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/pkg/validator"
)

const (
	defaultBatchSize  = 5
	defaultBatchDelay = 1 * time.Second
)

type DefaultServiceConfig struct {
	Mailer   mailclient.Client `validate:"required"`
	Renderer *docgen.Pipeline  `validate:"required"`
	Assets   docgen.AssetStore `validate:"required"`

	// BatchSize is the dispatch window width, BatchDelay the pause between
	// windows. Zero values take the defaults (5 and 1s).
	BatchSize  int           `validate:"min=0"`
	BatchDelay time.Duration `validate:"min=0"`
}

type DefaultService struct {
	Config DefaultServiceConfig

	// sleep is swappable so window pacing is testable without waiting.
	sleep func(d time.Duration)
}

var _ Service = (*DefaultService)(nil)

func New(cfg DefaultServiceConfig) (*DefaultService, error) {
	err := validator.Validate(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = defaultBatchDelay
	}

	return &DefaultService{
		Config: cfg,
		sleep:  time.Sleep,
	}, nil
}

// DispatchOne verifies the transport once and delivers a single email.
func (d *DefaultService) DispatchOne(ctx context.Context, input InputDispatchOne) (out OutDispatchOne, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "dispatchsvc.DispatchOne")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error: %w", err)
		return
	}

	err = d.Config.Mailer.Verify(ctx)
	if err != nil {
		err = fmt.Errorf("mail transport verification failed: %w", err)
		return
	}

	out = OutDispatchOne{
		Result: d.dispatchOne(ctx, input.Request),
	}
	return
}

// DispatchBatch partitions requests into fixed-size windows. Within a window
// every item is dispatched concurrently and the batch waits for the window to
// settle before starting the next one. A delay separates windows, never
// following the last. Results keep input order, an item failure never aborts
// the batch.
func (d *DefaultService) DispatchBatch(ctx context.Context, input InputDispatchBatch) (out OutDispatchBatch, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "dispatchsvc.DispatchBatch")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error: %w", err)
		return
	}

	err = d.Config.Mailer.Verify(ctx)
	if err != nil {
		err = fmt.Errorf("mail transport verification failed: %w", err)
		return
	}

	requests := input.Requests
	results := make([]DispatchResult, len(requests))

	for start := 0; start < len(requests); start += d.Config.BatchSize {
		end := start + d.Config.BatchSize
		if end > len(requests) {
			end = len(requests)
		}

		ylog.Info(ctx, "dispatching window",
			ylog.KV("from", start),
			ylog.KV("to", end-1),
			ylog.KV("total", len(requests)),
		)

		wg := &sync.WaitGroup{}
		for i := start; i < end; i++ {
			wg.Add(1)

			go func(idx int, req DispatchRequest) {
				defer wg.Done()
				results[idx] = d.dispatchOne(ctx, req)
			}(i, requests[i])
		}

		wg.Wait()

		if end < len(requests) {
			d.sleep(d.Config.BatchDelay)
		}
	}

	report := BatchReport{
		Results: results,
		Total:   len(results),
	}
	for _, res := range results {
		if res.Success {
			report.Sent++
		} else {
			report.Failed++
		}
	}

	out = OutDispatchBatch{
		Report: report,
	}
	return
}

// RenderDocument exposes the render pipeline directly, for callers that need
// just the artifact (diagnostic endpoints).
func (d *DefaultService) RenderDocument(ctx context.Context, input InputRenderDocument) (out OutRenderDocument, err error) {
	data := docgen.Normalize(input.ApplicantData)

	document, attempts := d.Config.Renderer.RenderDetailed(ctx, data, input.RegistrationNo)
	out = OutRenderDocument{
		Document: document,
	}

	for _, attempt := range attempts {
		if attempt.OK() {
			out.Strategy = attempt.Strategy
			break
		}
	}
	return
}

// dispatchOne renders, attaches and delivers one request. Every failure is
// converted into a failed DispatchResult, nothing escapes this boundary.
func (d *DefaultService) dispatchOne(ctx context.Context, req DispatchRequest) DispatchResult {
	if err := validator.Validate(req); err != nil {
		return DispatchResult{
			To:    req.To,
			Error: "invalid request: missing recipient or subject",
		}
	}

	email := mailclient.Email{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	}

	if req.AttachForm {
		email.Attachments = d.buildFormAttachment(ctx, req)
	}

	receipt, err := d.Config.Mailer.Send(ctx, email)
	if err != nil {
		ylog.Error(ctx, "send email error",
			ylog.KV("to", req.To),
			ylog.KV("error", err),
		)

		return DispatchResult{
			To:    req.To,
			Error: mailclient.UserMessage(err),
		}
	}

	return DispatchResult{
		To:        receipt.To,
		Success:   true,
		MessageID: receipt.MessageID,
	}
}

// buildFormAttachment renders the form and degrades to the blank template
// file, then to no attachment at all. It never fails the dispatch.
func (d *DefaultService) buildFormAttachment(ctx context.Context, req DispatchRequest) []mailclient.Attachment {
	regNo := req.RegistrationNo
	if regNo == "" {
		regNo = docgen.ExtractRegistrationNo(req.HTML + req.Text)
	}

	data := docgen.Normalize(req.ApplicantData)

	document := d.Config.Renderer.Render(ctx, data, regNo)
	if len(document) > 0 {
		return []mailclient.Attachment{{
			Filename:    FilledFormFilename,
			ContentType: "application/pdf",
			Content:     document,
		}}
	}

	if d.Config.Assets.Exists(docgen.TemplateAsset) {
		ylog.Info(ctx, "attaching blank template, form rendering exhausted", ylog.KV("to", req.To))

		return []mailclient.Attachment{{
			Filename:    BlankFormFilename,
			ContentType: "application/pdf",
			Path:        d.Config.Assets.Path(docgen.TemplateAsset),
		}}
	}

	ylog.Error(ctx, "no attachment available, sending without form", ylog.KV("to", req.To))
	return nil
}
