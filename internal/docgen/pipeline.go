package docgen

import (
	"context"
	"fmt"

	"github.com/yusufsyaifudin/ylog"
	"go.opentelemetry.io/otel/trace"

	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/pkg/validator"
)

// Strategy is one self-contained way of producing document bytes from
// canonical applicant data.
type Strategy interface {
	Name() string
	Render(ctx context.Context, data CanonicalData, regNo string) ([]byte, error)
}

type PipelineConfig struct {
	Strategies []Strategy `validate:"required,min=1"`
}

// Pipeline runs rendering strategies in fixed priority order and returns
// the first complete artifact. Strategy errors never escape the pipeline.
type Pipeline struct {
	Config PipelineConfig
}

func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	err := validator.Validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("render pipeline config error: %w", err)
	}

	return &Pipeline{Config: cfg}, nil
}

// Render returns the artifact bytes, or nil when every strategy failed.
func (p *Pipeline) Render(ctx context.Context, data CanonicalData, regNo string) []byte {
	out, _ := p.RenderDetailed(ctx, data, regNo)
	return out
}

// RenderDetailed also returns the per-strategy attempt trace so callers
// and tests can inspect which fallback produced the artifact.
func (p *Pipeline) RenderDetailed(ctx context.Context, data CanonicalData, regNo string) (out []byte, attempts []Result) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "docgen.Render")
	defer span.End()

	for _, strategy := range p.Config.Strategies {
		b, err := strategy.Render(ctx, data, regNo)

		res := Ok(strategy.Name(), b)
		switch {
		case err != nil:
			res = Failed(strategy.Name(), err)
		case len(b) == 0:
			res = Failed(strategy.Name(), fmt.Errorf("strategy returned empty artifact"))
		}

		attempts = append(attempts, res)
		if !res.OK() {
			ylog.Error(ctx, "render strategy failed, falling back",
				ylog.KV("strategy", strategy.Name()),
				ylog.KV("error", res.Err),
			)
			continue
		}

		ylog.Info(ctx, "document rendered",
			ylog.KV("strategy", strategy.Name()),
			ylog.KV("size", len(res.Bytes)),
		)

		out = res.Bytes
		return
	}

	ylog.Error(ctx, "all render strategies exhausted", ylog.KV("attempts", len(attempts)))
	return
}
