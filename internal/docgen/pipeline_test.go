package docgen

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yusufsyaifudin/ylog"

	"github.com/sailhq/sailpost/pkg/tracer"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()

	logTracer, err := ylog.NewTracer(tracer.LogData{RemoteAddr: "test", TraceID: "test"}, ylog.WithTag("tracer"))
	assert.NoError(t, err)

	return ylog.Inject(context.Background(), logTracer)
}

type fakeStrategy struct {
	name  string
	bytes []byte
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Render(ctx context.Context, data CanonicalData, regNo string) ([]byte, error) {
	f.calls++
	return f.bytes, f.err
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires at least one strategy", func(t *testing.T) {
		p, err := NewPipeline(PipelineConfig{})
		assert.Nil(t, p)
		assert.Error(t, err)
	})
}

func TestPipelineRender(t *testing.T) {
	ctx := testCtx(t)

	t.Run("first success short-circuits", func(t *testing.T) {
		first := &fakeStrategy{name: "rich", bytes: []byte("%PDF-rich")}
		second := &fakeStrategy{name: "structured", bytes: []byte("%PDF-structured")}

		p, err := NewPipeline(PipelineConfig{Strategies: []Strategy{first, second}})
		assert.NoError(t, err)

		out := p.Render(ctx, CanonicalData{}, "SAIL-2025-0042")
		assert.Equal(t, []byte("%PDF-rich"), out)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("error falls through to next strategy", func(t *testing.T) {
		first := &fakeStrategy{name: "rich", err: fmt.Errorf("browser launch failed")}
		second := &fakeStrategy{name: "structured", bytes: []byte("%PDF-structured")}

		p, err := NewPipeline(PipelineConfig{Strategies: []Strategy{first, second}})
		assert.NoError(t, err)

		out, attempts := p.RenderDetailed(ctx, CanonicalData{}, "")
		assert.Equal(t, []byte("%PDF-structured"), out)
		assert.Len(t, attempts, 2)
		assert.False(t, attempts[0].OK())
		assert.True(t, attempts[1].OK())
	})

	t.Run("empty bytes treated as failure", func(t *testing.T) {
		first := &fakeStrategy{name: "rich", bytes: []byte{}}
		second := &fakeStrategy{name: "template", bytes: []byte("%PDF-template")}

		p, err := NewPipeline(PipelineConfig{Strategies: []Strategy{first, second}})
		assert.NoError(t, err)

		out := p.Render(ctx, CanonicalData{}, "")
		assert.Equal(t, []byte("%PDF-template"), out)
	})

	t.Run("exhaustion yields nil, never an error", func(t *testing.T) {
		first := &fakeStrategy{name: "rich", err: fmt.Errorf("launch failed")}
		second := &fakeStrategy{name: "structured", err: fmt.Errorf("font failed")}
		third := &fakeStrategy{name: "template", err: fmt.Errorf("asset missing")}

		p, err := NewPipeline(PipelineConfig{Strategies: []Strategy{first, second, third}})
		assert.NoError(t, err)

		out, attempts := p.RenderDetailed(ctx, CanonicalData{}, "")
		assert.Nil(t, out)
		assert.Len(t, attempts, 3)
		for _, a := range attempts {
			assert.False(t, a.OK())
		}
	})
}
