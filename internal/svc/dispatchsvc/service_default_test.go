package dispatchsvc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yusufsyaifudin/ylog"

	"github.com/sailhq/sailpost/internal/docgen"
	"github.com/sailhq/sailpost/pkg/mailclient"
	"github.com/sailhq/sailpost/pkg/tracer"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()

	logTracer, err := ylog.NewTracer(tracer.LogData{RemoteAddr: "test", TraceID: "test"}, ylog.WithTag("tracer"))
	assert.NoError(t, err)

	return ylog.Inject(context.Background(), logTracer)
}

// fakeMailer records sends and can fail verification or selected recipients.
type fakeMailer struct {
	mu          sync.Mutex
	verifyErr   error
	failFor     map[string]error
	sent        []mailclient.Email
	verifyCalls int
}

func (f *fakeMailer) Verify(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeMailer) Send(ctx context.Context, email mailclient.Email, opts ...mailclient.SendOption) (mailclient.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[email.To]; ok {
		return mailclient.Receipt{}, err
	}

	f.sent = append(f.sent, email)
	return mailclient.Receipt{
		To:        email.To,
		MessageID: fmt.Sprintf("%d@test.local", len(f.sent)),
	}, nil
}

func (f *fakeMailer) Close() error { return nil }

type fixedStrategy struct {
	bytes []byte
	err   error
}

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Render(ctx context.Context, data docgen.CanonicalData, regNo string) ([]byte, error) {
	return f.bytes, f.err
}

type svcOption func(cfg *DefaultServiceConfig)

func newSvcForTest(t *testing.T, mailer mailclient.Client, opts ...svcOption) *DefaultService {
	t.Helper()

	pipeline, err := docgen.NewPipeline(docgen.PipelineConfig{
		Strategies: []docgen.Strategy{fixedStrategy{bytes: []byte("%PDF-test")}},
	})
	assert.NoError(t, err)

	store, err := docgen.NewFSStore(t.TempDir())
	assert.NoError(t, err)

	cfg := DefaultServiceConfig{
		Mailer:   mailer,
		Renderer: pipeline,
		Assets:   store,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	svc, err := New(cfg)
	assert.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Run("missing deps", func(t *testing.T) {
		svc, err := New(DefaultServiceConfig{})
		assert.Nil(t, svc)
		assert.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc := newSvcForTest(t, &fakeMailer{})
		assert.Equal(t, 5, svc.Config.BatchSize)
		assert.Equal(t, 1*time.Second, svc.Config.BatchDelay)
	})
}

func TestDispatchOne(t *testing.T) {
	ctx := testCtx(t)

	t.Run("sends with rendered attachment", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)

		out, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:         "asha@example.com",
			Subject:    "Your Internship Application SAIL-2025-0042",
			HTML:       "<p>Dear Asha, your registration SAIL-2025-0042 is confirmed.</p>",
			AttachForm: true,
			ApplicantData: map[string]interface{}{
				"name": "Asha Rawat",
			},
		}})

		assert.NoError(t, err)
		assert.True(t, out.Result.Success)
		assert.NotEmpty(t, out.Result.MessageID)

		assert.Len(t, mailer.sent, 1)
		assert.Len(t, mailer.sent[0].Attachments, 1)
		assert.Equal(t, FilledFormFilename, mailer.sent[0].Attachments[0].Filename)
		assert.Equal(t, []byte("%PDF-test"), mailer.sent[0].Attachments[0].Content)
	})

	t.Run("no attachment requested", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)

		out, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:      "asha@example.com",
			Subject: "Status update",
			Text:    "Your application is under review.",
		}})

		assert.NoError(t, err)
		assert.True(t, out.Result.Success)
		assert.Empty(t, mailer.sent[0].Attachments)
	})

	t.Run("verify failure is a hard precondition error", func(t *testing.T) {
		mailer := &fakeMailer{verifyErr: mailclient.ErrAuth}
		svc := newSvcForTest(t, mailer)

		_, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:      "asha@example.com",
			Subject: "Status update",
		}})

		assert.Error(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("transport failure becomes failed result with user message", func(t *testing.T) {
		mailer := &fakeMailer{failFor: map[string]error{
			"asha@example.com": fmt.Errorf("%w: rcpt: 550 mailbox unavailable", mailclient.ErrRecipient),
		}}
		svc := newSvcForTest(t, mailer)

		out, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:      "asha@example.com",
			Subject: "Status update",
		}})

		assert.NoError(t, err)
		assert.False(t, out.Result.Success)
		assert.Equal(t, "Email rejected by recipient server. Please check the recipient email address.", out.Result.Error)
	})
}

func TestDispatchOneDegradedAttachment(t *testing.T) {
	ctx := testCtx(t)

	exhausted, err := docgen.NewPipeline(docgen.PipelineConfig{
		Strategies: []docgen.Strategy{fixedStrategy{err: fmt.Errorf("render failed")}},
	})
	assert.NoError(t, err)

	t.Run("blank template path when rendering exhausted", func(t *testing.T) {
		dir := t.TempDir()
		store, err := docgen.NewFSStore(dir)
		assert.NoError(t, err)

		writeTemplate(t, dir)

		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer, func(cfg *DefaultServiceConfig) {
			cfg.Renderer = exhausted
			cfg.Assets = store
		})

		out, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:         "asha@example.com",
			Subject:    "Your Internship Application",
			AttachForm: true,
		}})

		assert.NoError(t, err)
		assert.True(t, out.Result.Success)
		assert.Len(t, mailer.sent[0].Attachments, 1)
		assert.Equal(t, BlankFormFilename, mailer.sent[0].Attachments[0].Filename)
		assert.Equal(t, store.Path(docgen.TemplateAsset), mailer.sent[0].Attachments[0].Path)
	})

	t.Run("no attachment at all when template is missing", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer, func(cfg *DefaultServiceConfig) {
			cfg.Renderer = exhausted
		})

		out, err := svc.DispatchOne(ctx, InputDispatchOne{Request: DispatchRequest{
			To:         "asha@example.com",
			Subject:    "Your Internship Application",
			AttachForm: true,
		}})

		assert.NoError(t, err)
		assert.True(t, out.Result.Success)
		assert.Empty(t, mailer.sent[0].Attachments)
	})
}

func TestDispatchBatch(t *testing.T) {
	ctx := testCtx(t)

	requests := func(n int) []DispatchRequest {
		out := make([]DispatchRequest, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, DispatchRequest{
				To:      fmt.Sprintf("applicant%02d@example.com", i),
				Subject: "Your Internship Application",
				Text:    "status update",
			})
		}
		return out
	}

	t.Run("results keep input order and cover every item", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)
		svc.sleep = func(d time.Duration) {}

		out, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: requests(7)})
		assert.NoError(t, err)

		report := out.Report
		assert.Equal(t, 7, report.Total)
		assert.Equal(t, 7, report.Sent)
		assert.Equal(t, 0, report.Failed)
		assert.Len(t, report.Results, 7)

		for i, res := range report.Results {
			assert.Equal(t, fmt.Sprintf("applicant%02d@example.com", i), res.To)
			assert.True(t, res.Success)
		}
	})

	t.Run("item failure is isolated", func(t *testing.T) {
		mailer := &fakeMailer{failFor: map[string]error{
			"applicant03@example.com": fmt.Errorf("%w: dial: refused", mailclient.ErrConnection),
		}}
		svc := newSvcForTest(t, mailer)
		svc.sleep = func(d time.Duration) {}

		out, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: requests(6)})
		assert.NoError(t, err)

		report := out.Report
		assert.Equal(t, 6, report.Total)
		assert.Equal(t, 5, report.Sent)
		assert.Equal(t, 1, report.Failed)

		assert.False(t, report.Results[3].Success)
		assert.Equal(t, "Failed to connect to email server. Please check your network connection.", report.Results[3].Error)
		assert.True(t, report.Results[2].Success)
		assert.True(t, report.Results[4].Success)
	})

	t.Run("delay between windows, never after the last", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)

		var delays []time.Duration
		svc.sleep = func(d time.Duration) {
			delays = append(delays, d)
		}

		// 12 requests with window size 5 gives windows of 5, 5, 2
		out, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: requests(12)})
		assert.NoError(t, err)
		assert.Equal(t, 12, out.Report.Total)

		assert.Len(t, delays, 2)
		for _, d := range delays {
			assert.Equal(t, 1*time.Second, d)
		}
	})

	t.Run("single window has no delay", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)

		var delays int
		svc.sleep = func(d time.Duration) { delays++ }

		_, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: requests(5)})
		assert.NoError(t, err)
		assert.Equal(t, 0, delays)
	})

	t.Run("verify runs once and short-circuits the batch", func(t *testing.T) {
		mailer := &fakeMailer{verifyErr: mailclient.ErrConnection}
		svc := newSvcForTest(t, mailer)
		svc.sleep = func(d time.Duration) {}

		_, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: requests(10)})
		assert.Error(t, err)
		assert.Equal(t, 1, mailer.verifyCalls)
		assert.Empty(t, mailer.sent)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		svc := newSvcForTest(t, &fakeMailer{})

		_, err := svc.DispatchBatch(ctx, InputDispatchBatch{})
		assert.Error(t, err)
	})

	t.Run("invalid item reported in place", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newSvcForTest(t, mailer)
		svc.sleep = func(d time.Duration) {}

		reqs := requests(3)
		reqs[1].To = "" // invalid

		out, err := svc.DispatchBatch(ctx, InputDispatchBatch{Requests: reqs})
		assert.NoError(t, err)
		assert.Equal(t, 2, out.Report.Sent)
		assert.Equal(t, 1, out.Report.Failed)
		assert.False(t, out.Report.Results[1].Success)
	})
}

func TestRenderDocument(t *testing.T) {
	ctx := testCtx(t)

	t.Run("returns artifact and winning strategy", func(t *testing.T) {
		svc := newSvcForTest(t, &fakeMailer{})

		out, err := svc.RenderDocument(ctx, InputRenderDocument{
			ApplicantData:  map[string]interface{}{"name": "Asha Rawat"},
			RegistrationNo: "SAIL-2025-0042",
		})

		assert.NoError(t, err)
		assert.Equal(t, []byte("%PDF-test"), out.Document)
		assert.Equal(t, "fixed", out.Strategy)
	})

	t.Run("nil artifact on exhaustion", func(t *testing.T) {
		exhausted, err := docgen.NewPipeline(docgen.PipelineConfig{
			Strategies: []docgen.Strategy{fixedStrategy{err: fmt.Errorf("render failed")}},
		})
		assert.NoError(t, err)

		svc := newSvcForTest(t, &fakeMailer{}, func(cfg *DefaultServiceConfig) {
			cfg.Renderer = exhausted
		})

		out, err := svc.RenderDocument(ctx, InputRenderDocument{})
		assert.NoError(t, err)
		assert.Nil(t, out.Document)
		assert.Empty(t, out.Strategy)
	})
}

func writeTemplate(t *testing.T, dir string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, docgen.TemplateAsset), []byte("%PDF-1.4 blank"), 0o644)
	assert.NoError(t, err)
}
