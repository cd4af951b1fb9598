package handlermail

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"

	"github.com/sailhq/sailpost/internal/svc/dispatchsvc"
	"github.com/sailhq/sailpost/pkg/respbuilder"
)

type fakeDispatch struct {
	batchOut dispatchsvc.OutDispatchBatch
	batchErr error
}

func (f *fakeDispatch) DispatchOne(ctx context.Context, input dispatchsvc.InputDispatchOne) (out dispatchsvc.OutDispatchOne, err error) {
	out = dispatchsvc.OutDispatchOne{
		Result: dispatchsvc.DispatchResult{To: input.Request.To, Success: true},
	}
	return
}

func (f *fakeDispatch) DispatchBatch(ctx context.Context, input dispatchsvc.InputDispatchBatch) (out dispatchsvc.OutDispatchBatch, err error) {
	return f.batchOut, f.batchErr
}

func (f *fakeDispatch) RenderDocument(ctx context.Context, input dispatchsvc.InputRenderDocument) (out dispatchsvc.OutRenderDocument, err error) {
	return
}

func newBulkRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emails/bulk", bytes.NewReader(payload))
	ctx := respbuilder.Inject(req.Context(), respbuilder.Tracer{
		RemoteAddr: "test",
		AppTraceID: "trace-test",
	})
	return req.WithContext(ctx)
}

func TestSendBulkEmails(t *testing.T) {
	t.Run("report is the top-level body", func(t *testing.T) {
		svc := &fakeDispatch{
			batchOut: dispatchsvc.OutDispatchBatch{
				Report: dispatchsvc.BatchReport{
					Results: []dispatchsvc.DispatchResult{
						{To: "a@mail.test", Success: true, MessageID: "id-1"},
						{To: "b@mail.test", Success: false, Error: "Failed to connect to email server. Please check your network connection."},
					},
					Total:  2,
					Sent:   1,
					Failed: 1,
				},
			},
		}

		h, err := NewHandler(HandlerConfig{DispatchService: svc})
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := newBulkRequest(t, BulkEmailReq{Emails: []EmailReq{
			{To: "a@mail.test", Subject: "s"},
			{To: "b@mail.test", Subject: "s"},
		}})

		h.SendBulkEmails()(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "trace-test", rec.Header().Get("Tracer-ID"))

		var body map[string]interface{}
		err = json.Unmarshal(rec.Body.Bytes(), &body)
		assert.NoError(t, err)

		// success, message, results and summary sit at the top level of
		// the response, not inside a data envelope
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Bulk email sending completed. 1 sent, 1 failed.", body["message"])
		assert.NotContains(t, body, "data")

		results, ok := body["results"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, results, 2)

		summary, ok := body["summary"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, float64(2), summary["total"])
		assert.Equal(t, float64(1), summary["sent"])
		assert.Equal(t, float64(1), summary["failed"])
	})

	t.Run("empty emails array rejected", func(t *testing.T) {
		h, err := NewHandler(HandlerConfig{DispatchService: &fakeDispatch{}})
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := newBulkRequest(t, BulkEmailReq{})

		h.SendBulkEmails()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
