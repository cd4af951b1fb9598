package handlermail

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/ylog"

	"github.com/sailhq/sailpost/internal/svc/dispatchsvc"
	"github.com/sailhq/sailpost/pkg/respbuilder"
	"github.com/sailhq/sailpost/pkg/validator"
)

type HandlerConfig struct {
	DispatchService dispatchsvc.Service `validate:"required"`
}

type Handler struct {
	Config HandlerConfig
}

func NewHandler(conf HandlerConfig) (*Handler, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &Handler{Config: conf}, nil
}

type EmailReq struct {
	To             string                 `json:"to"`
	Subject        string                 `json:"subject"`
	HTML           string                 `json:"html"`
	Text           string                 `json:"text"`
	AttachTemplate bool                   `json:"attachTemplate"`
	ApplicantData  map[string]interface{} `json:"applicantData"`
	RegistrationNo string                 `json:"registrationNumber"`
}

func (e EmailReq) toDispatchRequest() dispatchsvc.DispatchRequest {
	return dispatchsvc.DispatchRequest{
		To:             e.To,
		Subject:        e.Subject,
		HTML:           e.HTML,
		Text:           e.Text,
		AttachForm:     e.AttachTemplate,
		ApplicantData:  e.ApplicantData,
		RegistrationNo: e.RegistrationNo,
	}
}

type SendEmailResp struct {
	Result dispatchsvc.DispatchResult `json:"result"`
}

// SendEmail delivers one email, optionally with the rendered application form attached.
// Path         : POST /api/v1/emails
// Request Body : EmailReq
// Response     : SendEmailResp
func (h *Handler) SendEmail() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reqBody, err := decodeBody[EmailReq](r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.Config.DispatchService.DispatchOne(ctx, dispatchsvc.InputDispatchOne{
			Request: reqBody.toDispatchRequest(),
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrPreconditionFailed, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		if !out.Result.Success {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, errors.New(out.Result.Error))
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		resp := respbuilder.Success(ctx, SendEmailResp{Result: out.Result})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type BulkEmailReq struct {
	Emails []EmailReq `json:"emails"`
}

type BulkEmailResp struct {
	Success bool                         `json:"success"`
	Message string                       `json:"message"`
	Results []dispatchsvc.DispatchResult `json:"results"`
	Summary BulkEmailSummary             `json:"summary"`
}

type BulkEmailSummary struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendBulkEmails delivers a batch of emails in paced windows and reports
// one outcome per recipient, in request order.
// Path         : POST /api/v1/emails/bulk
// Request Body : BulkEmailReq
// Response     : BulkEmailResp
func (h *Handler) SendBulkEmails() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reqBody, err := decodeBody[BulkEmailReq](r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if len(reqBody.Emails) == 0 {
			err = fmt.Errorf("emails array is required and must not be empty")
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		requests := make([]dispatchsvc.DispatchRequest, 0, len(reqBody.Emails))
		for _, email := range reqBody.Emails {
			requests = append(requests, email.toDispatchRequest())
		}

		out, err := h.Config.DispatchService.DispatchBatch(ctx, dispatchsvc.InputDispatchBatch{
			Requests: requests,
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrPreconditionFailed, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		// the bulk report is written at the top level, not inside the
		// usual data envelope, to keep the published response contract
		report := out.Report
		respBody := BulkEmailResp{
			Success: true,
			Message: fmt.Sprintf("Bulk email sending completed. %d sent, %d failed.", report.Sent, report.Failed),
			Results: report.Results,
			Summary: BulkEmailSummary{
				Total:  report.Total,
				Sent:   report.Sent,
				Failed: report.Failed,
			},
		}

		respbuilder.WriteJSON(http.StatusOK, w, r, respBody)
	}

	return handler
}

type TestEmailReq struct {
	To string `json:"to"`
}

// TestEmail sends a canned message to verify the transport end to end.
// Path         : POST /api/v1/test/email
// Request Body : TestEmailReq
func (h *Handler) TestEmail() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reqBody, err := decodeBody[TestEmailReq](r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.Config.DispatchService.DispatchOne(ctx, dispatchsvc.InputDispatchOne{
			Request: dispatchsvc.DispatchRequest{
				To:      reqBody.To,
				Subject: "SAIL test email",
				Text:    "This is a test email from the SAIL internship portal.",
			},
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrPreconditionFailed, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		resp := respbuilder.Success(ctx, SendEmailResp{Result: out.Result})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

func decodeBody[T any](r *http.Request) (out T, err error) {
	if r.Body == nil {
		err = fmt.Errorf("request body is nil")
		return
	}

	defer func() {
		if _err := r.Body.Close(); _err != nil {
			ylog.Error(r.Context(), "cannot close request body", ylog.KV("error", _err))
		}
	}()

	dec := json.NewDecoder(r.Body)
	err = dec.Decode(&out)
	return
}
