package dispatchsvc

import (
	"context"
)

// Attachment names used on outgoing mail, depending on whether the form
// could be rendered or only the blank template is available.
const (
	FilledFormFilename = "ONGC_Internship_Application_Form_Filled.pdf"
	BlankFormFilename  = "ONGC_Internship_Application_Form.pdf"
)

// Service is the mail dispatch business logic: render the application form
// for a recipient, attach it, deliver, and report per-recipient outcomes.
type Service interface {
	DispatchOne(ctx context.Context, input InputDispatchOne) (out OutDispatchOne, err error)
	DispatchBatch(ctx context.Context, input InputDispatchBatch) (out OutDispatchBatch, err error)
	RenderDocument(ctx context.Context, input InputRenderDocument) (out OutRenderDocument, err error)
}

// DispatchRequest is one outgoing email. ApplicantData is the loosely-typed
// record the form is rendered from when AttachForm is set.
type DispatchRequest struct {
	To      string `validate:"required,email"`
	Subject string `validate:"required"`
	HTML    string `validate:"-"`
	Text    string `validate:"-"`

	AttachForm     bool                   `validate:"-"`
	ApplicantData  map[string]interface{} `validate:"-"`
	RegistrationNo string                 `validate:"-"`
}

// DispatchResult is the per-recipient outcome. Error carries the
// user-facing message, never the raw transport error.
type DispatchResult struct {
	To        string `json:"to"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchReport covers every input request exactly once, in input order.
type BatchReport struct {
	Results []DispatchResult
	Total   int
	Sent    int
	Failed  int
}

type InputDispatchOne struct {
	Request DispatchRequest `validate:"required"`
}

type OutDispatchOne struct {
	Result DispatchResult
}

type InputDispatchBatch struct {
	Requests []DispatchRequest `validate:"required,min=1"`
}

type OutDispatchBatch struct {
	Report BatchReport
}

type InputRenderDocument struct {
	ApplicantData  map[string]interface{} `validate:"-"`
	RegistrationNo string                 `validate:"-"`
}

type OutRenderDocument struct {
	// Document is nil when every rendering strategy failed.
	Document []byte
	Strategy string
}
