package handlerdoc

import (
	"fmt"
	"net/http"
	"strconv"

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

type TestPDFReq struct {
	ApplicantData  map[string]interface{} `json:"applicantData"`
	RegistrationNo string                 `json:"registrationNumber"`
}

// sampleApplicant is used when the request carries no data, so the endpoint
// can diagnose the render pipeline with zero setup.
var sampleApplicant = map[string]interface{}{
	"name":                   "Test Applicant",
	"age":                    21,
	"gender":                 "Female",
	"category":               "General",
	"address":                "Tel Bhavan, Dehradun",
	"mobileNo":               "9876543210",
	"email":                  "test@example.com",
	"fatherMotherName":       "Test Parent",
	"fatherMotherOccupation": "Service",
	"presentInstitute":       "Test Institute",
	"areasOfTraining":        "Drilling Services",
	"presentSemester":        "6",
	"lastSemesterSGPA":       "8.5",
	"percentageIn10Plus2":    "92.4",
}

// TestPDF renders the application form and streams it back as a PDF so the
// fallback pipeline can be checked without sending any email.
// Path         : POST /api/v1/test/pdf
// Request Body : TestPDFReq (optional)
// Response     : application/pdf bytes
func (h *Handler) TestPDF() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reqBody := TestPDFReq{}
		if r.Body != nil {
			defer func() {
				if _err := r.Body.Close(); _err != nil {
					ylog.Error(ctx, "cannot close request body", ylog.KV("error", _err))
				}
			}()

			// body is optional, a decode failure falls back to the sample
			dec := json.NewDecoder(r.Body)
			if _err := dec.Decode(&reqBody); _err != nil {
				reqBody = TestPDFReq{}
			}
		}

		if len(reqBody.ApplicantData) == 0 {
			reqBody.ApplicantData = sampleApplicant
			if reqBody.RegistrationNo == "" {
				reqBody.RegistrationNo = "SAIL-2025-0042"
			}
		}

		out, err := h.Config.DispatchService.RenderDocument(ctx, dispatchsvc.InputRenderDocument{
			ApplicantData:  reqBody.ApplicantData,
			RegistrationNo: reqBody.RegistrationNo,
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		if len(out.Document) == 0 {
			err = fmt.Errorf("all render strategies failed, no document produced")
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+dispatchsvc.FilledFormFilename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(out.Document)))
		w.Header().Set("X-Render-Strategy", out.Strategy)
		w.WriteHeader(http.StatusOK)

		if _, _err := w.Write(out.Document); _err != nil {
			ylog.Error(ctx, "cannot write rendered document", ylog.KV("error", _err))
		}
	}

	return handler
}
