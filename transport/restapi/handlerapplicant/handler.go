package handlerapplicant

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/ylog"

	"github.com/sailhq/sailpost/internal/svc/applicantsvc"
	"github.com/sailhq/sailpost/pkg/respbuilder"
	"github.com/sailhq/sailpost/pkg/validator"
	"github.com/sailhq/sailpost/transport/restapi/httptyped"
)

type HandlerConfig struct {
	ApplicantService applicantsvc.Service `validate:"required"`
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

type CreateApplicantReq struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`

	RegistrationNo string `json:"registrationNumber"`

	Age              int64  `json:"age"`
	Gender           string `json:"gender"`
	Category         string `json:"category"`
	Address          string `json:"address"`
	MobileNo         string `json:"mobileNo"`
	FatherMotherName string `json:"fatherMotherName"`
	FatherMotherOcc  string `json:"fatherMotherOccupation"`
	PresentInstitute string `json:"presentInstitute"`
	AreasOfTraining  string `json:"areasOfTraining"`
	PresentSemester  string `json:"presentSemester"`
	LastSemesterSGPA string `json:"lastSemesterSGPA"`
	PercentageIn12   string `json:"percentageIn10Plus2"`

	Designation string `json:"designation"`
	Section     string `json:"section"`
	Location    string `json:"location"`

	Term          string `json:"term"`
	QuotaCategory string `json:"quotaCategory"`

	Details map[string]string `json:"details"`
}

type ApplicantResp struct {
	Applicant httptyped.ApplicantEntity `json:"applicant"`
}

// CreateApplicant registers a new internship application.
// Path         : POST /api/v1/applicants
// Request Body : CreateApplicantReq
// Response     : ApplicantResp
func (h *Handler) CreateApplicant() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Body == nil {
			err := fmt.Errorf("request body is nil")
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		defer func() {
			if _err := r.Body.Close(); _err != nil {
				ylog.Error(ctx, "cannot close request body", ylog.KV("error", _err))
			}
		}()

		var reqBody CreateApplicantReq
		dec := json.NewDecoder(r.Body)
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		createIn := applicantsvc.InputCreateApplicant{
			Email: reqBody.Email,
			Name:  reqBody.Name,
			CPF:   reqBody.CPF,

			RegistrationNo: reqBody.RegistrationNo,

			Age:              reqBody.Age,
			Gender:           reqBody.Gender,
			Category:         reqBody.Category,
			Address:          reqBody.Address,
			MobileNo:         reqBody.MobileNo,
			FatherMotherName: reqBody.FatherMotherName,
			FatherMotherOcc:  reqBody.FatherMotherOcc,
			PresentInstitute: reqBody.PresentInstitute,
			AreasOfTraining:  reqBody.AreasOfTraining,
			PresentSemester:  reqBody.PresentSemester,
			LastSemesterSGPA: reqBody.LastSemesterSGPA,
			PercentageIn12:   reqBody.PercentageIn12,

			Designation: reqBody.Designation,
			Section:     reqBody.Section,
			Location:    reqBody.Location,

			Term:          reqBody.Term,
			QuotaCategory: reqBody.QuotaCategory,
			Details:       reqBody.Details,
		}

		createOut, err := h.Config.ApplicantService.CreateApplicant(ctx, createIn)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		respBody := ApplicantResp{
			Applicant: httptyped.ApplicantEntityFromSvc(createOut.Applicant),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusCreated, w, r, resp)
	}

	return handler
}

type ListApplicantsReq struct {
	Limit  int64  `schema:"limit"`
	MaxID  int64  `schema:"max_id"`
	MinID  int64  `schema:"min_id"`
	Status string `schema:"status"`
}

type ListApplicantsResp struct {
	Total int64                       `json:"total"`
	Limit int64                       `json:"limit"`
	Items []httptyped.ApplicantEntity `json:"items"`
}

// ListApplicants lists applications, optionally filtered by status.
// Path          : GET /api/v1/applicants
// Request Query : ListApplicantsReq
// Response      : ListApplicantsResp
func (h *Handler) ListApplicants() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := r.ParseForm()
		if err != nil {
			err = fmt.Errorf("failed parse form: %w", err)
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		query := ListApplicantsReq{}
		queryDec := schema.NewDecoder()
		err = queryDec.Decode(&query, r.Form)
		if err != nil {
			err = fmt.Errorf("failed decode query params: %w", err)
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		listIn := applicantsvc.InputListApplicants{
			Limit:    query.Limit,
			BeforeID: query.MaxID,
			AfterID:  query.MinID,
			Status:   query.Status,
		}

		listOut, err := h.Config.ApplicantService.ListApplicants(ctx, listIn)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		items := make([]httptyped.ApplicantEntity, 0)
		for _, applicant := range listOut.Applicants {
			items = append(items, httptyped.ApplicantEntityFromSvc(applicant))
		}

		respBody := ListApplicantsResp{
			Total: listOut.Total,
			Limit: listOut.Limit,
			Items: items,
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

// GetApplicant fetches one application by id.
// Path     : GET /api/v1/applicants/{id}
// Response : ApplicantResp
func (h *Handler) GetApplicant() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := applicantID(r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		getOut, err := h.Config.ApplicantService.GetApplicant(ctx, applicantsvc.InputGetApplicant{ID: id})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrResourceNotFound, err)
			respbuilder.WriteJSON(http.StatusNotFound, w, r, resp)
			return
		}

		respBody := ApplicantResp{
			Applicant: httptyped.ApplicantEntityFromSvc(getOut.Applicant),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type UpdateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application between Pending/Approved/Rejected.
// Path         : PUT /api/v1/applicants/{id}/status
// Request Body : UpdateStatusReq
// Response     : ApplicantResp
func (h *Handler) UpdateStatus() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := applicantID(r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if r.Body == nil {
			err = fmt.Errorf("request body is nil")
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		defer func() {
			if _err := r.Body.Close(); _err != nil {
				ylog.Error(ctx, "cannot close request body", ylog.KV("error", _err))
			}
		}()

		var reqBody UpdateStatusReq
		dec := json.NewDecoder(r.Body)
		err = dec.Decode(&reqBody)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		updateOut, err := h.Config.ApplicantService.UpdateApplicantStatus(ctx, applicantsvc.InputUpdateApplicantStatus{
			ID:     id,
			Status: reqBody.Status,
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		respBody := ApplicantResp{
			Applicant: httptyped.ApplicantEntityFromSvc(updateOut.Applicant),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type DelApplicantResp struct {
	Success bool `json:"success"`
}

// DelApplicant soft-deletes one application.
// Path     : DELETE /api/v1/applicants/{id}
// Response : DelApplicantResp
func (h *Handler) DelApplicant() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := applicantID(r)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		delOut, err := h.Config.ApplicantService.DelApplicant(ctx, applicantsvc.InputDelApplicant{ID: id})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		respBody := DelApplicantResp{
			Success: delOut.Success,
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

func applicantID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("applicant id '%s' is not a valid id", raw)
	}

	return id, nil
}
