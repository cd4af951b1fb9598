package applicantsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/ylog"
	"go.opentelemetry.io/otel/trace"

	"github.com/sailhq/sailpost/internal/svc/applicantrepo"
	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/pkg/uid"
	"github.com/sailhq/sailpost/pkg/validator"
)

type DefaultServiceConfig struct {
	UIDGen        uid.UID            `validate:"required"`
	ApplicantRepo applicantrepo.Repo `validate:"required"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

// CreateApplicant is a function that knows business logic.
// It doesn't know whether the input come from HTTP or GRPC or any input.
func (d *DefaultService) CreateApplicant(ctx context.Context, input InputCreateApplicant) (out OutCreateApplicant, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	existing, err := d.GetApplicant(ctx, InputGetApplicant{
		Email: input.Email,
	})
	if err != nil {
		// log and then discard error
		ylog.Error(ctx, "get applicant by email error, continuing to try to insert", ylog.KV("error", err))
		err = nil
	}

	if existing.Applicant.Email != "" {
		err = fmt.Errorf("applicant with email '%s' already exist", existing.Applicant.Email)
		return
	}

	nextID, err := d.Config.UIDGen.NextID()
	if err != nil {
		err = fmt.Errorf("cannot get next id: %w", err)
		return
	}

	details := []byte(`{}`)
	if len(input.Details) > 0 {
		details, err = json.Marshal(input.Details)
		if err != nil {
			err = fmt.Errorf("cannot marshal applicant details: %w", err)
			return
		}
	}

	now := time.Now().UTC()
	candidate := applicantrepo.Applicant{
		ID:             int64(nextID),
		Email:          input.Email,
		Name:           input.Name,
		CPF:            input.CPF,
		RegistrationNo: input.RegistrationNo,

		Age:              input.Age,
		Gender:           input.Gender,
		Category:         input.Category,
		Address:          input.Address,
		MobileNo:         input.MobileNo,
		FatherMotherName: input.FatherMotherName,
		FatherMotherOcc:  input.FatherMotherOcc,
		PresentInstitute: input.PresentInstitute,
		AreasOfTraining:  input.AreasOfTraining,
		PresentSemester:  input.PresentSemester,
		LastSemesterSGPA: input.LastSemesterSGPA,
		PercentageIn12:   input.PercentageIn12,

		Designation: input.Designation,
		Section:     input.Section,
		Location:    input.Location,

		Status:        applicantrepo.StatusPending,
		Term:          input.Term,
		QuotaCategory: input.QuotaCategory,
		Details:       details,

		CreatedAt: now.UnixMicro(),
		UpdatedAt: now.UnixMicro(),
	}

	created, err := d.Config.ApplicantRepo.Create(ctx, applicantrepo.InputCreate{
		Applicant: candidate,
	})
	if err != nil {
		return
	}

	out = OutCreateApplicant{
		Applicant: ApplicantFromRepo(created.Applicant),
	}
	return
}

func (d *DefaultService) GetApplicant(ctx context.Context, input InputGetApplicant) (out OutGetApplicant, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "applicantsvc.GetApplicant")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	var data applicantrepo.Applicant
	switch {
	case input.Email != "":
		var outGet applicantrepo.OutGetByEmail
		outGet, err = d.Config.ApplicantRepo.GetByEmail(ctx, applicantrepo.InputGetByEmail{Email: input.Email})
		data = outGet.Applicant

	case input.ID != 0:
		var outGet applicantrepo.OutGetByID
		outGet, err = d.Config.ApplicantRepo.GetByID(ctx, applicantrepo.InputGetByID{ID: input.ID})
		data = outGet.Applicant

	default:
		err = fmt.Errorf("either id or email is required")
		return
	}

	if err != nil {
		err = fmt.Errorf("not found applicant: %w", err)
		return
	}

	out = OutGetApplicant{
		Applicant: ApplicantFromRepo(data),
	}
	return
}

func (d *DefaultService) ListApplicants(ctx context.Context, input InputListApplicants) (out OutListApplicants, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	// set to the default value
	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 100
	}

	outList, err := d.Config.ApplicantRepo.List(ctx, applicantrepo.InputList{
		Limit:    input.Limit,
		BeforeID: input.BeforeID,
		AfterID:  input.AfterID,
		Status:   input.Status,
	})
	if err != nil {
		err = fmt.Errorf("list applicants error: %w", err)
		return
	}

	applicants := make([]Applicant, 0)
	for _, applicant := range outList.Applicants {
		applicants = append(applicants, ApplicantFromRepo(applicant))
	}

	out = OutListApplicants{
		Total:      outList.Total,
		Limit:      input.Limit,
		Applicants: applicants,
	}

	return
}

func (d *DefaultService) UpdateApplicantStatus(ctx context.Context, input InputUpdateApplicantStatus) (out OutUpdateApplicantStatus, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	updated, err := d.Config.ApplicantRepo.UpdateStatus(ctx, applicantrepo.InputUpdateStatus{
		ID:        input.ID,
		Status:    input.Status,
		UpdatedAt: time.Now().UTC().UnixMicro(),
	})
	if err != nil {
		err = fmt.Errorf("update applicant %d status error: %w", input.ID, err)
		return
	}

	out = OutUpdateApplicantStatus{
		Applicant: ApplicantFromRepo(updated.Applicant),
	}
	return
}

func (d *DefaultService) DelApplicant(ctx context.Context, input InputDelApplicant) (out OutDelApplicant, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	outDel, err := d.Config.ApplicantRepo.DelByID(ctx, applicantrepo.InputDelByID{
		ID:        input.ID,
		DeletedAt: time.Now().UTC().UnixMicro(),
	})
	if err != nil {
		err = fmt.Errorf("db delete error '%d': %w", input.ID, err)
		return
	}

	out = OutDelApplicant{
		Success: outDel.Success,
	}
	return
}
