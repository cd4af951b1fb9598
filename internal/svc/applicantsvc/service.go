package applicantsvc

import (
	"context"
	"time"
)

// Service is an interface of final business logic.
// Any input and output from/to this function should be SAFE for external party to consume,
// i.e: request or response from HTTP handler
type Service interface {
	CreateApplicant(ctx context.Context, input InputCreateApplicant) (out OutCreateApplicant, err error)
	GetApplicant(ctx context.Context, input InputGetApplicant) (out OutGetApplicant, err error)
	ListApplicants(ctx context.Context, input InputListApplicants) (out OutListApplicants, err error)
	UpdateApplicantStatus(ctx context.Context, input InputUpdateApplicantStatus) (out OutUpdateApplicantStatus, err error)
	DelApplicant(ctx context.Context, input InputDelApplicant) (out OutDelApplicant, err error)
}

// Applicant is like applicantrepo.Applicant but only used for returning output via external service.
// This must not have any json or yaml tag, any output method (HTTP, gRPC, etc) must define its own entity standard.
type Applicant struct {
	ID             int64  `validate:"required"`
	Email          string `validate:"required,email"`
	Name           string `validate:"required"`
	CPF            string `validate:"required"`
	RegistrationNo string

	Age              int64
	Gender           string
	Category         string
	Address          string
	MobileNo         string
	FatherMotherName string
	FatherMotherOcc  string
	PresentInstitute string
	AreasOfTraining  string
	PresentSemester  string
	LastSemesterSGPA string
	PercentageIn12   string

	Designation string
	Section     string
	Location    string

	Status        string
	Term          string
	QuotaCategory string

	Details map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time
}

type InputCreateApplicant struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required"`
	CPF   string `validate:"required"`

	RegistrationNo string `validate:"-"`

	Age              int64  `validate:"min=0"`
	Gender           string `validate:"-"`
	Category         string `validate:"-"`
	Address          string `validate:"-"`
	MobileNo         string `validate:"-"`
	FatherMotherName string `validate:"-"`
	FatherMotherOcc  string `validate:"-"`
	PresentInstitute string `validate:"-"`
	AreasOfTraining  string `validate:"-"`
	PresentSemester  string `validate:"-"`
	LastSemesterSGPA string `validate:"-"`
	PercentageIn12   string `validate:"-"`

	Designation string `validate:"-"`
	Section     string `validate:"-"`
	Location    string `validate:"-"`

	Term          string `validate:"omitempty,oneof=Summer Winter"`
	QuotaCategory string `validate:"omitempty,oneof=General Reserved"`

	Details map[string]string `validate:"-"`
}

type OutCreateApplicant struct {
	Applicant Applicant
}

type InputGetApplicant struct {
	// one of ID or Email is required
	ID    int64  `validate:"-"`
	Email string `validate:"omitempty,email"`
}

type OutGetApplicant struct {
	Applicant Applicant
}

type InputListApplicants struct {
	Limit    int64  `validate:"min=0"`
	BeforeID int64  `validate:"min=0"`
	AfterID  int64  `validate:"min=0"`
	Status   string `validate:"omitempty,oneof=Pending Shortlisted Approved Rejected"`
}

type OutListApplicants struct {
	Total      int64
	Limit      int64
	Applicants []Applicant
}

type InputUpdateApplicantStatus struct {
	ID     int64  `validate:"required"`
	Status string `validate:"required,oneof=Pending Shortlisted Approved Rejected"`
}

type OutUpdateApplicantStatus struct {
	Applicant Applicant
}

type InputDelApplicant struct {
	ID int64 `validate:"required"`
}

type OutDelApplicant struct {
	Success bool
}
