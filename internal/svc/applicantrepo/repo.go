package applicantrepo

import (
	"context"
	"errors"
)

var (
	ErrValidation = errors.New("validation error")
)

// Repo is the applicant repository service
type Repo interface {
	Create(ctx context.Context, in InputCreate) (out OutCreate, err error)
	GetByEmail(ctx context.Context, in InputGetByEmail) (out OutGetByEmail, err error)
	GetByID(ctx context.Context, in InputGetByID) (out OutGetByID, err error)
	List(ctx context.Context, in InputList) (out OutList, err error)
	UpdateStatus(ctx context.Context, in InputUpdateStatus) (out OutUpdateStatus, err error)
	DelByID(ctx context.Context, in InputDelByID) (out OutDelByID, err error)
}

type InputCreate struct {
	Applicant Applicant `validate:"required"`
}

type OutCreate struct {
	Applicant Applicant
}

type InputGetByEmail struct {
	Email string `validate:"required,email"`
}

type OutGetByEmail struct {
	Applicant Applicant
}

type InputGetByID struct {
	ID int64 `validate:"required"`
}

type OutGetByID struct {
	Applicant Applicant
}

type InputList struct {
	Limit    int64  `validate:"required"`
	BeforeID int64  `validate:"min=0"`
	AfterID  int64  `validate:"min=0"`
	Status   string `validate:"omitempty,oneof=Pending Shortlisted Approved Rejected"`
}

type OutList struct {
	Total      int64
	Applicants []Applicant
}

type InputUpdateStatus struct {
	ID        int64  `validate:"required"`
	Status    string `validate:"required,oneof=Pending Shortlisted Approved Rejected"`
	UpdatedAt int64  `validate:"required"`
}

type OutUpdateStatus struct {
	Applicant Applicant
}

type InputDelByID struct {
	ID        int64 `validate:"required"`
	DeletedAt int64 `validate:"required"`
}

type OutDelByID struct {
	Success bool
}
