package applicantrepo

import (
	"github.com/jmoiron/sqlx/types"
)

// Applicant statuses as stored. New submissions start at Pending.
const (
	StatusPending     = "Pending"
	StatusShortlisted = "Shortlisted"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
)

// Applicant is one internship application record.
// Json tag is used for caching.
type Applicant struct {
	ID    int64  `json:"id" db:"id" validate:"required"`          // primary key
	Email string `json:"email" db:"email" validate:"required"`    // unique
	Name  string `json:"name" db:"name" validate:"required"`
	CPF   string `json:"cpf" db:"cpf" validate:"required"`

	RegistrationNo string `json:"registrationNo" db:"registration_no" validate:"-"`

	Age              int64  `json:"age" db:"age" validate:"-"`
	Gender           string `json:"gender" db:"gender" validate:"-"`
	Category         string `json:"category" db:"category" validate:"-"`
	Address          string `json:"address" db:"address" validate:"-"`
	MobileNo         string `json:"mobileNo" db:"mobile_no" validate:"-"`
	FatherMotherName string `json:"fatherMotherName" db:"father_mother_name" validate:"-"`
	FatherMotherOcc  string `json:"fatherMotherOccupation" db:"father_mother_occupation" validate:"-"`
	PresentInstitute string `json:"presentInstitute" db:"present_institute" validate:"-"`
	AreasOfTraining  string `json:"areasOfTraining" db:"areas_of_training" validate:"-"`
	PresentSemester  string `json:"presentSemester" db:"present_semester" validate:"-"`
	LastSemesterSGPA string `json:"lastSemesterSGPA" db:"last_semester_sgpa" validate:"-"`
	PercentageIn12   string `json:"percentageIn10Plus2" db:"percentage_in_10_plus_2" validate:"-"`

	Designation string `json:"designation" db:"designation" validate:"-"`
	Section     string `json:"section" db:"section" validate:"-"`
	Location    string `json:"location" db:"location" validate:"-"`

	Status        string `json:"status" db:"status" validate:"required,oneof=Pending Shortlisted Approved Rejected"`
	Term          string `json:"term" db:"term" validate:"omitempty,oneof=Summer Winter"`
	QuotaCategory string `json:"quotaCategory" db:"quota_category" validate:"omitempty,oneof=General Reserved"`

	// Details keeps mentor/declaration/referral metadata that has no
	// dedicated column, stored as JSONB.
	Details types.JSONText `json:"details" db:"details" validate:"-"`

	// Timestamp using integer as unix microsecond in UTC
	CreatedAt int64 `json:"created_at" db:"created_at" validate:"required"`
	UpdatedAt int64 `json:"updated_at" db:"updated_at" validate:"required"`
	DeletedAt int64 `json:"deleted_at" db:"deleted_at" validate:"-"`
}

// RenderSource flattens the record into the loosely-typed shape consumed
// by the document normalizer.
func (a Applicant) RenderSource() map[string]interface{} {
	out := map[string]interface{}{
		"name":                   a.Name,
		"email":                  a.Email,
		"cpf":                    a.CPF,
		"age":                    a.Age,
		"gender":                 a.Gender,
		"category":               a.Category,
		"address":                a.Address,
		"mobileNo":               a.MobileNo,
		"fatherMotherName":       a.FatherMotherName,
		"fatherMotherOccupation": a.FatherMotherOcc,
		"presentInstitute":       a.PresentInstitute,
		"areasOfTraining":        a.AreasOfTraining,
		"presentSemester":        a.PresentSemester,
		"lastSemesterSGPA":       a.LastSemesterSGPA,
		"percentageIn10Plus2":    a.PercentageIn12,
		"designation":            a.Designation,
		"section":                a.Section,
		"location":               a.Location,
		"quotaCategory":          a.QuotaCategory,
		"term":                   a.Term,
	}

	if a.Age == 0 {
		delete(out, "age")
	}

	return out
}
