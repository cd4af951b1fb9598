package httptyped

import (
	"time"

	"github.com/sailhq/sailpost/internal/svc/applicantsvc"
)

type ApplicantEntity struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	CPF            string `json:"cpf"`
	RegistrationNo string `json:"registrationNo,omitempty"`

	Age              int64  `json:"age,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Category         string `json:"category,omitempty"`
	Address          string `json:"address,omitempty"`
	MobileNo         string `json:"mobileNo,omitempty"`
	FatherMotherName string `json:"fatherMotherName,omitempty"`
	FatherMotherOcc  string `json:"fatherMotherOccupation,omitempty"`
	PresentInstitute string `json:"presentInstitute,omitempty"`
	AreasOfTraining  string `json:"areasOfTraining,omitempty"`
	PresentSemester  string `json:"presentSemester,omitempty"`
	LastSemesterSGPA string `json:"lastSemesterSGPA,omitempty"`
	PercentageIn12   string `json:"percentageIn10Plus2,omitempty"`

	Designation string `json:"designation,omitempty"`
	Section     string `json:"section,omitempty"`
	Location    string `json:"location,omitempty"`

	Status        string `json:"status"`
	Term          string `json:"term,omitempty"`
	QuotaCategory string `json:"quotaCategory,omitempty"`

	Details map[string]string `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ApplicantEntityFromSvc(a applicantsvc.Applicant) ApplicantEntity {
	return ApplicantEntity{
		ID:             a.ID,
		Email:          a.Email,
		Name:           a.Name,
		CPF:            a.CPF,
		RegistrationNo: a.RegistrationNo,

		Age:              a.Age,
		Gender:           a.Gender,
		Category:         a.Category,
		Address:          a.Address,
		MobileNo:         a.MobileNo,
		FatherMotherName: a.FatherMotherName,
		FatherMotherOcc:  a.FatherMotherOcc,
		PresentInstitute: a.PresentInstitute,
		AreasOfTraining:  a.AreasOfTraining,
		PresentSemester:  a.PresentSemester,
		LastSemesterSGPA: a.LastSemesterSGPA,
		PercentageIn12:   a.PercentageIn12,

		Designation: a.Designation,
		Section:     a.Section,
		Location:    a.Location,

		Status:        a.Status,
		Term:          a.Term,
		QuotaCategory: a.QuotaCategory,

		Details: a.Details,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
