package applicantsvc

import (
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/sailhq/sailpost/internal/svc/applicantrepo"
)

func ApplicantFromRepo(a applicantrepo.Applicant) Applicant {
	details := map[string]string{}
	if len(a.Details) > 0 {
		// malformed details is not fatal, the column is free-form metadata
		_ = json.Unmarshal(a.Details, &details)
	}

	return Applicant{
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

		Details: details,

		CreatedAt: time.UnixMicro(a.CreatedAt).UTC(),
		UpdatedAt: time.UnixMicro(a.UpdatedAt).UTC(),
		DeletedAt: time.UnixMicro(a.DeletedAt).UTC(),
	}
}
