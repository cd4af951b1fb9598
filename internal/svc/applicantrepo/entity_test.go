package applicantrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSource(t *testing.T) {
	applicant := Applicant{
		ID:               1,
		Email:            "asha@example.com",
		Name:             "Asha Rawat",
		CPF:              "CPF123",
		Age:              21,
		MobileNo:         "9876543210",
		FatherMotherName: "R. Rawat",
		PresentInstitute: "IIT Roorkee",
		LastSemesterSGPA: "8.5",
		Status:           StatusPending,
	}

	src := applicant.RenderSource()
	assert.Equal(t, "Asha Rawat", src["name"])
	assert.Equal(t, "9876543210", src["mobileNo"])
	assert.Equal(t, "R. Rawat", src["fatherMotherName"])
	assert.Equal(t, int64(21), src["age"])
	assert.Equal(t, "8.5", src["lastSemesterSGPA"])
}

func TestRenderSourceOmitsZeroAge(t *testing.T) {
	src := Applicant{Name: "Asha Rawat"}.RenderSource()
	assert.NotContains(t, src, "age")
}
