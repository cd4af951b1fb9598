package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("maps aliased keys", func(t *testing.T) {
		data := Normalize(map[string]interface{}{
			"name":                   "Asha Rawat",
			"mobileNo":               "9876543210",
			"fatherMotherName":       "R. Rawat",
			"fatherMotherOccupation": "Teacher",
			"areasOfTraining":        "Drilling Services",
			"presentSemester":        "6",
			"lastSemesterSGPA":       8.5,
			"percentageIn10Plus2":    92.4,
			"presentInstitute":       "IIT Roorkee",
		})

		assert.Equal(t, "Asha Rawat", data.Name)
		assert.Equal(t, "9876543210", data.Mobile)
		assert.Equal(t, "R. Rawat", data.Father)
		assert.Equal(t, "Teacher", data.FatherOccupation)
		assert.Equal(t, "Drilling Services", data.Course)
		assert.Equal(t, "6", data.Semester)
		assert.Equal(t, "8.5", data.CGPA)
		assert.Equal(t, "92.4", data.Percentage)
		assert.Equal(t, "IIT Roorkee", data.College)
	})

	t.Run("first non-empty source wins", func(t *testing.T) {
		data := Normalize(map[string]interface{}{
			"mobile":    "",
			"mobileNo":  "9876543210",
			"college":   "IIT Roorkee",
			"institute": "should not win",
		})

		assert.Equal(t, "9876543210", data.Mobile)
		assert.Equal(t, "IIT Roorkee", data.College)
	})

	t.Run("numbers coerced to display strings", func(t *testing.T) {
		data := Normalize(map[string]interface{}{
			"age":      float64(21),
			"semester": 6,
		})

		assert.Equal(t, "21", data.Age)
		assert.Equal(t, "6", data.Semester)
	})

	t.Run("missing keys default to empty", func(t *testing.T) {
		data := Normalize(map[string]interface{}{})
		assert.Equal(t, "", data.Name)
		assert.Equal(t, "", data.CGPA)
		assert.Nil(t, data.Extra)
	})

	t.Run("unplaced fields preserved as extra", func(t *testing.T) {
		data := Normalize(map[string]interface{}{
			"name":       "Asha Rawat",
			"mentorName": "S. Negi",
			"term":       "Summer",
		})

		assert.Equal(t, "S. Negi", data.Extra["mentorName"])
		assert.Equal(t, "Summer", data.Extra["term"])
		assert.NotContains(t, data.Extra, "name")
	})

	t.Run("nil record", func(t *testing.T) {
		data := Normalize(nil)
		assert.Equal(t, "", data.Name)
	})
}

func TestExtractRegistrationNo(t *testing.T) {
	t.Run("first match wins", func(t *testing.T) {
		token := ExtractRegistrationNo("Your registration SAIL-2025-0042 is confirmed, not SAIL-2025-0099.")
		assert.Equal(t, "SAIL-2025-0042", token)
	})

	t.Run("no match yields empty token", func(t *testing.T) {
		assert.Equal(t, "", ExtractRegistrationNo("no number here"))
	})

	t.Run("partial shapes rejected", func(t *testing.T) {
		assert.Equal(t, "", ExtractRegistrationNo("SAIL-25-42"))
	})
}
