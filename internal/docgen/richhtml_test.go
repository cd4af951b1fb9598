package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFormHTML(t *testing.T) {
	t.Run("embeds canonical fields per section", func(t *testing.T) {
		html, err := BuildFormHTML(CanonicalData{
			Name:             "Asha Rawat",
			Gender:           "female",
			Category:         "general",
			Father:           "R. Rawat",
			FatherOccupation: "Teacher",
			College:          "IIT Roorkee",
			CGPA:             "8.5",
		}, "SAIL-2025-0042")

		assert.NoError(t, err)
		assert.Contains(t, html, "Asha Rawat")
		assert.Contains(t, html, "Female")
		assert.Contains(t, html, "GENERAL")
		assert.Contains(t, html, "R. Rawat")
		assert.Contains(t, html, "IIT Roorkee")
		assert.Contains(t, html, "Registration No: SAIL-2025-0042")
		assert.Contains(t, html, "Declaration")
	})

	t.Run("empty registration number omits the stamp", func(t *testing.T) {
		html, err := BuildFormHTML(CanonicalData{Name: "Asha Rawat"}, "")
		assert.NoError(t, err)
		assert.NotContains(t, html, "Registration No:")
	})

	t.Run("markup is escaped", func(t *testing.T) {
		html, err := BuildFormHTML(CanonicalData{Name: "<script>alert(1)</script>"}, "")
		assert.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
	})
}
