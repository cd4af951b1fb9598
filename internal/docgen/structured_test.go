package docgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredRender(t *testing.T) {
	ctx := testCtx(t)

	data := CanonicalData{
		Name:             "Asha Rawat",
		Age:              "21",
		Gender:           "Female",
		Category:         "General",
		Address:          "12 Rajpur Road, Dehradun",
		Mobile:           "9876543210",
		Email:            "asha@example.com",
		Father:           "R. Rawat",
		FatherOccupation: "Teacher",
		College:          "IIT Roorkee",
		Course:           "Drilling Services",
		Semester:         "6",
		CGPA:             "8.5",
		Percentage:       "92.4",
	}

	t.Run("produces a pdf without any asset store", func(t *testing.T) {
		r := NewStructuredRenderer(StructuredRendererConfig{})

		out, err := r.Render(ctx, data, "SAIL-2025-0042")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"))
	})

	t.Run("empty data still renders", func(t *testing.T) {
		r := NewStructuredRenderer(StructuredRendererConfig{})

		out, err := r.Render(ctx, CanonicalData{}, "")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"))
	})

	t.Run("missing font asset falls back to built-in face", func(t *testing.T) {
		store, err := NewFSStore(t.TempDir())
		assert.NoError(t, err)

		r := NewStructuredRenderer(StructuredRendererConfig{Assets: store})

		out, err := r.Render(ctx, data, "")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"))
	})
}
