package docgen

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/yusufsyaifudin/ylog"
)

// A4 in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
)

// placement is one hand-placed label/value pair on the drawn form.
// Coordinates are top-left based, in points.
type placement struct {
	label string
	x, y  float64
	value func(d CanonicalData) string
}

// formLayout mirrors the printed application form: identity block on top,
// guardian and academic blocks below, two columns where rows pair up.
var formLayout = []placement{
	{"Name", 77, 121.89, func(d CanonicalData) string { return d.Name }},
	{"Age", 240, 123.89, func(d CanonicalData) string { return d.Age }},
	{"Gender", 90, 143.89, func(d CanonicalData) string { return d.Gender }},
	{"Category", 290, 141.89, func(d CanonicalData) string { return d.Category }},
	{"Address", 90, 163.89, func(d CanonicalData) string { return d.Address }},
	{"Mobile", 128, 183.89, func(d CanonicalData) string { return d.Mobile }},
	{"Email", 330, 183.89, func(d CanonicalData) string { return d.Email }},
	{"Father's/Mother's Name", 235, 204.89, func(d CanonicalData) string { return d.Father }},
	{"Occupation", 290, 223.89, func(d CanonicalData) string { return d.FatherOccupation }},
	{"Area of Training", 295, 333.89, func(d CanonicalData) string { return d.Course }},
	{"Semester", 200, 349.89, func(d CanonicalData) string { return d.Semester }},
	{"SGPA", 245, 363.89, func(d CanonicalData) string { return d.CGPA }},
	{"10+2 %", 500, 363.89, func(d CanonicalData) string { return d.Percentage }},
	{"Institute", 220, 383.89, func(d CanonicalData) string { return d.College }},
}

type StructuredRendererConfig struct {
	// Assets optionally provides a unicode font for value text. Label text
	// always uses the built-in bold face.
	Assets AssetStore
}

// StructuredRenderer draws the form directly on a blank A4 page. It has no
// external process dependency and is the workhorse fallback.
type StructuredRenderer struct {
	Config StructuredRendererConfig
}

var _ Strategy = (*StructuredRenderer)(nil)

func NewStructuredRenderer(cfg StructuredRendererConfig) *StructuredRenderer {
	return &StructuredRenderer{Config: cfg}
}

func (s *StructuredRenderer) Name() string { return "structured" }

func (s *StructuredRenderer) Render(ctx context.Context, data CanonicalData, regNo string) (out []byte, err error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	valueFont := "Helvetica"
	if s.Config.Assets != nil && s.Config.Assets.Exists(FontAsset) {
		fontBytes, fontErr := s.Config.Assets.ReadBytes(FontAsset)
		if fontErr != nil {
			ylog.Error(ctx, "read value font error, using built-in face", ylog.KV("error", fontErr))
		} else {
			pdf.AddUTF8FontFromBytes("formvalue", "", fontBytes)
			valueFont = "formvalue"
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text((pageWidth-pdf.GetStringWidth("ONGC Dehradun"))/2, 56, "ONGC Dehradun")

	pdf.SetFont("Helvetica", "B", 11)
	subtitle := "Summer / Winter Internship Application Form (SAIL)"
	pdf.Text((pageWidth-pdf.GetStringWidth(subtitle))/2, 74, subtitle)

	if regNo != "" {
		label := "Registration No: "
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(400, 98, label)
		pdf.SetFont(valueFont, "", 12)
		pdf.Text(400+pdf.GetStringWidth(label), 98, regNo)
	}

	for _, p := range formLayout {
		pdf.SetFont("Helvetica", "B", 12)
		label := p.label + ": "
		pdf.Text(p.x, p.y, label)

		pdf.SetFont(valueFont, "", 12)
		pdf.Text(p.x+pdf.GetStringWidth(label), p.y, p.value(data))
	}

	var buf bytes.Buffer
	err = pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("draw structured form: %w", err)
	}

	return buf.Bytes(), nil
}
