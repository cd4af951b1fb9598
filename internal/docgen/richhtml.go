package docgen

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// formPage is the printable markup filled by the rich renderer. Layout is
// fixed for A4 print: identity, guardian, academic and declaration sections.
const formPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 0; }
  body { font-family: "Helvetica", "Arial", sans-serif; font-size: 12pt; color: #000; margin: 48px 56px; }
  h1 { font-size: 16pt; text-align: center; margin-bottom: 2px; }
  h2 { font-size: 11pt; text-align: center; font-weight: normal; margin-top: 0; }
  section { margin-top: 22px; }
  section > h3 { font-size: 12pt; border-bottom: 1px solid #000; padding-bottom: 3px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 5px 4px; vertical-align: top; }
  td.label { width: 38%; font-weight: bold; }
  .regno { text-align: right; font-weight: bold; margin-top: 10px; }
  .declaration { font-size: 11pt; margin-top: 26px; }
  .sign { margin-top: 54px; display: flex; justify-content: space-between; }
</style>
</head>
<body>
  <h1>ONGC Dehradun</h1>
  <h2>Summer / Winter Internship Application Form (SAIL)</h2>
  {{ if .RegNo }}<div class="regno">Registration No: {{ .RegNo }}</div>{{ end }}

  <section>
    <h3>Applicant Details</h3>
    <table>
      <tr><td class="label">Name</td><td>{{ .Data.Name }}</td></tr>
      <tr><td class="label">Age</td><td>{{ .Data.Age }}</td></tr>
      <tr><td class="label">Gender</td><td>{{ .Data.Gender | title }}</td></tr>
      <tr><td class="label">Category</td><td>{{ .Data.Category | upper }}</td></tr>
      <tr><td class="label">Address</td><td>{{ .Data.Address }}</td></tr>
      <tr><td class="label">Mobile No</td><td>{{ .Data.Mobile }}</td></tr>
      <tr><td class="label">Email</td><td>{{ .Data.Email }}</td></tr>
    </table>
  </section>

  <section>
    <h3>Parent / Guardian</h3>
    <table>
      <tr><td class="label">Father's / Mother's Name</td><td>{{ .Data.Father }}</td></tr>
      <tr><td class="label">Occupation</td><td>{{ .Data.FatherOccupation }}</td></tr>
    </table>
  </section>

  <section>
    <h3>Academic Details</h3>
    <table>
      <tr><td class="label">Present Institute</td><td>{{ .Data.College }}</td></tr>
      <tr><td class="label">Area of Training</td><td>{{ .Data.Course }}</td></tr>
      <tr><td class="label">Present Semester</td><td>{{ .Data.Semester }}</td></tr>
      <tr><td class="label">Last Semester SGPA</td><td>{{ .Data.CGPA }}</td></tr>
      <tr><td class="label">Percentage in 10+2</td><td>{{ .Data.Percentage }}</td></tr>
    </table>
  </section>

  <section class="declaration">
    <h3>Declaration</h3>
    <p>I hereby declare that the particulars furnished above are true to the
    best of my knowledge and belief. I undertake to abide by the rules and
    regulations of ONGC during the period of my internship.</p>
    <div class="sign">
      <span>Date: ____________</span>
      <span>Signature of Applicant</span>
    </div>
  </section>
</body>
</html>`

var formTemplate = template.Must(
	template.New("form").Funcs(sprig.HtmlFuncMap()).Parse(formPage),
)

// BuildFormHTML renders the printable form markup for the given canonical data.
func BuildFormHTML(data CanonicalData, regNo string) (string, error) {
	var buf bytes.Buffer
	err := formTemplate.Execute(&buf, map[string]interface{}{
		"Data":  data,
		"RegNo": regNo,
	})
	if err != nil {
		return "", fmt.Errorf("execute form template: %w", err)
	}

	return buf.String(), nil
}
