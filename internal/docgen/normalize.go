package docgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fieldAliases lists the candidate source keys per canonical field.
// Order matters: the first key holding a non-empty value wins.
var fieldAliases = []struct {
	assign  func(d *CanonicalData, v string)
	sources []string
}{
	{func(d *CanonicalData, v string) { d.Name = v }, []string{"name", "fullName", "applicantName"}},
	{func(d *CanonicalData, v string) { d.Age = v }, []string{"age"}},
	{func(d *CanonicalData, v string) { d.Gender = v }, []string{"gender"}},
	{func(d *CanonicalData, v string) { d.Category = v }, []string{"category", "quotaCategory"}},
	{func(d *CanonicalData, v string) { d.Address = v }, []string{"address", "presentAddress"}},
	{func(d *CanonicalData, v string) { d.Mobile = v }, []string{"mobile", "mobileNo", "phone"}},
	{func(d *CanonicalData, v string) { d.Email = v }, []string{"email", "emailAddress"}},
	{func(d *CanonicalData, v string) { d.Father = v }, []string{"father", "fatherMotherName", "guardianName"}},
	{func(d *CanonicalData, v string) { d.FatherOccupation = v }, []string{"father_occupation", "fatherMotherOccupation", "guardianOccupation"}},
	{func(d *CanonicalData, v string) { d.College = v }, []string{"college", "presentInstitute", "institute"}},
	{func(d *CanonicalData, v string) { d.Course = v }, []string{"course", "areasOfTraining", "trainingArea"}},
	{func(d *CanonicalData, v string) { d.Semester = v }, []string{"semester", "presentSemester"}},
	{func(d *CanonicalData, v string) { d.CGPA = v }, []string{"cgpa", "lastSemesterSGPA", "sgpa"}},
	{func(d *CanonicalData, v string) { d.Percentage = v }, []string{"percentage", "percentageIn10Plus2"}},
	{func(d *CanonicalData, v string) { d.CPF = v }, []string{"cpf", "cpfNo"}},
	{func(d *CanonicalData, v string) { d.Designation = v }, []string{"designation"}},
	{func(d *CanonicalData, v string) { d.Section = v }, []string{"section"}},
	{func(d *CanonicalData, v string) { d.Location = v }, []string{"location"}},
}

// Normalize maps an arbitrary applicant record to the canonical field set.
// It never fails: missing keys resolve to empty strings and numeric values
// are coerced to display strings.
func Normalize(raw map[string]interface{}) CanonicalData {
	var data CanonicalData

	consumed := make(map[string]struct{})
	for _, alias := range fieldAliases {
		for _, key := range alias.sources {
			consumed[key] = struct{}{}
		}

		for _, key := range alias.sources {
			v := displayString(raw[key])
			if v == "" {
				continue
			}

			alias.assign(&data, v)
			break
		}
	}

	for key, rawVal := range raw {
		if _, ok := consumed[key]; ok {
			continue
		}

		v := displayString(rawVal)
		if v == "" {
			continue
		}

		if data.Extra == nil {
			data.Extra = make(map[string]string)
		}
		data.Extra[key] = v
	}

	return data
}

// displayString coerces any record value to a trimmed display string.
// Floats produced by JSON decoding keep their shortest representation,
// so an age of 21 renders as "21" and not "21.000000".
func displayString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

// registration numbers look like SAIL-2025-0042
var regNoPattern = regexp.MustCompile(`SAIL-\d{4}-\d{4}`)

// ExtractRegistrationNo returns the first registration number found in the
// given content, or an empty token when none is present. Rendering proceeds
// with the empty token.
func ExtractRegistrationNo(content string) string {
	return regNoPattern.FindString(content)
}
