package docgen

// CanonicalData is the normalized applicant field set consumed by every
// rendering strategy. Every field is a display string, empty when the
// source record never carried a value. Renderers never see raw records.
type CanonicalData struct {
	// identity
	Name     string `json:"name"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Category string `json:"category"`

	// contact
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`

	// guardian
	Father           string `json:"father"`
	FatherOccupation string `json:"fatherOccupation"`

	// academic
	College    string `json:"college"`
	Course     string `json:"course"`
	Semester   string `json:"semester"`
	CGPA       string `json:"cgpa"`
	Percentage string `json:"percentage"`

	// affiliation
	CPF         string `json:"cpf"`
	Designation string `json:"designation"`
	Section     string `json:"section"`
	Location    string `json:"location"`

	// Extra preserves source fields that no renderer currently places
	// (mentor, referral and similar metadata) for future layout use.
	Extra map[string]string `json:"extra,omitempty"`
}
