package respbuilder

type ErrKind int64

const (
	ErrUnhandled ErrKind = iota + 1
	ErrValidation
	ErrDuplicateEntries
	ErrResourceNotFound
	ErrUnauthorized
	ErrPreconditionFailed
)

type Reason struct {
	Code    string
	Message string
}

func (r *Reason) Error() string {
	return r.Message
}

var ReasonMap = map[ErrKind]Reason{
	ErrUnhandled:          {Code: "01", Message: "unhandled error"},
	ErrValidation:         {Code: "02", Message: "error validation"},
	ErrDuplicateEntries:   {Code: "03", Message: "duplicate entries"},
	ErrResourceNotFound:   {Code: "04", Message: "resource not found"},
	ErrUnauthorized:       {Code: "05", Message: "unauthorized"},
	ErrPreconditionFailed: {Code: "06", Message: "precondition failed"},
}

// ErrorEntity contain code, message, debug (*if applicable) and trace id.
type ErrorEntity struct {
	Code    string `json:"error_code"`        // to handle by FE
	Message string `json:"error_description"` // to handle by FE (string version of the error code)
	Debug   string `json:"debug,omitempty"`   // technical error, hidden in production mode
	TraceID string `json:"trace_id"`
}

// HTTPError wraps the error entity under an "error" key.
type HTTPError struct {
	Err ErrorEntity `json:"error"`
}

func (e HTTPError) Error() string {
	return e.Err.Message + ": " + e.Err.Debug
}

// HTTPSuccess success response always wrap in data key.
type HTTPSuccess struct {
	TraceID string      `json:"trace_id"`
	Data    interface{} `json:"data"`
}
