package respbuilder

import (
	"context"
)

var production bool

// SetProductionMode hides the technical debug detail from error envelopes.
// Called once at bootstrap, before any handler runs.
func SetProductionMode(enabled bool) {
	production = enabled
}

func Error(ctx context.Context, reasonKind ErrKind, err error) HTTPError {
	stuff := MustExtract(ctx)

	errMsg := ""
	if err != nil && !production {
		errMsg = err.Error()
	}

	reason, ok := ReasonMap[reasonKind]
	if !ok {
		return HTTPError{
			Err: ErrorEntity{
				Code:    "XX",
				Message: "unknown error kind",
				Debug:   "", // don't show message if unknown type, to prevent security breach
				TraceID: stuff.AppTraceID,
			},
		}
	}

	return HTTPError{
		Err: ErrorEntity{
			Code:    reason.Code,
			Message: reason.Message,
			Debug:   errMsg,
			TraceID: stuff.AppTraceID,
		},
	}
}

func Success(ctx context.Context, data interface{}) HTTPSuccess {
	stuff := MustExtract(ctx)

	return HTTPSuccess{
		TraceID: stuff.AppTraceID,
		Data:    data,
	}
}
