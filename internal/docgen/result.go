package docgen

// Result is the outcome of one rendering strategy attempt. A strategy
// either produces a complete artifact or fails, there is no partial state.
type Result struct {
	Strategy string `json:"strategy"`
	Bytes    []byte `json:"-"`
	Err      error  `json:"-"`
}

func Ok(strategy string, b []byte) Result {
	return Result{Strategy: strategy, Bytes: b}
}

func Failed(strategy string, err error) Result {
	return Result{Strategy: strategy, Err: err}
}

// OK reports whether the attempt produced a usable artifact.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Bytes) > 0
}
