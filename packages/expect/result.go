package expect

// Result captures the outcome of one matcher run.
type Result struct {
	Matcher  string `json:"matcher"`
	Negated  bool   `json:"negated,omitempty"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message,omitempty"`
}

// Operator returns the dotted matcher path the result was produced by.
func (r Result) Operator() string {
	if r.Negated {
		return "not." + r.Matcher
	}
	return r.Matcher
}
