package expect

import "fmt"

// Recorder is a TestingT that keeps failures instead of reporting them. It
// lets expectations run outside a test binary.
type Recorder struct {
	name    string
	errors  []string
	stopped bool
}

// NewRecorder creates a Recorder reporting name from Name.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// Errorf records a failure.
func (r *Recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// FailNow marks the recorder as stopped. It does not halt the caller.
func (r *Recorder) FailNow() {
	r.stopped = true
}

// Helper is a no-op.
func (r *Recorder) Helper() {}

// Name returns the name given to NewRecorder.
func (r *Recorder) Name() string {
	return r.name
}

// Failed reports whether any failure was recorded.
func (r *Recorder) Failed() bool {
	return len(r.errors) > 0 || r.stopped
}

// Stopped reports whether FailNow was called.
func (r *Recorder) Stopped() bool {
	return r.stopped
}

// Errors returns the recorded failure messages.
func (r *Recorder) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Reset clears recorded failures.
func (r *Recorder) Reset() {
	r.errors = nil
	r.stopped = false
}
