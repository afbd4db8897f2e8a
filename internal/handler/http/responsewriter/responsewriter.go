// Package responsewriter wraps http.ResponseWriter to record the status
// code and body size for logging and metrics middleware.
package responsewriter

import "net/http"

// Recorder wraps an http.ResponseWriter and records what was written.
type Recorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

// Wrap returns a Recorder around w. The status defaults to 200, matching
// net/http behavior when WriteHeader is never called.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader records the status code before delegating.
func (r *Recorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Write records the number of bytes written before delegating.
func (r *Recorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded status code.
func (r *Recorder) StatusCode() int { return r.statusCode }

// BytesWritten returns the number of body bytes written.
func (r *Recorder) BytesWritten() int { return r.bytesWritten }
