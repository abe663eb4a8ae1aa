package request

import (
	"errors"
	"net/http"
)

// ErrInternalServer is the generic message returned to clients on a panic.
var ErrInternalServer = errors.New("internal server error")

// ClientWriter wraps a http.ResponseWriter and records the status code that
// was written, so middleware can observe it after the handler has run.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the status code that was written.
	statusCode int
}

// NewClientWriter creates a new ClientWriter.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
	}
}

// WriteHeader records the status code and writes it to the client.
func (w *ClientWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write defaults the status code to 200 if the handler never set one.
func (w *ClientWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// StatusCode returns the status code that was written.
func (w *ClientWriter) StatusCode() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}
