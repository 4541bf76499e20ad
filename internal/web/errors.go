package web

// errors.go provides unified error responses for the web layer.
//
// Every failure is logged with the technical error, the request ID and the
// classification code from core.Classify. The client gets the endpoint's
// fixed public message; the code is echoed in the X-Error-Code header so a
// user can quote it without the body format changing.

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/fakedata/internal/core"
	"github.com/JonMunkholm/fakedata/internal/logging"
)

// Public messages. Existing clients match on these strings.
const (
	msgGenerateFailed = "Failed to generate data"
	msgExportFailed   = "Failed to export data"
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// logError records a failed request with its classification code.
func logError(r *http.Request, err error, status int) string {
	code := core.Classify(err)
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", code,
		"user_message", core.FormatUserError(err),
	)
	return code
}

// respondError logs err and writes {"error": message} with status.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	code := logError(r, err, status)
	w.Header().Set("X-Error-Code", code)
	writeJSON(w, status, ErrorResponse{Error: message})
}

// respondErrorText logs err and writes a plain-text body of the form
// "<prefix>: <err>". The CSV endpoint has always answered this way.
func respondErrorText(w http.ResponseWriter, r *http.Request, err error, status int, prefix string) {
	code := logError(r, err, status)
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "%s: %s", prefix, core.MapError(err).Message)
}
