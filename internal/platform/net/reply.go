package net

import (
	"net/http"

	perr "fingerprintd/internal/platform/errors"
)

// Ack is the success marker every JSON body carries
type Ack struct {
	OK bool `json:"ok"`
}

// Done is the body of operations with nothing else to report
var Done = Ack{OK: true}

// ErrorBody is the failure envelope shared by handlers and middleware
type ErrorBody struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Error maps err to its status and failure body
func Error(err error, reqID string) (int, ErrorBody) {
	if err == nil {
		err = perr.Internalf("unknown error")
	}
	status, w := perr.HTTP(err)
	msg := w.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	return status, ErrorBody{Error: msg, RequestID: reqID}
}
