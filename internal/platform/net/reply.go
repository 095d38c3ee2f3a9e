package net

import (
	"net/http"

	perr "admissions/internal/platform/errors"
)

// Wire is the envelope every JSON response is written with
// Success mirrors the status class so clients can branch without reading codes
type Wire struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Details    []perr.Detail  `json:"details,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Success builds a 2xx envelope for data
func Success(status int, data any, reqID string) (int, Wire) {
	return status, Wire{
		Success:    true,
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) { return Success(http.StatusOK, data, reqID) }

// Error builds an error envelope
// server side failures only expose the wrapping message, never the cause
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	msg := w.Message
	if _, ours := perr.As(err); !ours && status >= http.StatusInternalServerError {
		msg = "internal error"
	}
	return status, Wire{
		Success:    false,
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      msg,
		Details:    w.Details,
		RequestID:  reqID,
	}
}
