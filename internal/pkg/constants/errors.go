package constants

import "net/http"

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrUnknownHospital    = NewCodedError("unknown hospital identifier", http.StatusBadRequest)
	ErrMissingInput       = NewCodedError("Please upload CSV files and select a hospital", http.StatusBadRequest)
	ErrNoFiles            = NewCodedError("no files in upload", http.StatusBadRequest)
	ErrFileNotFound       = NewCodedError("file not found", http.StatusNotFound)
	ErrWrongState         = NewCodedError("operation not allowed in current state", http.StatusConflict)
	ErrAnalysisInProgress = NewCodedError("analysis already in progress", http.StatusConflict)
	ErrSessionNotFound    = NewCodedError("session not found", http.StatusNotFound)
	ErrUnauthorized       = NewCodedError("unauthorized", http.StatusUnauthorized)
)
