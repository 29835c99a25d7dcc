package api

import (
	"encoding/json"
	"net/http"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// errorBody is the JSON shape of a failed response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch perrors.GetCode(err) {
	case perrors.ErrCodeKeyNotFound, perrors.ErrCodeNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeRootOperation, perrors.ErrCodeNoSibling:
		return http.StatusConflict
	case perrors.ErrCodeInvalidInput, perrors.ErrCodeInvalidTree, perrors.ErrCodeInvalidDirection,
		perrors.ErrCodeInvalidFormat, perrors.ErrCodeInvalidKey, perrors.ErrCodeDuplicateKey,
		perrors.ErrCodeEmptyTree, perrors.ErrCodeLeftoverSpace, perrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// sendError writes err as a JSON error body. Internal errors are reported
// without their message.
func sendError(w http.ResponseWriter, status int, err error) {
	code := perrors.GetCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		code = perrors.ErrCodeInternal
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
