package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("json encode failed", "err", err)
	}
}

type errResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func errorBody(msg string, code apperrors.Code) errResponse {
	return errResponse{Error: msg, Code: code}
}

// statusFor maps error codes to HTTP status codes. Unknown codes are
// treated as internal failures.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidPackage,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeInvalidManifest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodePackageNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeDocsNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
