package http

import (
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
)

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeXML(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	if r != nil {
		payload.RequestID = RequestIDFromContext(r.Context())
	}
	writeJSON(w, status, payload)
}

func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, goerrors.New(message, goerrors.CategoryNotFound))
}

// mapError turns an error into a status and payload. Internal failures
// never leak their message.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if markdown.IsContentParseError(err) || posts.IsDateInvalid(err) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "content_error",
			Message: "post could not be loaded",
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) || goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "internal server error",
	}
}
