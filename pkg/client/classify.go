package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
)

const (
	// GenericErrorMessage is shown when nothing more specific can be
	// extracted from the failure.
	GenericErrorMessage = "an unexpected error occurred"

	// SessionExpiredMessage tells the user to sign in again.
	SessionExpiredMessage = "Your session has expired. Please sign in again."
)

type validationEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

// ClassifyError turns any API failure into a message fit for direct display.
// Validation failures surface the first field message verbatim, expired
// sessions get the re-auth hint, everything else collapses to a safe generic
// message.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		// Some callers only have the flattened "status: body" string.
		if status, body, ok := splitFlattened(err.Error()); ok {
			apiErr = &APIError{Status: status, Body: body}
		}
	}

	if apiErr == nil {
		if isSessionExpired(err.Error()) {
			return SessionExpiredMessage
		}
		return GenericErrorMessage
	}

	switch apiErr.Status {
	case http.StatusUnprocessableEntity:
		if msg := firstValidationMessage(apiErr.Body); msg != "" {
			return msg
		}
		return GenericErrorMessage
	case http.StatusUnauthorized:
		return SessionExpiredMessage
	case http.StatusConflict:
		return "This item is still referenced elsewhere."
	case http.StatusNotFound:
		return "The requested resource was not found."
	default:
		if isSessionExpired(apiErr.Body) {
			return SessionExpiredMessage
		}
		return GenericErrorMessage
	}
}

// firstValidationMessage picks the first message of the first field, with
// fields visited in stable name order so the result is deterministic.
func firstValidationMessage(body string) string {
	var env validationEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil || len(env.Errors) == 0 {
		return ""
	}

	fields := make([]string, 0, len(env.Errors))
	for f := range env.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		if len(env.Errors[f]) > 0 {
			return env.Errors[f][0]
		}
	}
	return ""
}

func splitFlattened(msg string) (int, string, bool) {
	i := strings.Index(msg, ": ")
	if i <= 0 {
		return 0, "", false
	}
	status := 0
	for _, r := range msg[:i] {
		if r < '0' || r > '9' {
			return 0, "", false
		}
		status = status*10 + int(r-'0')
	}
	if status < 100 || status > 599 {
		return 0, "", false
	}
	return status, msg[i+2:], true
}

func isSessionExpired(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "session expired") ||
		strings.Contains(lower, "unauthenticated") ||
		strings.Contains(lower, "token expired")
}
