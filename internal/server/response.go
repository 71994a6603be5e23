package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// Error codes returned in the "code" member of error responses.
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeInvalidPayload  = "INVALID_PAYLOAD"
	CodeNotFound        = "NOT_FOUND"
	CodeNoSelection     = "NO_SELECTION"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeSaveInProgress  = "SAVE_IN_PROGRESS"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeUnknownRenderer = "UNKNOWN_RENDERER"
	CodeRenderFailed    = "RENDER_FAILED"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes the request body into v. Unknown members are rejected.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be omitted.
func decodeOptionalJSON(r *http.Request, v any) error {
	if err := decodeJSON(r, v); err != nil && !errors.Is(err, errEmptyBody) {
		return err
	}
	return nil
}
