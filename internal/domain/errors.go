package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound      = errors.New("не найдено")
	ErrDuplicateLink = errors.New("эта связь уже существует")
)

// ValidationError is malformed or missing user input for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// FieldErrors maps a product form field to its message. Absent or empty
// entries mean the field is valid.
type FieldErrors map[ProductField]string

func (fe FieldErrors) Valid() bool {
	for _, msg := range fe {
		if msg != "" {
			return false
		}
	}
	return true
}

// ByName is the same mapping keyed by wire name, for templates and JSON.
func (fe FieldErrors) ByName() map[string]string {
	out := make(map[string]string, len(fe))
	for f, msg := range fe {
		if msg != "" {
			out[f.String()] = msg
		}
	}
	return out
}

// APIError is a non-2xx answer of the backend.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrDuplicateLink:
		return e.duplicate()
	}
	return false
}

func (e *APIError) duplicate() bool {
	if e.Status == http.StatusConflict {
		return true
	}
	switch strings.ToLower(e.Code) {
	case "duplicate", "duplicate_link", "conflict":
		return true
	}
	return legacyDuplicateMessage(e.Status, e.Message)
}

// legacyDuplicateMessage recognises the backend that only reports a
// duplicate through the text of a 400 answer.
func legacyDuplicateMessage(status int, msg string) bool {
	if status != http.StatusBadRequest {
		return false
	}
	m := strings.ToLower(msg)
	for _, marker := range []string{"уже", "already exists", "duplicate"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}

// NetworkError is a request that never produced an HTTP answer.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ошибка сети (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
