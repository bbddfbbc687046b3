// ABOUTME: Error taxonomy for backend responses
// ABOUTME: Classifies failures into validation, auth, not-found, and transient

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a backend failure for the caller.
type Kind int

const (
	// KindTransient covers transport failures and unexpected server errors.
	// Retries are always user-initiated, never automatic.
	KindTransient Kind = iota
	// KindValidation means the backend rejected the input shape or content.
	KindValidation
	// KindAuth means the credential was missing or rejected.
	KindAuth
	// KindNotFound means the resource is absent or not accessible.
	KindNotFound
)

// String returns the kind name for log output.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// FieldError is a per-field validation message from the backend.
type FieldError struct {
	Field   string
	Message string
}

// Error is a classified backend failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return kindOf(err) == KindAuth }

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found or forbidden failure.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsTransient reports whether err is a transport or unexpected server failure.
func IsTransient(err error) bool { return kindOf(err) == KindTransient }

func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden, status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindTransient
	}
}

// errorDetail matches the backend's error body. Detail is either a plain
// string or a list of {loc, msg} field entries.
type errorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// decodeError builds a classified *Error from a non-2xx response body.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{
		Kind:   classifyStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	var body errorDetail
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(body.Detail, &msg); err == nil {
		apiErr.Message = msg
		return apiErr
	}

	var fields []fieldDetail
	if err := json.Unmarshal(body.Detail, &fields); err == nil {
		for _, f := range fields {
			fieldErr := FieldError{Message: f.Msg}
			// Last loc element names the offending field.
			if len(f.Loc) > 0 {
				var name string
				if json.Unmarshal(f.Loc[len(f.Loc)-1], &name) == nil {
					fieldErr.Field = name
				}
			}
			apiErr.Fields = append(apiErr.Fields, fieldErr)
		}
		if len(apiErr.Fields) > 0 {
			apiErr.Message = apiErr.Fields[0].Message
		}
	}

	return apiErr
}
