package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrorKind classifies a failed request so screens can pick wording.
type ErrorKind int

const (
	// KindServer covers any response the other kinds do not claim.
	KindServer ErrorKind = iota
	// KindAuthExpired is an HTTP 401 on an authenticated call. The client
	// clears the stored token before returning it.
	KindAuthExpired
	// KindTimeout means the per-call deadline elapsed before a response.
	KindTimeout
	// KindValidation is an HTTP 400 carrying field-specific messages.
	KindValidation
	// KindNetwork means no response was received at all.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindTimeout:
		return "timeout"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	default:
		return "server"
	}
}

// Error is the single error type returned by Client calls.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Message is user-presentable: for validation errors the first
	// field-level message verbatim, otherwise the server's error string.
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Kind, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the error kind, defaulting to KindServer for foreign errors.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// IsAuthExpired reports whether err is a 401 from an authenticated call.
func IsAuthExpired(err error) bool { return KindOf(err) == KindAuthExpired }

// IsTimeout reports whether err is a request deadline failure.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// firstValidationMessage digs the first field-level message out of a DRF-style
// 400 body. Two shapes occur: {"error": "..."} and {"field": ["msg", ...]}.
func firstValidationMessage(body []byte) string {
	var generic struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &generic); err == nil && generic.Error != "" {
		return generic.Error
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var list []string
		if err := json.Unmarshal(fields[k], &list); err == nil && len(list) > 0 {
			return list[0]
		}
		var single string
		if err := json.Unmarshal(fields[k], &single); err == nil && single != "" {
			return single
		}
	}
	return ""
}
