package upbank

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotAuthorized indicates the bearer token was rejected by the Up API.
var ErrNotAuthorized = errors.New("not authorized: the Up API rejected the token")

// NotFoundError indicates the requested resource does not exist upstream.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "resource not found"
}

// APIError is any other error status returned by the Up API.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("up api returned %d: %s", e.StatusCode, e.Detail)
	}
	if e.Title != "" {
		return fmt.Sprintf("up api returned %d: %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("up api returned %d", e.StatusCode)
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// statusError maps an error response body and status code onto the client's
// error types. The Up API reports errors as {"errors":[{status,title,detail}]}.
func statusError(statusCode int, body []byte) error {
	var doc struct {
		Errors []struct {
			Status string `json:"status"`
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	title, detail := "", ""
	if json.Unmarshal(body, &doc) == nil && len(doc.Errors) > 0 {
		title = doc.Errors[0].Title
		detail = doc.Errors[0].Detail
	}

	switch statusCode {
	case 401:
		return ErrNotAuthorized
	case 404:
		return &NotFoundError{Detail: detail}
	default:
		return &APIError{StatusCode: statusCode, Title: title, Detail: detail}
	}
}
