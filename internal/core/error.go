package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is reported by the renderer when no route matches the URL.
var ErrNotFound = errors.New("no matching route")

type RenderError struct {
	Code    int
	Message string
}

func (e *RenderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("render failed (code %d): %s", e.Code, e.Message)
	}
	return "render failed: " + e.Message
}

func (e *RenderError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusForError maps a render failure to the response status. Unless
// distinguishNotFound is set, a missing route is reported as 500 like any
// other failure.
func StatusForError(err error, distinguishNotFound bool) int {
	if distinguishNotFound && IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

const (
	InternalErrorBody = "Internal Server Error"
	NotFoundBody      = "Not Found"
)

func BodyForStatus(status int) string {
	if status == http.StatusNotFound {
		return NotFoundBody
	}
	return InternalErrorBody
}
