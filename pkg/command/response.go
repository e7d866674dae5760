// Package command routes a verb and its arguments to the handler that
// implements it and reports the outcome as a Response.
package command

import (
	"fmt"
	"strings"
)

// Response is the outcome of one dispatched command. A successful Response
// carries only a Message, a failed one only an Error.
type Response struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// OK builds a successful Response.
func OK(message string) Response {
	return Response{Message: message, Success: true}
}

// Fail builds a failed Response. A blank diagnostic is replaced so that a
// failure never goes unexplained.
func Fail(diagnostic string) Response {
	if strings.TrimSpace(diagnostic) == "" {
		diagnostic = "Unknown error."
	}
	return Response{Error: diagnostic}
}

// Failf is Fail with formatting.
func Failf(format string, args ...any) Response {
	return Fail(fmt.Sprintf(format, args...))
}

// Text returns the Message or the Error, whichever the Response carries.
func (r Response) Text() string {
	if r.Success {
		return r.Message
	}
	return r.Error
}
