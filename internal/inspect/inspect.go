// Package inspect provides stateless helpers for classifying raw HTTP
// responses by their text.
//
// Nothing here is a structured header parser. The helpers operate on
// whitespace tokens and substrings of the full response, which is exactly
// as precise as working with hand-crafted requests against arbitrary
// servers allows - and exactly as imprecise. ContainsStatus can match a
// status string that appears in a response body, and RedirectLocation
// only finds a Location value that sits in its own whitespace token.
// Callers that need strict parsing should not be using raw exchanges in
// the first place.
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// statusText maps known status codes to their reason phrases.
// The table is intentionally partial: it covers the codes this tool's
// users act on. Codes outside the table are valid responses, not errors.
var statusText = map[int]string{
	200: "OK",
	301: "Moved Permanently",
	302: "Found",
	400: "Bad Request",
	403: "Forbidden",
	404: "Not Found",
}

// DefaultStatus is the status string ContainsStatus callers usually
// probe for.
const DefaultStatus = "200 OK"

// ErrMalformedResponse is returned when a response does not have the
// token structure the status helpers require. The helpers do not defend
// beyond this; callers should check that the input looks like an HTTP
// response before asking for its status.
var ErrMalformedResponse = errors.New("malformed response: no parsable status code")

// StatusText returns the reason phrase for a known status code.
// The second return is false for codes outside the table.
func StatusText(code int) (string, bool) {
	reason, ok := statusText[code]
	return reason, ok
}

// StatusCode extracts the status code from a response: the second
// whitespace-separated token, parsed as an integer.
func StatusCode(response string) (int, error) {
	fields := strings.Fields(response)
	if len(fields) < 2 {
		return 0, ErrMalformedResponse
	}

	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedResponse, fields[1])
	}
	return code, nil
}

// Describe formats a response's status as "<HTTP Response: CODE REASON>".
// The reason phrase is omitted for codes outside the status table;
// unknown codes are valid, not errors.
func Describe(response string) (string, error) {
	code, err := StatusCode(response)
	if err != nil {
		return "", err
	}

	if reason, ok := statusText[code]; ok {
		return fmt.Sprintf("<HTTP Response: %d %s>", code, reason), nil
	}
	return fmt.Sprintf("<HTTP Response: %d>", code), nil
}

// ContainsStatus reports whether the literal status string (code plus
// reason, e.g. "404 Not Found") occurs anywhere in the response text.
// This is a plain substring search, so a match inside the response body
// counts too.
func ContainsStatus(response, status string) bool {
	return strings.Contains(response, status)
}

// RedirectResult classifies the outcome of a redirect extraction.
type RedirectResult int

const (
	// RedirectNone indicates the response is not a 301 or 302 redirect.
	RedirectNone RedirectResult = iota

	// RedirectFound indicates a redirect with an extracted location.
	RedirectFound

	// RedirectMissingLocation indicates a 301/302 response where no
	// Location token could be found.
	RedirectMissingLocation
)

// String returns a human-readable description of the redirect result.
func (r RedirectResult) String() string {
	switch r {
	case RedirectNone:
		return "not a redirect"
	case RedirectFound:
		return "redirect"
	case RedirectMissingLocation:
		return "redirect without location"
	default:
		return "unknown"
	}
}

// RedirectLocation extracts the redirect target from a 301 or 302
// response.
//
// The response counts as a redirect only when it contains the literal
// substring "301 Moved Permanently" or "302 Found". The location is the
// whitespace token immediately following any token containing
// "Location:", so a URL with embedded spaces is truncated at the first
// space. That is accepted: this is a token scan over raw response text,
// not a header parser.
func RedirectLocation(response string) (string, RedirectResult) {
	if !ContainsStatus(response, "301 Moved Permanently") &&
		!ContainsStatus(response, "302 Found") {
		return "", RedirectNone
	}

	fields := strings.Fields(response)
	for i, field := range fields {
		if strings.Contains(field, "Location:") && i+1 < len(fields) {
			return fields[i+1], RedirectFound
		}
	}

	return "", RedirectMissingLocation
}
