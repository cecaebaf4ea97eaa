package request

import (
	"strconv"
	"strings"
	"testing"
)

// TestBuildDefaultRequest tests the exact wire format of a default build.
func TestBuildDefaultRequest(t *testing.T) {
	t.Parallel()

	c := NewContext("rit.edu")
	got := Build(c)

	expected := "GET http://rit.edu/ HTTP/1.1\r\n" +
		"Host: rit.edu:80\r\n" +
		"Accept: */*\r\n" +
		"Accept-Language: en-US\r\n" +
		"User-Agent: Mozilla/5.0\r\n" +
		"Connection: close\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Content-Length: 0\r\n" +
		"\r\n"

	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

// TestBuildStoresRequestOnContext tests the stored-request side effect.
func TestBuildStoresRequestOnContext(t *testing.T) {
	t.Parallel()

	c := NewContext("rit.edu")
	got := Build(c, WithMethod("HEAD"))

	if c.Request() != got {
		t.Errorf("context stored %q, expected %q", c.Request(), got)
	}

	// A second build replaces the stored request.
	second := Build(c, WithMethod("OPTIONS"))
	if c.Request() != second {
		t.Errorf("context stored %q, expected %q", c.Request(), second)
	}
}

// TestBuildAbsoluteURLTarget tests the request-line target selection.
func TestBuildAbsoluteURLTarget(t *testing.T) {
	t.Parallel()

	t.Run("empty target uses the absolute URL", func(t *testing.T) {
		t.Parallel()

		c := NewContext("rit.edu", WithPath("/about-rit"), WithPort(443))
		got := Build(c)

		if !strings.HasPrefix(got, "GET https://rit.edu/about-rit HTTP/1.1\r\n") {
			t.Errorf("request line in %q does not carry the absolute URL", got)
		}
	})

	t.Run("explicit target is sent verbatim", func(t *testing.T) {
		t.Parallel()

		c := NewContext("rit.edu")
		got := Build(c, WithTarget("/study/undergraduate"))

		if !strings.HasPrefix(got, "GET /study/undergraduate HTTP/1.1\r\n") {
			t.Errorf("request line in %q does not carry the override target", got)
		}
	})
}

// TestBuildBodyEncoding tests form encoding and Content-Length consistency.
func TestBuildBodyEncoding(t *testing.T) {
	t.Parallel()

	t.Run("spaces become plus signs", func(t *testing.T) {
		t.Parallel()

		c := NewContext("rit.edu")
		got := Build(c, WithMethod("POST"), WithBody("q=hello world"))

		if !strings.HasSuffix(got, "\r\n\r\nq%3Dhello+world") {
			t.Errorf("body in %q is not form-encoded", got)
		}
	})

	t.Run("Content-Length counts the encoded body", func(t *testing.T) {
		t.Parallel()

		body := "user=admin&pass=p@ss word"
		c := NewContext("rit.edu")
		got := Build(c, WithMethod("POST"), WithBody(body))

		idx := strings.Index(got, "\r\n\r\n")
		if idx < 0 {
			t.Fatalf("no header terminator in %q", got)
		}
		encoded := got[idx+4:]

		want := "Content-Length: " + strconv.Itoa(len(encoded)) + "\r\n"
		if !strings.Contains(got, want) {
			t.Errorf("request %q lacks %q (encoded body is %d bytes)", got, want, len(encoded))
		}
		if len(encoded) <= len(body) {
			t.Errorf("encoded body %q should be longer than raw %q", encoded, body)
		}
	})
}

// TestBuildHeaderOrder tests that the nine fixed lines appear in order.
func TestBuildHeaderOrder(t *testing.T) {
	t.Parallel()

	c := NewContext("rit.edu", WithPort(8080), WithUserAgent("RedFox/1.0"))
	got := Build(c, WithConnection("keep-alive"))

	lines := []string{
		"GET http://rit.edu/ HTTP/1.1",
		"Host: rit.edu:8080",
		"Accept: */*",
		"Accept-Language: en-US",
		"User-Agent: RedFox/1.0",
		"Connection: keep-alive",
		"Content-Type: application/x-www-form-urlencoded",
		"Content-Length: 0",
		"",
	}

	pos := 0
	for _, line := range lines {
		idx := strings.Index(got[pos:], line+"\r\n")
		if idx < 0 {
			t.Fatalf("line %q missing or out of order in %q", line, got)
		}
		pos += idx + len(line) + 2
	}
}

// TestBuildNoValidation tests that malformed parameters pass through.
func TestBuildNoValidation(t *testing.T) {
	t.Parallel()

	c := NewContext("rit.edu")
	got := Build(c, WithMethod("GET /smuggled HTTP/1.1\r\nX-Extra: 1"))

	// The injected header line must survive verbatim.
	if !strings.Contains(got, "\r\nX-Extra: 1 http://rit.edu/ HTTP/1.1\r\n") {
		t.Errorf("injected method was altered: %q", got)
	}
}
