package request

import (
	"fmt"
	"net/url"
)

// buildParams collects the per-call request parameters.
type buildParams struct {
	method     string
	target     string
	connection string
	body       string
}

// BuildOption configures a single Build call.
type BuildOption func(*buildParams)

// WithMethod sets the request method (default "GET"). The value is not
// validated - nonstandard and malformed methods are sent verbatim.
func WithMethod(method string) BuildOption {
	return func(p *buildParams) {
		p.method = method
	}
}

// WithTarget overrides the request-line target. When empty (the default),
// the request line carries the context's full absolute URL rather than a
// relative path. That is a preserved quirk of the tool this client
// descends from: proxies accept the absolute form, most origin servers
// tolerate it, and some interesting targets mishandle it - exactly the
// kind of behavior this client is meant to let callers reach.
func WithTarget(target string) BuildOption {
	return func(p *buildParams) {
		p.target = target
	}
}

// WithConnection sets the Connection header value (default "close").
// The transport reads the response until the peer closes the connection,
// so anything other than "close" risks hanging until the timeout fires.
func WithConnection(connection string) BuildOption {
	return func(p *buildParams) {
		p.connection = connection
	}
}

// WithBody sets the request body. The body is form-encoded before
// transmission; Content-Length reflects the encoded length.
func WithBody(body string) BuildOption {
	return func(p *buildParams) {
		p.body = body
	}
}

// Build formats a complete HTTP/1.1 request for the given context and
// stores it on the context for the transport layer to pick up.
//
// The wire format is fixed, including header order:
//
//	<METHOD> <target> HTTP/1.1
//	Host: <host>:<port>
//	Accept: */*
//	Accept-Language: en-US
//	User-Agent: <agent>
//	Connection: <connection>
//	Content-Type: application/x-www-form-urlencoded
//	Content-Length: <len(encoded body)>
//
//	<encoded body>
//
// The body is encoded like an HTML form field (space becomes "+",
// reserved characters are percent-escaped) and Content-Length counts the
// encoded bytes, so the framing stays consistent with what is actually
// sent.
func Build(c *Context, opts ...BuildOption) string {
	p := &buildParams{
		method:     "GET",
		connection: "close",
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.target == "" {
		p.target = c.url
	}

	body := url.QueryEscape(p.body)

	c.request = fmt.Sprintf("%s %s HTTP/1.1\r\n"+
		"Host: %s:%d\r\n"+
		"Accept: */*\r\n"+
		"Accept-Language: en-US\r\n"+
		"User-Agent: %s\r\n"+
		"Connection: %s\r\n"+
		"Content-Type: %s\r\n"+
		"Content-Length: %d\r\n"+
		"\r\n%s",
		p.method, p.target, c.host, c.port, c.userAgent, p.connection,
		ContentType, len(body), body)

	return c.request
}
