package request

// ContentType is the fixed Content-Type sent with every request.
// The reference tool this client descends from only ever submitted form
// data, and there is intentionally no per-request override.
const ContentType = "application/x-www-form-urlencoded"

// Default values applied by NewContext when no option overrides them.
const (
	// DefaultPath is the request path used when none is given.
	DefaultPath = "/"

	// DefaultPort is the target port used when none is given.
	DefaultPort = 80

	// DefaultUserAgent is the User-Agent header value used when none is
	// given. A bare browser token avoids standing out in server logs.
	DefaultUserAgent = "Mozilla/5.0"
)

// Context bundles the target parameters for one host: where requests go
// and how the request line and Host header are formed. It is immutable
// after construction except for the last-built request string, which
// Build stores so callers do not have to carry it to the transport layer
// themselves.
//
// Design decision: a Context is per-target rather than per-request
// because:
//  1. Host, port, and TLS mode rarely change between probes of one target
//  2. The derived URL is computed once instead of on every build
//  3. Several requests against one target can share a single Context
//     (each Execute call still opens its own socket)
type Context struct {
	// host is the target host. Required.
	host string

	// path is the resource path, "/" by default.
	path string

	// port is the target TCP port, 80 by default.
	port int

	// userAgent is the User-Agent header value.
	userAgent string

	// useTLS selects a TLS client handshake after connecting.
	// Forced to true for port 443 regardless of the caller's option.
	useTLS bool

	// url is the absolute URL derived once at construction.
	url string

	// request holds the last string produced by Build for this context.
	request string
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithPath sets the resource path (default "/").
func WithPath(path string) ContextOption {
	return func(c *Context) {
		c.path = path
	}
}

// WithPort sets the target port (default 80).
func WithPort(port int) ContextOption {
	return func(c *Context) {
		c.port = port
	}
}

// WithUserAgent sets the User-Agent header value (default "Mozilla/5.0").
func WithUserAgent(agent string) ContextOption {
	return func(c *Context) {
		c.userAgent = agent
	}
}

// WithTLS enables the TLS client handshake. Requests to port 443 use TLS
// whether or not this option is given.
func WithTLS(useTLS bool) ContextOption {
	return func(c *Context) {
		c.useTLS = useTLS
	}
}

// NewContext creates a Context for the given host.
//
// The port-443 invariant is applied here and only here: if the resulting
// port is 443, useTLS is forced on. The override is one-way - WithTLS(true)
// with a non-443 port is honored, WithTLS(false) with port 443 is not.
func NewContext(host string, opts ...ContextOption) *Context {
	c := &Context{
		host:      host,
		path:      DefaultPath,
		port:      DefaultPort,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.port == 443 {
		c.useTLS = true
	}

	scheme := "http://"
	if c.useTLS {
		scheme = "https://"
	}
	c.url = scheme + c.host + c.path

	return c
}

// Host returns the target host.
func (c *Context) Host() string { return c.host }

// Path returns the resource path.
func (c *Context) Path() string { return c.path }

// Port returns the target port.
func (c *Context) Port() int { return c.port }

// UserAgent returns the User-Agent header value.
func (c *Context) UserAgent() string { return c.userAgent }

// UseTLS reports whether the transport should perform a TLS handshake.
func (c *Context) UseTLS() bool { return c.useTLS }

// URL returns the absolute URL derived at construction
// (scheme + host + path).
func (c *Context) URL() string { return c.url }

// Request returns the last request built for this context, or the empty
// string if Build has not been called yet.
func (c *Context) Request() string { return c.request }
