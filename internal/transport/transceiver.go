package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/redfox/internal/request"
)

// DefaultChunkSize is the receive buffer size. The response is read in
// chunks of this many bytes until the peer closes the connection.
const DefaultChunkSize = 1024

// DefaultEncoding is the charset used to encode requests and decode
// responses when none is configured.
const DefaultEncoding = "utf-8"

// Response is the raw data received from one exchange.
//
// The raw bytes are always present. When decoding was requested and
// succeeded, Decoded is true and Text holds the decoded form; when
// decoding was requested but failed, Decoded is false and DecodeErr
// records why, with the raw bytes still available. A decode failure is
// never a hard error - servers that send mislabeled or binary content
// are normal targets for this client.
type Response struct {
	// Raw is the byte sequence received, exactly as sent by the peer.
	Raw []byte

	// Text is the decoded response. Valid only when Decoded is true.
	Text string

	// Decoded reports whether Text holds a successful decode of Raw.
	Decoded bool

	// DecodeErr records the decode failure, if any.
	DecodeErr error
}

// String returns the decoded text when available, otherwise the raw
// bytes reinterpreted as a string.
func (r *Response) String() string {
	if r.Decoded {
		return r.Text
	}
	return string(r.Raw)
}

// Transceiver performs single-shot HTTP exchanges over raw sockets.
// It is stateless between calls and safe for concurrent use; every
// Execute call opens and closes its own socket.
//
// Design decision: configuration lives on the Transceiver rather than on
// Execute because:
//  1. Timeout, charset, and proxy settings are per-campaign, not
//     per-request
//  2. Tests can build one Transceiver and reuse it across cases
//  3. It keeps Execute's signature down to the two things that actually
//     vary per call: the cancellation context and the target
type Transceiver struct {
	// timeout bounds the whole exchange (connect, send, receive).
	// Zero means block indefinitely.
	timeout time.Duration

	// encoding is the IANA charset name for the request and response.
	encoding string

	// decode controls whether the response bytes are decoded to text.
	decode bool

	// chunkSize is the receive buffer size.
	chunkSize int

	// dialer, when set, routes the connection through a proxy instead
	// of dialing directly.
	dialer proxy.Dialer

	// insecureTLS disables certificate verification. Needed for
	// self-signed targets, which are common in security assessments.
	insecureTLS bool

	// logger receives connection diagnostics.
	logger *slog.Logger
}

// Option configures a Transceiver.
type Option func(*Transceiver)

// WithTimeout bounds the whole exchange. Zero (the default) blocks
// indefinitely, which means a peer that never closes the connection
// hangs the call.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transceiver) {
		t.timeout = timeout
	}
}

// WithEncoding sets the IANA charset name used to encode the request and
// decode the response (default "utf-8").
func WithEncoding(name string) Option {
	return func(t *Transceiver) {
		t.encoding = name
	}
}

// WithDecode controls whether the response is decoded to text
// (default true). With decoding off, only Response.Raw is populated.
func WithDecode(decode bool) Option {
	return func(t *Transceiver) {
		t.decode = decode
	}
}

// WithChunkSize sets the receive buffer size (default 1024).
func WithChunkSize(size int) Option {
	return func(t *Transceiver) {
		if size > 0 {
			t.chunkSize = size
		}
	}
}

// WithDialer routes connections through the given dialer, typically a
// SOCKS5 proxy from NewSOCKS5Dialer.
func WithDialer(dialer proxy.Dialer) Option {
	return func(t *Transceiver) {
		t.dialer = dialer
	}
}

// WithInsecureTLS disables TLS certificate verification.
// Self-signed and mismatched certificates are routine on assessment
// targets; the default remains full system-trust verification.
func WithInsecureTLS(insecure bool) Option {
	return func(t *Transceiver) {
		t.insecureTLS = insecure
	}
}

// WithLogger sets the logger for connection diagnostics.
// By default diagnostics are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transceiver) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transceiver.
func New(opts ...Option) *Transceiver {
	t := &Transceiver{
		encoding:  DefaultEncoding,
		decode:    true,
		chunkSize: DefaultChunkSize,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewSOCKS5Dialer returns a dialer that routes connections through the
// SOCKS5 proxy at address in "host:port" format (e.g. Tor's
// "127.0.0.1:9050", or an intercepting proxy's SOCKS listener).
// No authentication is offered; Tor's SOCKS port does not require it.
func NewSOCKS5Dialer(address string) (proxy.Dialer, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}
	dialer, err := proxy.SOCKS5("tcp", address, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	return dialer, nil
}

// Execute transmits the request stored on rc and returns the raw
// response. One socket is opened per call and closed on every path.
//
// The request must have been built with request.Build first; Execute
// returns ErrNoRequest otherwise. Connection failures are classified
// (ErrConnectionRefused, ErrNameResolution, ErrDialTimeout) and wrapped,
// never retried. The response is read in fixed-size chunks until the
// peer closes the connection.
func (t *Transceiver) Execute(ctx context.Context, rc *request.Context) (*Response, error) {
	raw := rc.Request()
	if raw == "" {
		return nil, ErrNoRequest
	}

	payload, err := encodeText(raw, t.encoding)
	if err != nil {
		return nil, err
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(rc.Host(), strconv.Itoa(rc.Port()))

	conn, err := t.dial(ctx, addr)
	if err != nil {
		status := classifyDialError(err)
		t.logger.Warn("could not connect to target",
			slog.String("addr", addr),
			slog.String("status", status.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("connect %s: %w: %v", addr, status.Err(), err)
	}
	defer conn.Close()

	if rc.UseTLS() {
		tlsConn := tls.Client(conn, t.tlsConfig(rc.Host()))
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
		}
		conn = tlsConn
	}

	if t.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
			return nil, fmt.Errorf("set deadline on %s: %w", addr, err)
		}
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("send request to %s: %w", addr, err)
	}

	t.logger.Debug("request sent",
		slog.String("addr", addr),
		slog.Int("bytes", len(payload)))

	// Read until the peer closes the connection. No Content-Length or
	// chunked framing is honored; EOF is the only terminator.
	var data []byte
	buf := make([]byte, t.chunkSize)
	for {
		n, err := conn.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("receive from %s: %w", addr, err)
		}
	}

	t.logger.Debug("response received",
		slog.String("addr", addr),
		slog.Int("bytes", len(data)))

	resp := &Response{Raw: data}
	if t.decode {
		text, err := decodeBytes(data, t.encoding)
		if err != nil {
			// Soft failure: report it, keep the raw bytes.
			resp.DecodeErr = err
			t.logger.Warn("could not decode response",
				slog.String("addr", addr),
				slog.String("encoding", t.encoding),
				slog.String("error", err.Error()))
		} else {
			resp.Text = text
			resp.Decoded = true
		}
	}

	return resp, nil
}

// tlsConfig builds the client TLS configuration for the given host.
// SNI is the target host; trust is the system pool unless insecureTLS
// was set.
func (t *Transceiver) tlsConfig(host string) *tls.Config {
	return &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: t.insecureTLS, //nolint:gosec // opt-in for self-signed assessment targets
	}
}

// dial opens the TCP connection, directly or through the configured
// proxy dialer.
//
// Design decision: proxy.Dialer has no context support, so proxied dials
// run in a goroutine and race the context. If the context wins, the
// abandoned connection attempt may continue briefly before its result is
// dropped. This is a known limitation of the approach.
func (t *Transceiver) dial(ctx context.Context, addr string) (net.Conn, error) {
	if t.dialer == nil {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	}

	if cd, ok := t.dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}

	type dialResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan dialResult, 1)

	go func() {
		conn, err := t.dialer.Dial("tcp", addr)
		resultCh <- dialResult{conn, err}
	}()

	select {
	case result := <-resultCh:
		return result.conn, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
